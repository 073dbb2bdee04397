// Package client implements the force.Client and force.MetadataClient
// interfaces over the SOAP pipeline.
package client

import (
	"github.com/trestletech/goforce/internal/transport"
	"github.com/trestletech/goforce/pkg/force"
)

// Client implements the force.Client interface.
type Client struct {
	session  *force.Session
	invoker  transport.Invoker
	logger   force.Logger
	cache    force.Cache
	metadata *MetadataClient
}

// Options carries the collaborators a Client needs beyond its session.
type Options struct {
	Invoker transport.Invoker
	Logger  force.Logger
	Cache   force.Cache
	// CacheConfig supplies the entry TTL; the backend itself comes
	// through Cache.
	CacheConfig *force.CacheConfig
}

// New creates a client for an existing session.
func New(session *force.Session, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = force.NopLogger{}
	}

	cache := opts.Cache
	if cache == nil {
		cache = force.NewNoOpCache()
	}

	client := &Client{
		session: session,
		invoker: opts.Invoker,
		logger:  logger,
		cache:   cache,
	}

	client.metadata = NewMetadataClient(session, opts.Invoker, logger, cache, opts.CacheConfig.EntryTTL())

	return client
}

// Metadata implements force.Client.Metadata.
func (c *Client) Metadata() force.MetadataClient {
	return c.metadata
}

// Session implements force.Client.Session.
func (c *Client) Session() *force.Session {
	return c.session
}
