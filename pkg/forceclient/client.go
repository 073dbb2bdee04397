// Package forceclient constructs working clients from a force.Config. It
// wires the transport, authentication, and caching collaborators together
// so callers only deal with the force interfaces.
package forceclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/trestletech/goforce/internal/auth"
	"github.com/trestletech/goforce/internal/client"
	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/internal/transport"
	"github.com/trestletech/goforce/pkg/force"
)

// New creates a client from configuration. When the config carries an
// existing session it is used as-is; otherwise a SOAP login runs first.
func New(ctx context.Context, config *force.Config) (force.Client, error) {
	if config == nil {
		return nil, force.ErrConfigRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = force.NopLogger{}
	}

	invoker := newInvoker(config, logger)

	session, err := resolveSession(ctx, invoker, config)
	if err != nil {
		return nil, err
	}

	cache, err := force.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("constructing cache: %w", err)
	}

	return client.New(session, client.Options{
		Invoker:     invoker,
		Logger:      logger,
		Cache:       cache,
		CacheConfig: config.Cache,
	}), nil
}

// NewWithSession creates a client for an already authenticated session.
func NewWithSession(instanceURL, sessionID string, opts ...func(*force.Config)) (force.Client, error) {
	config := &force.Config{
		InstanceURL: instanceURL,
		SessionID:   sessionID,
	}

	for _, opt := range opts {
		opt(config)
	}

	return New(context.Background(), config)
}

// NewWithPassword creates a client by logging in with the username-password
// flow.
func NewWithPassword(ctx context.Context, username, password, securityToken string, opts ...func(*force.Config)) (force.Client, error) {
	config := &force.Config{
		Username:      username,
		Password:      password,
		SecurityToken: securityToken,
	}

	for _, opt := range opts {
		opt(config)
	}

	return New(ctx, config)
}

func newInvoker(config *force.Config, logger force.Logger) transport.Invoker {
	opts := []transport.Option{
		transport.WithLogger(logger),
		transport.WithDebug(config.Debug),
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax == 0 {
			retryMax = constants.DefaultRetryMax
		}

		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, transport.WithRetryConfig(retryMax, waitMin, waitMax))
	}

	if config.HTTPClient != nil {
		opts = append(opts, transport.WithHTTPClient(config.HTTPClient))
	}

	return transport.NewClient(opts...)
}

// resolveSession picks the credential path: reuse an existing session when
// the config names one, otherwise log in.
func resolveSession(ctx context.Context, invoker transport.Invoker, config *force.Config) (*force.Session, error) {
	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = constants.DefaultAPIVersion
	}

	if config.SessionID != "" {
		if config.InstanceURL == "" {
			return nil, force.ErrEndpointRequired
		}

		return &force.Session{
			InstanceURL: normalizeInstanceURL(config.InstanceURL),
			SessionID:   config.SessionID,
			APIVersion:  apiVersion,
		}, nil
	}

	if config.Username == "" || config.Password == "" {
		return nil, force.ErrCredentialsRequired
	}

	session, err := auth.Login(ctx, invoker, auth.Config{
		LoginURL:      config.LoginURL,
		Username:      config.Username,
		Password:      config.Password,
		SecurityToken: config.SecurityToken,
		APIVersion:    apiVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return session, nil
}

// normalizeInstanceURL accepts bare hostnames and trailing slashes, both
// common in hand-maintained configs.
func normalizeInstanceURL(instanceURL string) string {
	normalized := strings.TrimRight(instanceURL, "/")

	if !strings.Contains(normalized, "://") {
		normalized = "https://" + normalized
	}

	return normalized
}
