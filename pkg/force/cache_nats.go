package force

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Static errors for the NATS backend.
var (
	ErrNATSURLRequired    = errors.New("NATS URL is required")
	ErrNATSBucketRequired = errors.New("NATS bucket name is required")
)

// NATSKVConfig configures the NATS JetStream KV cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. "nats://127.0.0.1:4222".
	URL string

	// Bucket is the KV bucket name. Created if it does not exist.
	Bucket string

	// CredentialsFile is an optional NATS credentials file path.
	CredentialsFile string

	// TTL bounds entry lifetime at the bucket level. Zero selects the
	// default cache TTL.
	TTL time.Duration
}

// NATSKVCache stores entries in a NATS JetStream key-value bucket, letting
// multiple processes share one describe/list cache.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the configured
// bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	if config.Bucket == "" {
		return nil, ErrNATSBucketRequired
	}

	opts := []nats.Option{nats.Name("goforce-cache")}
	if config.CredentialsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredentialsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		ttl := config.TTL
		if ttl == 0 {
			ttl = defaultCacheTTL
		}

		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    ttl,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

// Get implements Cache.Get. Expiry is owned by the bucket TTL, so returned
// entries carry a zero ExpiresAt.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	entry, err := c.kv.Get(sanitizeKVKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting key from NATS KV: %w", err)
	}

	return &CacheEntry{Data: entry.Value()}, nil
}

// Set implements Cache.Set. The entry's ExpiresAt is ignored in favor of
// the bucket TTL.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	_, err := c.kv.Put(sanitizeKVKey(key), entry.Data)
	if err != nil {
		return fmt.Errorf("putting key to NATS KV: %w", err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(sanitizeKVKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting key from NATS KV: %w", err)
	}

	return nil
}

// Clear implements Cache.Clear by purging every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing NATS KV keys: %w", err)
	}

	for _, key := range keys {
		err := c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging key %q: %w", key, err)
		}
	}

	return nil
}

// Close implements Cache.Close.
func (c *NATSKVCache) Close() error {
	c.conn.Close()

	return nil
}

// sanitizeKVKey maps cache keys onto the character set NATS KV accepts.
func sanitizeKVKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.' || r == '/' || r == '=':
			return r
		default:
			return '.'
		}
	}, key)
}
