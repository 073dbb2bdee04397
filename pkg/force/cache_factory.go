package force

import (
	"errors"
	"fmt"
	"time"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

const (
	defaultCacheTTL     = 10 * time.Minute
	defaultCacheMaxSize = 256
)

// Static errors for cache construction.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// CacheConfig configures the cache backend.
type CacheConfig struct {
	// Type is the cache backend type.
	Type CacheType

	// Memory cache configuration.
	Memory *MemoryCacheConfig

	// NATS KV cache configuration.
	NATS *NATSKVConfig

	// TTL applied to describe/list entries. Zero means the default.
	TTL time.Duration
}

// MemoryCacheConfig configures the memory cache.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of entries held.
	MaxSize int
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:   CacheTypeMemory,
		Memory: &MemoryCacheConfig{MaxSize: defaultCacheMaxSize},
		TTL:    defaultCacheTTL,
	}
}

// EntryTTL returns the configured TTL or the default.
func (c *CacheConfig) EntryTTL() time.Duration {
	if c == nil || c.TTL == 0 {
		return defaultCacheTTL
	}

	return c.TTL
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		return NewNoOpCache(), nil
	}

	switch config.Type {
	case CacheTypeMemory:
		maxSize := defaultCacheMaxSize
		if config.Memory != nil && config.Memory.MaxSize > 0 {
			maxSize = config.Memory.MaxSize
		}

		return NewMemoryCache(maxSize), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		natsConfig := *config.NATS
		if natsConfig.TTL == 0 {
			natsConfig.TTL = config.EntryTTL()
		}

		return NewNATSKVCache(&natsConfig)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}
