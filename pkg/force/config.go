package force

import (
	"net/http"
	"time"
)

// Config carries everything needed to construct a client. Exactly one of
// the credential sets must be populated: an existing session (InstanceURL +
// SessionID) or login credentials (Username + Password, optionally
// SecurityToken).
type Config struct {
	// LoginURL is the authentication host. Defaults to the production
	// login endpoint; set it to the sandbox host for sandbox orgs.
	LoginURL string

	// InstanceURL and SessionID reuse an existing session without logging
	// in.
	InstanceURL string
	SessionID   string

	// Username, Password, and SecurityToken drive the SOAP login flow.
	Username      string
	Password      string
	SecurityToken string

	// APIVersion selects the versioned SOAP endpoints, e.g. "60.0".
	APIVersion string

	// Logger receives structured debug/warning output. Nil means silent.
	Logger Logger

	// Debug logs full request and response bodies through Logger.
	Debug bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Transport retry policy. Zero values select the defaults.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// HTTPClient overrides the underlying HTTP client, e.g. for custom TLS
	// configuration.
	HTTPClient *http.Client

	// Cache configures describe/list result caching. Nil disables caching.
	Cache *CacheConfig
}
