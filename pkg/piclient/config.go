package piclient

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the production Pi Network API endpoint.
	DefaultBaseURL = "https://api.minepi.com/v2"

	// DefaultUserAgent identifies this client on the wire.
	DefaultUserAgent = "pi-go/0.1.0"

	defaultTimeout = 30 * time.Second
)

// RetryPolicy bounds the Request Executor's retry behavior. The delay before
// retry attempt n is min(MaxDelay, InitialDelay * BackoffMultiplier^n).
type RetryPolicy struct {
	MaxAttempts       uint
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryPolicy returns the policy used when the caller does not supply
// one: 3 total attempts, 100ms initial delay doubling up to 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return &ConfigurationError{Message: "retry policy max attempts must be at least 1"}
	}
	if p.BackoffMultiplier < 1.0 {
		return &ConfigurationError{Message: "retry policy backoff multiplier must be at least 1.0"}
	}
	if p.InitialDelay < 0 || p.MaxDelay < 0 {
		return &ConfigurationError{Message: "retry policy delays cannot be negative"}
	}
	if p.InitialDelay > p.MaxDelay {
		return &ConfigurationError{Message: "retry policy initial delay cannot exceed max delay"}
	}
	return nil
}

// ClientConfig holds everything a Client needs to talk to the Pi Network API.
// It is immutable after construction: reconfiguring requires building a new
// Client. A single Client built from it is safe for concurrent use.
type ClientConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	Retry     RetryPolicy
	UserAgent string
}

// NewClientConfig returns a config with production defaults for everything
// but the API key.
func NewClientConfig(apiKey string) (ClientConfig, error) {
	cfg := ClientConfig{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		Timeout:   defaultTimeout,
		Retry:     DefaultRetryPolicy(),
		UserAgent: DefaultUserAgent,
	}
	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func (c ClientConfig) Validate() error {
	if c.APIKey == "" {
		return &ConfigurationError{Message: "API key cannot be empty"}
	}
	if c.BaseURL == "" {
		return &ConfigurationError{Message: "base URL cannot be empty"}
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return &ConfigurationError{Message: fmt.Sprintf("base URL %q is not a valid URL", c.BaseURL)}
	}
	if c.Timeout <= 0 {
		return &ConfigurationError{Message: "timeout must be positive"}
	}
	if c.UserAgent == "" {
		return &ConfigurationError{Message: "user agent cannot be empty"}
	}
	if err := c.Retry.Validate(); err != nil {
		return fmt.Errorf("validating retry policy: %w", err)
	}
	return nil
}
