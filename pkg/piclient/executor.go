package piclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/pinetwork/pi-go/internal/utils"
)

// AuthMode is a closed tagged variant selecting the Authorization header the
// Executor injects. Modeling it as a value rather than a raw header string
// keeps a caller from accidentally sending a server credential on a
// user-scoped endpoint or vice versa.
type AuthMode struct {
	scheme     authScheme
	credential string
}

type authScheme int

const (
	authNone authScheme = iota
	authBearer
	authKey
)

// NoAuth issues the request without an Authorization header (horizon calls).
func NoAuth() AuthMode { return AuthMode{scheme: authNone} }

// BearerAuth authenticates a user-scoped call with an access token.
func BearerAuth(accessToken string) AuthMode {
	return AuthMode{scheme: authBearer, credential: accessToken}
}

// KeyAuth authenticates a server-scoped call with the application API key.
func KeyAuth(apiKey string) AuthMode {
	return AuthMode{scheme: authKey, credential: apiKey}
}

func (a AuthMode) apply(req *http.Request) error {
	switch a.scheme {
	case authNone:
		return nil
	case authBearer:
		if a.credential == "" {
			return &ConfigurationError{Message: "bearer access token cannot be empty"}
		}
		req.Header.Set("Authorization", "Bearer "+a.credential)
		return nil
	case authKey:
		if a.credential == "" {
			return &ConfigurationError{Message: "API key cannot be empty"}
		}
		req.Header.Set("Authorization", "Key "+a.credential)
		return nil
	default:
		return &ConfigurationError{Message: fmt.Sprintf("unknown auth scheme %d", a.scheme)}
	}
}

// Request is a prepared outbound call. JSON and Form are mutually exclusive
// body encodings; both nil means an empty body. NoRetry forces a single
// attempt regardless of the retry policy, used for transaction submission
// where a resubmit after an ambiguous failure could double-apply.
type Request struct {
	Method  string
	URL     string
	Auth    AuthMode
	JSON    any
	Form    url.Values
	NoRetry bool
}

// Executor is the single choke point for all outbound calls: it injects
// authentication, applies the retry policy, and classifies every failure into
// the closed error taxonomy.
//
// Retry policy: only conditions where the server demonstrably did not durably
// process the request are retried, i.e. connection-level failures and 5xx
// responses. 4xx responses, malformed bodies, and local failures surface
// immediately. When a non-retryable error is returned, at most one successful
// side-effecting call is assumed to have occurred; duplicate submission on a
// retryable-but-ambiguous failure is an accepted, documented risk.
type Executor struct {
	HTTPClient utils.HTTPClient
	Policy     RetryPolicy
	UserAgent  string
}

func NewExecutor(httpClient utils.HTTPClient, policy RetryPolicy, userAgent string) (*Executor, error) {
	if httpClient == nil {
		return nil, &ConfigurationError{Message: "HTTP client cannot be nil"}
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("validating retry policy: %w", err)
	}
	return &Executor{HTTPClient: httpClient, Policy: policy, UserAgent: userAgent}, nil
}

// Do executes the request under the retry policy and returns the raw response
// body of the first successful attempt.
func (e *Executor) Do(ctx context.Context, req Request) ([]byte, error) {
	bodyBytes, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	attempts := e.Policy.MaxAttempts
	if req.NoRetry {
		attempts = 1
	}

	var respBody []byte
	err = retry.Do(
		func() error {
			var attemptErr error
			respBody, attemptErr = e.attempt(ctx, req, bodyBytes, contentType)
			return attemptErr
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.RetryIf(isRetryable),
		retry.DelayType(backoffDelay(e.Policy)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, attemptErr error) {
			log.Ctx(ctx).Debugf("retrying %s %s after attempt %d: %v", req.Method, req.URL, n+1, attemptErr)
		}),
	)
	if err != nil {
		return nil, err
	}
	return respBody, nil
}

func (e *Executor) attempt(ctx context.Context, req Request, bodyBytes []byte, contentType string) ([]byte, error) {
	var bodyReader io.Reader
	if bodyBytes != nil {
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if e.UserAgent != "" {
		httpReq.Header.Set("User-Agent", e.UserAgent)
	}
	if err = req.Auth.apply(httpReq); err != nil {
		return nil, err
	}

	resp, err := e.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer utils.DeferredClose(ctx, resp.Body, "closing response body")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, classifyResponse(resp.StatusCode, respBody)
	}

	return respBody, nil
}

func encodeBody(req Request) (body []byte, contentType string, err error) {
	switch {
	case req.JSON != nil && req.Form != nil:
		return nil, "", &ConfigurationError{Message: "request cannot carry both a JSON and a form body"}
	case req.JSON != nil:
		body, err = json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("marshalling request body: %w", err)
		}
		return body, "application/json", nil
	case req.Form != nil:
		return []byte(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", nil
	}
}

// isRetryable reports whether the server demonstrably did not process the
// request: a connection-level failure (no status) or a 5xx.
func isRetryable(err error) bool {
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		return false
	}
	return transportErr.Status == 0 || transportErr.Status >= http.StatusInternalServerError
}

// backoffDelay computes min(MaxDelay, InitialDelay * BackoffMultiplier^n),
// where n is the zero-based count of failed attempts so far.
func backoffDelay(policy RetryPolicy) retry.DelayTypeFunc {
	return func(n uint, _ error, _ *retry.Config) time.Duration {
		delay := float64(policy.InitialDelay) * math.Pow(policy.BackoffMultiplier, float64(n))
		if delay > float64(policy.MaxDelay) {
			return policy.MaxDelay
		}
		return time.Duration(delay)
	}
}

// JoinPath joins a base URL with path segments, mirroring url.JoinPath but
// surfacing a ConfigurationError from the closed taxonomy.
func JoinPath(base string, segments ...string) (string, error) {
	u, err := url.JoinPath(base, segments...)
	if err != nil {
		return "", &ConfigurationError{Message: fmt.Sprintf("joining path %q with %q: %v", base, strings.Join(segments, "/"), err)}
	}
	return u, nil
}
