package piclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// The client surfaces every failure as exactly one of the error kinds below.
// Callers branch with errors.As; no kind is ever folded into another.

// TransportError covers connection-level failures (dial, DNS, timeout) and
// 5xx responses, i.e. the conditions the Request Executor considers
// retryable. Status is 0 when the request never produced a response.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: unexpected statusCode=%d, body=%q", e.Status, e.Body)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteAPIError is a structured failure returned by the Pi Network API in
// its {error, error_message, payment?} envelope. Never retried.
type RemoteAPIError struct {
	ErrorName    string
	ErrorMessage string
	Payment      *Payment
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("Pi Network API error: %s - %s", e.ErrorName, e.ErrorMessage)
}

// AuthenticationError means the supplied credential was rejected or expired.
// Kept distinct from RemoteAPIError so callers can trigger re-authentication.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// InvalidArgumentError means a caller-supplied input failed a local
// precondition. No network call was made.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// StellarError covers balance queries, account derivation, and transaction
// construction or submission failures that are not an insufficient balance.
type StellarError struct {
	Op  string
	Err error
}

func (e *StellarError) Error() string {
	return fmt.Sprintf("stellar operation failed: %s: %v", e.Op, e.Err)
}

func (e *StellarError) Unwrap() error { return e.Err }

// InsufficientBalanceError is a first-class kind because callers routinely
// branch on it to top an account up before retrying a send.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, required %s", e.Available, e.Required)
}

// SerializationError means a response body could not be decoded into the
// expected shape.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// ConfigurationError means the client itself was misconfigured before any
// operation ran.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

// apiErrorEnvelope is the error body shape contracted with the Pi Network
// API.
type apiErrorEnvelope struct {
	Error        string   `json:"error"`
	ErrorMessage string   `json:"error_message"`
	Payment      *Payment `json:"payment,omitempty"`
}

// classifyResponse turns a non-success, non-5xx response into exactly one
// error kind. It never panics: an unparseable body falls back to a
// TransportError carrying the raw status and body for diagnostics.
func classifyResponse(status int, body []byte) error {
	var env apiErrorEnvelope
	parsed := json.Unmarshal(body, &env) == nil && env.Error != ""

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		msg := string(body)
		if parsed {
			msg = env.ErrorMessage
		}
		return &AuthenticationError{Message: msg}
	}

	if parsed {
		return &RemoteAPIError{
			ErrorName:    env.Error,
			ErrorMessage: env.ErrorMessage,
			Payment:      env.Payment,
		}
	}

	return &TransportError{Status: status, Body: string(body)}
}
