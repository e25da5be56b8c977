// Package piclient implements a client for the Pi Network payments API: a
// request executor with bounded retry and error classification, and the
// developer-side payment lifecycle operations built on top of it.
package piclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client talks to the Pi Network API on behalf of one application. It is
// immutable after construction and safe for concurrent use; reconfiguration
// means constructing a new Client.
type Client struct {
	Executor *Executor

	cfg ClientConfig
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating client config: %w", err)
	}

	executor, err := NewExecutor(&http.Client{Timeout: cfg.Timeout}, cfg.Retry, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("building request executor: %w", err)
	}

	return &Client{Executor: executor, cfg: cfg}, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() ClientConfig {
	return c.cfg
}

func (c *Client) apiURL(segments ...string) (string, error) {
	return JoinPath(c.cfg.BaseURL, segments...)
}

// doParsed executes the request through the client's executor and decodes the
// response body into T.
func doParsed[T any](ctx context.Context, executor *Executor, req Request) (*T, error) {
	respBody, err := executor.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return &out, nil
}
