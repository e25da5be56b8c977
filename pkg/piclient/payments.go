package piclient

import (
	"context"
	"net/http"
)

type completePaymentRequest struct {
	TxID string `json:"txid"`
}

// Me returns the identity behind a user access token.
func (c *Client) Me(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, &InvalidArgumentError{Message: "access token cannot be empty"}
	}

	u, err := c.apiURL("me")
	if err != nil {
		return nil, err
	}
	return doParsed[User](ctx, c.Executor, Request{
		Method: http.MethodGet,
		URL:    u,
		Auth:   BearerAuth(accessToken),
	})
}

// GetPayment fetches the server's current representation of a payment.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, &InvalidArgumentError{Message: "payment ID cannot be empty"}
	}

	u, err := c.apiURL("payments", paymentID)
	if err != nil {
		return nil, err
	}
	return doParsed[Payment](ctx, c.Executor, Request{
		Method: http.MethodGet,
		URL:    u,
		Auth:   KeyAuth(c.cfg.APIKey),
	})
}

// ApprovePayment registers the developer-side approval of a payment. The
// client does not assume re-approval is a no-op server-side and therefore
// never retries this call on a 4xx.
func (c *Client) ApprovePayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, &InvalidArgumentError{Message: "payment ID cannot be empty"}
	}
	return c.postPayment(ctx, paymentID, "approve", nil)
}

// CompletePayment marks a payment as completed by the developer, associating
// the blockchain transaction that settled it. On success the returned Payment
// has DeveloperCompleted set and a populated TransactionRecord.
func (c *Client) CompletePayment(ctx context.Context, paymentID, txID string) (*Payment, error) {
	if paymentID == "" {
		return nil, &InvalidArgumentError{Message: "payment ID cannot be empty"}
	}
	if txID == "" {
		return nil, &InvalidArgumentError{Message: "transaction ID cannot be empty"}
	}
	return c.postPayment(ctx, paymentID, "complete", completePaymentRequest{TxID: txID})
}

// CancelPayment cancels a payment. It may be called on a payment that was
// never approved.
func (c *Client) CancelPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, &InvalidArgumentError{Message: "payment ID cannot be empty"}
	}
	return c.postPayment(ctx, paymentID, "cancel", nil)
}

func (c *Client) postPayment(ctx context.Context, paymentID, action string, body any) (*Payment, error) {
	u, err := c.apiURL("payments", paymentID, action)
	if err != nil {
		return nil, err
	}
	return doParsed[Payment](ctx, c.Executor, Request{
		Method: http.MethodPost,
		URL:    u,
		Auth:   KeyAuth(c.cfg.APIKey),
		JSON:   body,
	})
}
