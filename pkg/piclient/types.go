package piclient

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the server-owned record of a Pi transfer between a user and an
// application. The client only ever reads it and requests lifecycle
// transitions on it; fields are decoded verbatim from the API and never
// patched locally.
type Payment struct {
	Identifier  string             `json:"identifier"`
	UserUID     string             `json:"user_uid"`
	Amount      decimal.Decimal    `json:"amount"`
	Memo        string             `json:"memo,omitempty"`
	Metadata    json.RawMessage    `json:"metadata,omitempty"`
	FromAddress string             `json:"from_address"`
	ToAddress   string             `json:"to_address"`
	Direction   string             `json:"direction,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	Status      PaymentStatus      `json:"status"`
	Transaction *TransactionRecord `json:"transaction,omitempty"`
}

// PaymentStatus carries the four lifecycle flags. They are independent
// booleans, not mutually exclusive states: a payment can be cancelled at any
// point before developer completion.
type PaymentStatus struct {
	DeveloperApproved   bool `json:"developer_approved"`
	TransactionVerified bool `json:"transaction_verified"`
	DeveloperCompleted  bool `json:"developer_completed"`
	Cancelled           bool `json:"cancelled"`
}

// TransactionRecord is populated on a Payment only once a blockchain
// transaction has been associated with it.
type TransactionRecord struct {
	TxID     string `json:"txid"`
	Verified bool   `json:"verified"`
	Link     string `json:"_link"`
}

// User is the identity returned by GET /me for a bearer access token.
type User struct {
	UID      string `json:"uid"`
	Username string `json:"username,omitempty"`
}
