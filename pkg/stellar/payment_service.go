package stellar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/txnbuild"

	"github.com/pinetwork/pi-go/internal/validators"
	"github.com/pinetwork/pi-go/pkg/piclient"
)

const (
	// Native amounts carry at most 7 decimal places on the ledger.
	amountPrecision = 7

	maxMemoTextBytes = 28

	transactionTimeoutSeconds = 300
)

// feeBuffer is the minimal reserve that must remain on the source account on
// top of the sent amount, distinct from the transaction fee itself.
var feeBuffer = decimal.RequireFromString("0.01")

// SendNativeRequest describes one native-asset payment. BaseFee is in
// stroops; zero selects the service default.
type SendNativeRequest struct {
	Network      Network `validate:"required"`
	SourceSecret string  `validate:"required"`
	Destination  string  `validate:"required,public_key"`
	Amount       decimal.Decimal
	Memo         string
	BaseFee      int64
}

// TransactionResult is what the network returns after a successful
// submission. The XDR blobs are opaque to the client.
type TransactionResult struct {
	Hash          string `json:"hash"`
	Ledger        int32  `json:"ledger"`
	EnvelopeXDR   string `json:"envelope_xdr"`
	ResultXDR     string `json:"result_xdr"`
	ResultMetaXDR string `json:"result_meta_xdr"`
}

// PaymentService moves native value between accounts. Its contract is to do
// so only when provably safe: every precondition in SendNative is checked
// before the signed envelope leaves the process, and a submission is never
// retried, because resubmitting a signed transaction with the same sequence
// number after an ambiguous failure risks a double-spend.
type PaymentService interface {
	SendNative(ctx context.Context, req SendNativeRequest) (*TransactionResult, error)
}

type paymentService struct {
	accounts AccountService
	executor *piclient.Executor
	baseFee  int64
	validate *validator.Validate

	// horizonURL resolves a network to its endpoint; replaced in tests.
	horizonURL func(Network) string
}

var _ PaymentService = (*paymentService)(nil)

type PaymentServiceOptions struct {
	AccountService AccountService
	Executor       *piclient.Executor
	BaseFee        int64
}

func (o *PaymentServiceOptions) Validate() error {
	if o.AccountService == nil {
		return &piclient.ConfigurationError{Message: "account service cannot be nil"}
	}
	if o.Executor == nil {
		return &piclient.ConfigurationError{Message: "executor cannot be nil"}
	}
	if o.BaseFee < int64(txnbuild.MinBaseFee) {
		return &piclient.ConfigurationError{Message: "base fee is lower than the minimum network fee"}
	}
	return nil
}

func NewPaymentService(opts PaymentServiceOptions) (*paymentService, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating payment service options: %w", err)
	}
	return &paymentService{
		accounts:   opts.AccountService,
		executor:   opts.Executor,
		baseFee:    opts.BaseFee,
		validate:   validators.NewValidator(),
		horizonURL: Network.HorizonURL,
	}, nil
}

// SendNative builds, signs, and submits one native-asset payment.
func (s *paymentService) SendNative(ctx context.Context, req SendNativeRequest) (*TransactionResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	kp, err := keypair.ParseFull(req.SourceSecret)
	if err != nil {
		return nil, &piclient.StellarError{Op: "deriving account from secret", Err: err}
	}

	available, err := s.accounts.NativeBalance(ctx, req.Network, kp.Address())
	if err != nil {
		return nil, err
	}
	required := req.Amount.Add(feeBuffer)
	if available.LessThan(required) {
		return nil, &piclient.InsufficientBalanceError{Available: available, Required: required}
	}

	sequence, err := s.accounts.SequenceNumber(ctx, req.Network, kp.Address())
	if err != nil {
		return nil, err
	}

	envelope, err := s.buildEnvelope(req, kp.Address(), sequence)
	if err != nil {
		return nil, err
	}

	signed, err := envelope.Sign(req.Network.Passphrase(), kp)
	if err != nil {
		return nil, &piclient.StellarError{Op: "signing transaction", Err: err}
	}

	return s.submit(ctx, req.Network, signed)
}

func (s *paymentService) validateRequest(req SendNativeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return &piclient.InvalidArgumentError{Message: validators.FlattenValidationError(validationErrs)}
		}
		return &piclient.InvalidArgumentError{Message: err.Error()}
	}
	if !req.Amount.IsPositive() {
		return &piclient.InvalidArgumentError{Message: fmt.Sprintf("amount must be positive, got %s", req.Amount)}
	}
	if req.Amount.Exponent() < -amountPrecision {
		return &piclient.InvalidArgumentError{Message: fmt.Sprintf("amount %s has more than %d decimal places", req.Amount, amountPrecision)}
	}
	if len(req.Memo) > maxMemoTextBytes {
		return &piclient.InvalidArgumentError{Message: fmt.Sprintf("memo exceeds %d bytes", maxMemoTextBytes)}
	}
	if req.BaseFee < 0 {
		return &piclient.InvalidArgumentError{Message: "base fee cannot be negative"}
	}
	return nil
}

func (s *paymentService) buildEnvelope(req SendNativeRequest, sourceAccountID string, sequence int64) (*txnbuild.Transaction, error) {
	baseFee := req.BaseFee
	if baseFee == 0 {
		baseFee = s.baseFee
	}

	params := txnbuild.TransactionParams{
		SourceAccount:        &txnbuild.SimpleAccount{AccountID: sourceAccountID, Sequence: sequence},
		IncrementSequenceNum: true,
		BaseFee:              baseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(transactionTimeoutSeconds)},
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: req.Destination,
				Amount:      req.Amount.StringFixed(amountPrecision),
				Asset:       txnbuild.NativeAsset{},
			},
		},
	}
	if req.Memo != "" {
		params.Memo = txnbuild.MemoText(req.Memo)
	}

	envelope, err := txnbuild.NewTransaction(params)
	if err != nil {
		return nil, &piclient.StellarError{Op: "building transaction envelope", Err: err}
	}
	return envelope, nil
}

func (s *paymentService) submit(ctx context.Context, net Network, signed *txnbuild.Transaction) (*TransactionResult, error) {
	envelopeB64, err := signed.Base64()
	if err != nil {
		return nil, &piclient.StellarError{Op: "encoding transaction envelope", Err: err}
	}

	u, err := piclient.JoinPath(s.horizonURL(net), "transactions")
	if err != nil {
		return nil, err
	}

	// NoRetry: after the signed envelope has been sent once, a failure no
	// longer proves the network did not accept it.
	respBody, err := s.executor.Do(ctx, piclient.Request{
		Method:  http.MethodPost,
		URL:     u,
		Auth:    piclient.NoAuth(),
		Form:    url.Values{"tx": []string{envelopeB64}},
		NoRetry: true,
	})
	if err != nil {
		return nil, &piclient.StellarError{Op: "submitting transaction", Err: err}
	}

	var result TransactionResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &piclient.SerializationError{Err: err}
	}
	return &result, nil
}
