package stellar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/strkey"

	"github.com/pinetwork/pi-go/pkg/piclient"
)

const nativeAssetType = "native"

// AccountService reads account state from a network's horizon endpoint.
type AccountService interface {
	// NativeBalance returns the account's native-asset balance. The input
	// may be a public account id or a secret seed; a secret is derived
	// into its account id locally before any network call. An existing
	// account with no native balance entry yields exactly zero.
	NativeBalance(ctx context.Context, net Network, accountOrSecret string) (decimal.Decimal, error)

	// SequenceNumber returns the account's current ledger sequence number.
	SequenceNumber(ctx context.Context, net Network, accountID string) (int64, error)
}

type accountService struct {
	executor *piclient.Executor

	// horizonURL resolves a network to its endpoint; replaced in tests.
	horizonURL func(Network) string
}

var _ AccountService = (*accountService)(nil)

func NewAccountService(executor *piclient.Executor) (*accountService, error) {
	if executor == nil {
		return nil, &piclient.ConfigurationError{Message: "executor cannot be nil"}
	}
	return &accountService{executor: executor, horizonURL: Network.HorizonURL}, nil
}

// ResolveAccountID maps a public account id or a secret seed onto the public
// account id, without any network call. Secrets are detected by the strkey
// seed prefix.
func ResolveAccountID(accountOrSecret string) (string, error) {
	switch {
	case accountOrSecret == "":
		return "", &piclient.InvalidArgumentError{Message: "account or secret cannot be empty"}
	case strkey.IsValidEd25519SecretSeed(accountOrSecret):
		kp, err := keypair.ParseFull(accountOrSecret)
		if err != nil {
			return "", &piclient.StellarError{Op: "parsing secret seed", Err: err}
		}
		return kp.Address(), nil
	case strkey.IsValidEd25519PublicKey(accountOrSecret):
		return accountOrSecret, nil
	default:
		return "", &piclient.StellarError{Op: "resolving account", Err: fmt.Errorf("input is neither a valid account id nor a secret seed")}
	}
}

// horizonAccount is the subset of the horizon account record the client
// consumes.
type horizonAccount struct {
	AccountID string           `json:"account_id"`
	Sequence  int64            `json:"sequence,string"`
	Balances  []horizonBalance `json:"balances"`
}

type horizonBalance struct {
	Balance   string `json:"balance"`
	AssetType string `json:"asset_type"`
}

func (s *accountService) NativeBalance(ctx context.Context, net Network, accountOrSecret string) (decimal.Decimal, error) {
	accountID, err := ResolveAccountID(accountOrSecret)
	if err != nil {
		return decimal.Zero, err
	}

	account, err := s.fetchAccount(ctx, net, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	for _, balance := range account.Balances {
		if balance.AssetType != nativeAssetType {
			continue
		}
		parsed, parseErr := decimal.NewFromString(balance.Balance)
		if parseErr != nil {
			return decimal.Zero, &piclient.StellarError{Op: "parsing native balance", Err: fmt.Errorf("balance %q is not a decimal: %w", balance.Balance, parseErr)}
		}
		return parsed, nil
	}

	// An existing account with no native entry holds exactly zero.
	return decimal.Zero, nil
}

func (s *accountService) SequenceNumber(ctx context.Context, net Network, accountID string) (int64, error) {
	if !strkey.IsValidEd25519PublicKey(accountID) {
		return 0, &piclient.InvalidArgumentError{Message: fmt.Sprintf("account id %q is not a valid public key", accountID)}
	}

	account, err := s.fetchAccount(ctx, net, accountID)
	if err != nil {
		return 0, err
	}
	return account.Sequence, nil
}

func (s *accountService) fetchAccount(ctx context.Context, net Network, accountID string) (*horizonAccount, error) {
	u, err := piclient.JoinPath(s.horizonURL(net), "accounts", accountID)
	if err != nil {
		return nil, err
	}

	respBody, err := s.executor.Do(ctx, piclient.Request{
		Method: http.MethodGet,
		URL:    u,
		Auth:   piclient.NoAuth(),
	})
	if err != nil {
		return nil, &piclient.StellarError{Op: fmt.Sprintf("fetching account %s", accountID), Err: err}
	}

	var account horizonAccount
	if err := json.Unmarshal(respBody, &account); err != nil {
		return nil, &piclient.StellarError{Op: "decoding account record", Err: err}
	}
	return &account, nil
}
