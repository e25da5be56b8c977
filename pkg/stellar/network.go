// Package stellar implements the ledger-facing half of the client: the
// network registry, the horizon account and balance reader, and the native
// payment builder and submitter.
package stellar

import (
	"fmt"

	"github.com/stellar/go-stellar-sdk/network"

	"github.com/pinetwork/pi-go/pkg/piclient"
)

// Network identifies one of the ledgers the client can talk to. The set is
// closed; adding a network is an edit to the two tables below, never a logic
// change.
type Network string

const (
	PiMainnet      Network = "Pi Network"
	PiTestnet      Network = "Pi Testnet"
	StellarTestnet Network = "Stellar Testnet"
)

// HorizonURL returns the horizon endpoint for the network. Pure and total
// over the defined variants.
func (n Network) HorizonURL() string {
	switch n {
	case PiMainnet:
		return "https://api.mainnet.minepi.com"
	case PiTestnet:
		return "https://api.testnet.minepi.com"
	case StellarTestnet:
		return "https://horizon-testnet.stellar.org"
	default:
		return ""
	}
}

// Passphrase returns the network's signing-domain passphrase, mixed into
// every transaction signature to prevent cross-network replay.
func (n Network) Passphrase() string {
	switch n {
	case PiMainnet:
		return "Pi Network"
	case PiTestnet:
		return "Pi Testnet"
	case StellarTestnet:
		return network.TestNetworkPassphrase
	default:
		return ""
	}
}

// AllNetworks lists every defined network variant.
func AllNetworks() []Network {
	return []Network{PiMainnet, PiTestnet, StellarTestnet}
}

// ParseNetwork maps a CLI/config name onto a Network.
func ParseNetwork(name string) (Network, error) {
	switch name {
	case "pi-mainnet", string(PiMainnet):
		return PiMainnet, nil
	case "pi-testnet", string(PiTestnet):
		return PiTestnet, nil
	case "stellar-testnet", string(StellarTestnet):
		return StellarTestnet, nil
	default:
		return "", &piclient.ConfigurationError{Message: fmt.Sprintf("unknown network %q, options: pi-mainnet, pi-testnet, stellar-testnet", name)}
	}
}
