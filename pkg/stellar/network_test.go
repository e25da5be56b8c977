package stellar

import (
	"testing"

	"github.com/stellar/go-stellar-sdk/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinetwork/pi-go/pkg/piclient"
)

func TestNetworkRegistryIsTotal(t *testing.T) {
	for _, net := range AllNetworks() {
		t.Run(string(net), func(t *testing.T) {
			assert.NotEmpty(t, net.HorizonURL())
			assert.NotEmpty(t, net.Passphrase())
		})
	}
}

func TestNetworkRegistryValues(t *testing.T) {
	assert.Equal(t, "https://api.mainnet.minepi.com", PiMainnet.HorizonURL())
	assert.Equal(t, "Pi Network", PiMainnet.Passphrase())

	assert.Equal(t, "https://api.testnet.minepi.com", PiTestnet.HorizonURL())
	assert.Equal(t, "Pi Testnet", PiTestnet.Passphrase())

	assert.Equal(t, "https://horizon-testnet.stellar.org", StellarTestnet.HorizonURL())
	assert.Equal(t, network.TestNetworkPassphrase, StellarTestnet.Passphrase())
}

func TestParseNetwork(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		wantNetwork Network
		wantErr     bool
	}{
		{name: "pi_mainnet", input: "pi-mainnet", wantNetwork: PiMainnet},
		{name: "pi_testnet", input: "pi-testnet", wantNetwork: PiTestnet},
		{name: "stellar_testnet", input: "stellar-testnet", wantNetwork: StellarTestnet},
		{name: "passphrase_style_name", input: "Pi Network", wantNetwork: PiMainnet},
		{name: "unknown", input: "dogecoin", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			net, err := ParseNetwork(tc.input)
			if tc.wantErr {
				var cfgErr *piclient.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNetwork, net)
		})
	}
}
