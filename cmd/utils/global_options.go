package utils

import (
	"go/types"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/txnbuild"

	"github.com/pinetwork/pi-go/pkg/piclient"
	"github.com/pinetwork/pi-go/pkg/stellar"
)

func APIKeyOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:      "api-key",
		Usage:     "The Pi Network application API key.",
		OptType:   types.String,
		ConfigKey: configKey,
		Required:  true,
	}
}

func BaseURLOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "base-url",
		Usage:       "The base URL of the Pi Network API.",
		OptType:     types.String,
		ConfigKey:   configKey,
		FlagDefault: piclient.DefaultBaseURL,
		Required:    true,
	}
}

func LogLevelOption(configKey *logrus.Level) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "log-level",
		Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
		OptType:        types.String,
		FlagDefault:    "INFO",
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionLogLevel,
		Required:       false,
	}
}

func NetworkOption(configKey *stellar.Network) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "network",
		Usage:          `The network to operate on. Options: "pi-mainnet", "pi-testnet", or "stellar-testnet".`,
		OptType:        types.String,
		FlagDefault:    "pi-testnet",
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionNetwork,
		Required:       true,
	}
}

func TimeoutSecondsOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "timeout-seconds",
		Usage:       "The per-request timeout, in seconds.",
		OptType:     types.Int,
		ConfigKey:   configKey,
		FlagDefault: 30,
		Required:    true,
	}
}

func SourceSecretOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "source-secret",
		Usage:          "The secret seed of the account funds are sent from. Prefer setting this through the SOURCE_SECRET environment variable.",
		OptType:        types.String,
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionStellarSecret,
		Required:       true,
	}
}

func BaseFeeOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "base-fee",
		Usage:       "The base fee (in stroops) for submitting a transaction.",
		OptType:     types.Int,
		ConfigKey:   configKey,
		FlagDefault: 100 * txnbuild.MinBaseFee,
		Required:    true,
	}
}

func AccessTokenOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:      "access-token",
		Usage:     "The Pi user access token for user-scoped calls.",
		OptType:   types.String,
		ConfigKey: configKey,
		Required:  true,
	}
}
