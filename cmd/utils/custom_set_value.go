package utils

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/pinetwork/pi-go/pkg/stellar"
)

func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	logLevelStr := viper.GetString(co.Name)

	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a logrus.Level, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = logLevel

	return nil
}

func SetConfigOptionNetwork(co *config.ConfigOption) error {
	networkName := viper.GetString(co.Name)

	net, err := stellar.ParseNetwork(networkName)
	if err != nil {
		return fmt.Errorf("error validating network in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*stellar.Network)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a stellar.Network, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = net

	return nil
}

func SetConfigOptionStellarSecret(co *config.ConfigOption) error {
	secret := viper.GetString(co.Name)

	kp, err := keypair.ParseFull(secret)
	if err != nil {
		return fmt.Errorf("error validating secret seed in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a string, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = kp.Seed()

	return nil
}
