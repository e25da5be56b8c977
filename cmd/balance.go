package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/pinetwork/pi-go/cmd/utils"
	"github.com/pinetwork/pi-go/pkg/stellar"
)

type balanceCmd struct {
	network        stellar.Network
	timeoutSeconds int
	logLevel       logrus.Level
}

func (c *balanceCmd) Command() *cobra.Command {
	cfgOpts := config.ConfigOptions{
		utils.NetworkOption(&c.network),
		utils.TimeoutSecondsOption(&c.timeoutSeconds),
		utils.LogLevelOption(&c.logLevel),
	}

	cmd := &cobra.Command{
		Use:   "balance ACCOUNT_OR_SECRET",
		Short: "Query an account's native balance on a network",
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.DefaultPersistentPreRunE(cfgOpts)(cmd, args); err != nil {
				return err
			}
			utils.ApplyLogLevel(c.logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			executor, err := newHorizonExecutor(c.timeoutSeconds)
			if err != nil {
				return err
			}
			accounts, err := stellar.NewAccountService(executor)
			if err != nil {
				return fmt.Errorf("building account service: %w", err)
			}

			balance, err := accounts.NativeBalance(cmd.Context(), c.network, args[0])
			if err != nil {
				return fmt.Errorf("querying native balance: %w", err)
			}
			fmt.Println(balance.String())
			return nil
		},
	}

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
