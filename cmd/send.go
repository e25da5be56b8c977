package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/pinetwork/pi-go/cmd/utils"
	"github.com/pinetwork/pi-go/pkg/stellar"
)

type sendCmd struct {
	network        stellar.Network
	sourceSecret   string
	baseFee        int
	timeoutSeconds int
	logLevel       logrus.Level
	memo           string
}

func (c *sendCmd) Command() *cobra.Command {
	cfgOpts := config.ConfigOptions{
		utils.NetworkOption(&c.network),
		utils.SourceSecretOption(&c.sourceSecret),
		utils.BaseFeeOption(&c.baseFee),
		utils.TimeoutSecondsOption(&c.timeoutSeconds),
		utils.LogLevelOption(&c.logLevel),
	}

	cmd := &cobra.Command{
		Use:   "send DESTINATION AMOUNT",
		Short: "Send native Pi from the source account to a destination",
		Args:  cobra.ExactArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.DefaultPersistentPreRunE(cfgOpts)(cmd, args); err != nil {
				return err
			}
			utils.ApplyLogLevel(c.logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			executor, err := newHorizonExecutor(c.timeoutSeconds)
			if err != nil {
				return err
			}
			accounts, err := stellar.NewAccountService(executor)
			if err != nil {
				return fmt.Errorf("building account service: %w", err)
			}
			payments, err := stellar.NewPaymentService(stellar.PaymentServiceOptions{
				AccountService: accounts,
				Executor:       executor,
				BaseFee:        int64(c.baseFee),
			})
			if err != nil {
				return fmt.Errorf("building payment service: %w", err)
			}

			result, err := payments.SendNative(cmd.Context(), stellar.SendNativeRequest{
				Network:      c.network,
				SourceSecret: c.sourceSecret,
				Destination:  args[0],
				Amount:       amount,
				Memo:         c.memo,
			})
			if err != nil {
				return fmt.Errorf("sending payment: %w", err)
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&c.memo, "memo", "", "An optional short text memo attached to the transaction.")

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
