package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/pinetwork/pi-go/cmd/utils"
	"github.com/pinetwork/pi-go/pkg/piclient"
)

type paymentCmd struct {
	apiKey         string
	baseURL        string
	timeoutSeconds int
	logLevel       logrus.Level
}

func (c *paymentCmd) Command() *cobra.Command {
	cfgOpts := config.ConfigOptions{
		utils.APIKeyOption(&c.apiKey),
		utils.BaseURLOption(&c.baseURL),
		utils.TimeoutSecondsOption(&c.timeoutSeconds),
		utils.LogLevelOption(&c.logLevel),
	}

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Inspect and drive the payment lifecycle",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.DefaultPersistentPreRunE(cfgOpts)(cmd, args); err != nil {
				return err
			}
			utils.ApplyLogLevel(c.logLevel)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmd.Help(); err != nil {
				log.Fatalf("Error calling help command: %s", err.Error())
			}
		},
	}

	cmd.AddCommand(c.getCommand())
	cmd.AddCommand(c.approveCommand())
	cmd.AddCommand(c.completeCommand())
	cmd.AddCommand(c.cancelCommand())

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}

func (c *paymentCmd) newClient() (*piclient.Client, error) {
	cfg, err := piclient.NewClientConfig(c.apiKey)
	if err != nil {
		return nil, fmt.Errorf("building client config: %w", err)
	}
	cfg.BaseURL = c.baseURL
	cfg.Timeout = time.Duration(c.timeoutSeconds) * time.Second

	client, err := piclient.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}
	return client, nil
}

func (c *paymentCmd) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAYMENT_ID",
		Short: "Fetch the server's current representation of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			payment, err := client.GetPayment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting payment: %w", err)
			}
			return printJSON(payment)
		},
	}
}

func (c *paymentCmd) approveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve PAYMENT_ID",
		Short: "Register the developer-side approval of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			payment, err := client.ApprovePayment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("approving payment: %w", err)
			}
			return printJSON(payment)
		},
	}
}

func (c *paymentCmd) completeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete PAYMENT_ID TX_ID",
		Short: "Mark a payment as completed with its settling transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			payment, err := client.CompletePayment(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("completing payment: %w", err)
			}
			return printJSON(payment)
		},
	}
}

func (c *paymentCmd) cancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel PAYMENT_ID",
		Short: "Cancel a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			payment, err := client.CancelPayment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("cancelling payment: %w", err)
			}
			return printJSON(payment)
		},
	}
}
