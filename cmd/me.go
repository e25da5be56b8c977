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

type meCmd struct {
	apiKey         string
	baseURL        string
	accessToken    string
	timeoutSeconds int
	logLevel       logrus.Level
}

func (c *meCmd) Command() *cobra.Command {
	cfgOpts := config.ConfigOptions{
		utils.APIKeyOption(&c.apiKey),
		utils.BaseURLOption(&c.baseURL),
		utils.AccessTokenOption(&c.accessToken),
		utils.TimeoutSecondsOption(&c.timeoutSeconds),
		utils.LogLevelOption(&c.logLevel),
	}

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Resolve the identity behind a user access token",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.DefaultPersistentPreRunE(cfgOpts)(cmd, args); err != nil {
				return err
			}
			utils.ApplyLogLevel(c.logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := piclient.NewClientConfig(c.apiKey)
			if err != nil {
				return fmt.Errorf("building client config: %w", err)
			}
			cfg.BaseURL = c.baseURL
			cfg.Timeout = time.Duration(c.timeoutSeconds) * time.Second

			client, err := piclient.NewClient(cfg)
			if err != nil {
				return fmt.Errorf("building client: %w", err)
			}

			user, err := client.Me(cmd.Context(), c.accessToken)
			if err != nil {
				return fmt.Errorf("resolving user identity: %w", err)
			}
			return printJSON(user)
		},
	}

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
