package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the pos CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "pos",
		Short:         "Offline point-of-sale terminal",
		Long:          "A point-of-sale terminal that keeps selling while the backend is unreachable: local cart, tentative stock depletion, queued orders synced later.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "pos.yaml", "config file path")

	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))
	cmd.AddCommand(NewCouponCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))
	cmd.AddCommand(NewStockCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))

	return cmd
}
