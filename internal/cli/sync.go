package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewStockCommand creates the stock command group.
func NewStockCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Show displayed stock (server baseline + local deltas)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			session, err := t.Catalog.Load(ctx)
			if err != nil {
				return err
			}

			for _, p := range session.Products() {
				p := p
				fmt.Printf("%-10s %-24s stock %4d (delta %+d)\n",
					p.SKU, p.Name, t.Ledger.DisplayedStock(&p), t.Ledger.Delta(p.ID))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Discard all local stock deltas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			t.Ledger.ClearAll(ctx)
			fmt.Println("stock deltas cleared")
			return nil
		},
	})

	return cmd
}

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List locally queued orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			orders := t.Queue.All()
			if len(orders) == 0 {
				fmt.Println("no queued orders")
				return nil
			}
			for _, o := range orders {
				fmt.Printf("%s  %s  total %10d  %s  attempts %d\n",
					o.ID, o.CreatedAt.Format("2006-01-02 15:04:05"), o.Total, o.Status, o.Attempts)
			}
			return nil
		},
	}
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(opts *RootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Submit queued orders to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			poller := t.NewPoller()

			if !watch {
				submitted := poller.DrainOnce(ctx)
				fmt.Printf("submitted %d order(s), %d pending\n", submitted, len(t.Queue.Pending()))
				return nil
			}

			runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			fmt.Printf("syncing every %s, Ctrl-C to stop\n", t.Config.SyncInterval)
			poller.Run(runCtx)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep syncing until interrupted")

	return cmd
}
