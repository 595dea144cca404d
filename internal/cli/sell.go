package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command. Scanner wedges deliver the SKU
// as ordinary text followed by Enter, so a scan and a typed SKU look the
// same here.
func NewScanCommand(opts *RootOptions) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "scan <sku>",
		Short: "Add a scanned product to the cart",
		Args:  cobra.ExactArgs(1),
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

			product, err := session.BySKU(args[0])
			if err != nil {
				return err
			}

			if err := t.Cart.Add(ctx, product, qty); err != nil {
				return err
			}

			fmt.Printf("%s x%d added, %d in stock, cart total %d\n",
				product.Name, qty, t.Ledger.DisplayedStock(product), t.Cart.Subtotal())
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity to add")

	return cmd
}

// NewCartCommand creates the cart command group.
func NewCartCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			lines := t.Cart.Lines()
			if len(lines) == 0 {
				fmt.Println("cart is empty")
				return nil
			}
			for _, l := range lines {
				fmt.Printf("%-10s %-24s %3d x %8d = %10d\n", l.SKU, l.Name, l.Quantity, l.Price, l.LineTotal())
			}
			fmt.Printf("%d item(s), subtotal %d\n", t.Cart.ItemCount(), t.Cart.Subtotal())
			return nil
		},
	}

	cmd.AddCommand(newCartSetCommand(opts))
	cmd.AddCommand(newCartClearCommand(opts))

	return cmd
}

func newCartSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <sku> <qty>",
		Short: "Set the quantity for a product (0 removes it)",
		Args:  cobra.ExactArgs(2),
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

			product, err := session.BySKU(args[0])
			if err != nil {
				return err
			}

			var qty int
			if _, err := fmt.Sscanf(args[1], "%d", &qty); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			if err := t.Cart.SetQuantity(ctx, product, qty); err != nil {
				return err
			}

			fmt.Printf("%s quantity now %d\n", product.Name, t.Cart.Quantity(product.ID))
			return nil
		},
	}
}

func newCartClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			t.Cart.Clear(ctx)
			fmt.Println("cart cleared")
			return nil
		},
	}
}
