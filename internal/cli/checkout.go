package cli

import (
	"fmt"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/spf13/cobra"
)

// NewCouponCommand creates the coupon command group.
func NewCouponCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon <code>",
		Short: "Apply a coupon code to the cart",
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

			applied, err := t.Checkout.ApplyCoupon(ctx, args[0], session.Coupons())
			if err != nil {
				return err
			}

			fmt.Printf("coupon %s applied, discount %d\n", applied.Coupon.Code, applied.DiscountAmount)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the applied coupon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			t.Checkout.RemoveCoupon(ctx)
			fmt.Println("coupon removed")
			return nil
		},
	})

	return cmd
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(opts *RootOptions) *cobra.Command {
	var pay string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Capture the sale and print the receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := openTerminal(ctx, opts)
			if err != nil {
				return err
			}
			defer t.Close()

			method, err := paymentMethod(pay)
			if err != nil {
				return err
			}

			order, err := t.Checkout.Checkout(ctx, method, t.Config.Operator)
			if err != nil {
				return err
			}

			fmt.Print(t.Receipt.Format(order))
			return nil
		},
	}

	cmd.Flags().StringVarP(&pay, "pay", "p", "cash", "payment method (cash|card|qris)")

	return cmd
}

func paymentMethod(s string) (domain.PaymentMethod, error) {
	switch s {
	case "cash":
		return domain.PaymentCash, nil
	case "card":
		return domain.PaymentCard, nil
	case "qris":
		return domain.PaymentQRIS, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}
