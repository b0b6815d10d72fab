package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vancy-storefront/server/internal/storefront/pricing"
)

func newCartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	var coupon string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if coupon != "" {
				if _, err := app.Store.ApplyCoupon(coupon); err != nil {
					return err
				}
			}
			items := app.Store.Cart()
			if len(items) == 0 {
				fmt.Fprintln(out(cmd), "Your cart is empty.")
				return nil
			}
			for i, it := range items {
				fmt.Fprintf(out(cmd), "%d. %s (%s, %s) x%d  %s\n",
					i+1, it.Product.Name, it.SelectedSize, it.SelectedColor, it.Quantity, inr(it.LineTotal()))
			}
			printSummary(cmd, app.Store.Quote())
			return nil
		},
	}
	show.Flags().StringVar(&coupon, "coupon", "", "preview totals with a coupon")

	var size, color string
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.AddProductToCart(cmd.Context(), args[0], size, color); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Cart has %d items.\n", app.Store.CartCount())
			return nil
		},
	}
	add.Flags().StringVar(&size, "size", "", "selected size")
	add.Flags().StringVar(&color, "color", "", "selected color")

	remove := &cobra.Command{
		Use:   "remove <line>",
		Short: "Remove a cart line (1-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return app.Store.RemoveFromCart(cmd.Context(), i)
		},
	}

	qty := &cobra.Command{
		Use:   "qty <line> <delta>",
		Short: "Change a line's quantity by delta (never below 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}
			return app.Store.UpdateQuantity(cmd.Context(), i, delta)
		},
	}

	cmd.AddCommand(show, add, remove, qty)
	return cmd
}

func printSummary(cmd *cobra.Command, s pricing.Summary) {
	w := out(cmd)
	fmt.Fprintf(w, "Subtotal: %s\n", inr(s.Subtotal))
	if s.FreeShipping() {
		fmt.Fprintln(w, "Shipping: FREE")
	} else {
		fmt.Fprintf(w, "Shipping: %s\n", inr(s.Shipping))
	}
	if s.CouponCode != "" {
		fmt.Fprintf(w, "Discount (%s): -%s\n", s.CouponCode, inr(s.Discount))
	}
	fmt.Fprintf(w, "Total:    %s\n", inr(s.Total))
}
