package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vancy-storefront/server/internal/storefront/model"
)

func newCouponCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon",
		Short: "Manage coupons",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List coupons",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range app.Store.Coupons() {
				state := "active"
				if !c.IsActive {
					state = "inactive"
				}
				value := inr(c.Value)
				if c.DiscountType == model.DiscountPercentage {
					value = fmt.Sprintf("%g%%", c.Value)
				}
				expiry := c.ExpiryDate
				if expiry == "" {
					expiry = "never"
				}
				fmt.Fprintf(out(cmd), "%-12s %-8s min %-8s expires %-10s %s\n", c.Code, value, inr(c.MinSpend), expiry, state)
			}
			return nil
		},
	}

	var c model.Coupon
	var discountType string
	var inactive bool
	add := &cobra.Command{
		Use:   "add <code>",
		Short: "Create a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Code = args[0]
			c.DiscountType = model.DiscountType(strings.ToLower(discountType))
			c.IsActive = !inactive
			added, err := app.Store.AddCoupon(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Created %s (%s)\n", added.Code, added.ID)
			return nil
		},
	}
	add.Flags().StringVar(&discountType, "type", string(model.DiscountPercentage), "percentage or fixed")
	add.Flags().Float64Var(&c.Value, "value", 0, "percent or rupee amount")
	add.Flags().Float64Var(&c.MinSpend, "min-spend", 0, "minimum subtotal")
	add.Flags().StringVar(&c.ExpiryDate, "expires", "", "expiry date (YYYY-MM-DD)")
	add.Flags().BoolVar(&inactive, "inactive", false, "create disabled")

	del := &cobra.Command{
		Use:   "delete <id-or-code>",
		Short: "Delete a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Store.DeleteCoupon(cmd.Context(), args[0])
		},
	}

	apply := &cobra.Command{
		Use:   "apply <code>",
		Short: "Apply a coupon to the current cart and show the totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Store.ApplyCoupon(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Coupon %s applied: -%s\n", applied.Code, inr(applied.DiscountAmount))
			printSummary(cmd, app.Store.Quote())
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove",
		Short: "Remove the applied coupon",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Store.RemoveCoupon()
			printSummary(cmd, app.Store.Quote())
			return nil
		},
	}

	cmd.AddCommand(list, add, del, apply, remove)
	return cmd
}
