package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
	"github.com/vancy-storefront/server/internal/storefront/orders"
)

func newCheckoutCmd(app *App) *cobra.Command {
	var coupon string
	var addr model.Address
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Long: `Place an order for the current cart. The shipping address defaults to
the logged-in user's default address; pass --street, --city and --zip to
ship elsewhere.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ship, err := shippingAddress(app, addr)
			if err != nil {
				return err
			}
			if coupon != "" {
				if _, err := app.Store.ApplyCoupon(coupon); err != nil {
					return err
				}
			}
			o, err := app.Store.Checkout(cmd.Context(), ship)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Order %s placed. Total %s.\n", o.ID, inr(o.Total))
			return nil
		},
	}
	cmd.Flags().StringVar(&coupon, "coupon", "", "coupon code to apply")
	cmd.Flags().StringVar(&addr.Street, "street", "", "shipping street")
	cmd.Flags().StringVar(&addr.City, "city", "", "shipping city")
	cmd.Flags().StringVar(&addr.Zip, "zip", "", "shipping zip")
	return cmd
}

func shippingAddress(app *App, flags model.Address) (model.Address, error) {
	if flags.Street != "" || flags.City != "" || flags.Zip != "" {
		if flags.Street == "" || flags.City == "" || flags.Zip == "" {
			return model.Address{}, errx.Domain(errx.ErrInvalidInput, "Street, city and zip are all required.")
		}
		flags.Label = "Checkout"
		return flags, nil
	}
	if a, ok := app.Store.User().DefaultAddress(); ok {
		return a, nil
	}
	return model.Address{}, errx.Domain(errx.ErrInvalidInput, "A shipping address is required.")
}

func newOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View and fulfil orders",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders, or every order with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := app.Store.Orders()
			if all {
				list = app.Store.AllOrders()
			}
			if len(list) == 0 {
				fmt.Fprintln(out(cmd), "No orders yet.")
				return nil
			}
			for _, o := range list {
				fmt.Fprintf(out(cmd), "%s  %s  %-17s %8s  %s\n",
					o.ID, o.Date.Format("2006-01-02"), o.Status, inr(o.Total), o.CustomerEmail)
			}
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "admin view of every order")

	show := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, ok := app.Store.Order(args[0])
			if !ok {
				return errx.Domainf(errx.ErrNotFound, "Order %s not found.", args[0])
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s  %s  %s\n", o.ID, o.Date.Format("2006-01-02 15:04"), o.Status)
			for _, it := range o.Items {
				fmt.Fprintf(w, "  %s (%s, %s) x%d  %s\n", it.Product.Name, it.SelectedSize, it.SelectedColor, it.Quantity, inr(it.LineTotal()))
			}
			fmt.Fprintf(w, "Subtotal %s  Shipping %s  Discount %s  Total %s\n",
				inr(o.Subtotal), inr(o.Shipping), inr(o.Discount), inr(o.Total))
			if o.ShippingAddress != nil {
				a := o.ShippingAddress
				fmt.Fprintf(w, "Ship to: %s, %s %s\n", a.Street, a.City, a.Zip)
			}
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set an order's status",
		Long:  "Set an order's status. Known statuses: " + knownStatuses(),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatus(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return app.Store.UpdateOrderStatus(cmd.Context(), args[0], st)
		},
	}

	refund := &cobra.Command{
		Use:   "refund <order-id>",
		Short: "Request a refund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Store.RequestRefund(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, show, status, refund)
	return cmd
}

// parseStatus matches a status name case-insensitively.
func parseStatus(s string) (model.OrderStatus, error) {
	for _, st := range orders.All() {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", errx.Domainf(errx.ErrUnknownStatus, "Unknown status %q.", s)
}

func knownStatuses() string {
	names := make([]string, 0, len(orders.All()))
	for _, st := range orders.All() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
