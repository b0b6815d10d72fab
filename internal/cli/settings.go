package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vancy-storefront/server/internal/storefront/model"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change store settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show store settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Store.Settings()
			w := out(cmd)
			fmt.Fprintf(w, "Free shipping from: %s\n", inr(s.FreeShippingThreshold))
			fmt.Fprintf(w, "Flat shipping rate: %s\n", inr(s.FlatShippingRate))
			fmt.Fprintf(w, "Payment gateways:   %s\n", strings.Join(s.EnabledPaymentGateways, ", "))
			fmt.Fprintf(w, "Delivery partners:  %s\n", strings.Join(s.DeliveryPartners, ", "))
			return nil
		},
	}

	var threshold, rate float64
	setShipping := &cobra.Command{
		Use:   "set-shipping",
		Short: "Change the free shipping threshold or flat rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			var u model.SettingsUpdate
			if cmd.Flags().Changed("threshold") {
				u.FreeShippingThreshold = &threshold
			}
			if cmd.Flags().Changed("rate") {
				u.FlatShippingRate = &rate
			}
			s, err := app.Store.UpdateStoreSettings(cmd.Context(), u)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Shipping: free from %s, otherwise %s.\n", inr(s.FreeShippingThreshold), inr(s.FlatShippingRate))
			return nil
		},
	}
	setShipping.Flags().Float64Var(&threshold, "threshold", 0, "free shipping threshold")
	setShipping.Flags().Float64Var(&rate, "rate", 0, "flat shipping rate")

	var gateways, partners string
	setPartners := &cobra.Command{
		Use:   "set-partners",
		Short: "Change payment gateways or delivery partners",
		RunE: func(cmd *cobra.Command, args []string) error {
			var u model.SettingsUpdate
			if cmd.Flags().Changed("gateways") {
				u.EnabledPaymentGateways = append([]string{}, splitList(gateways)...)
			}
			if cmd.Flags().Changed("partners") {
				u.DeliveryPartners = append([]string{}, splitList(partners)...)
			}
			_, err := app.Store.UpdateStoreSettings(cmd.Context(), u)
			return err
		},
	}
	setPartners.Flags().StringVar(&gateways, "gateways", "", "comma separated payment gateways")
	setPartners.Flags().StringVar(&partners, "partners", "", "comma separated delivery partners")

	cmd.AddCommand(show, setShipping, setPartners)
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var ltv string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show admin dashboard figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := out(cmd)
			if ltv != "" {
				fmt.Fprintf(w, "Lifetime value of %s: %s\n", ltv, inr(app.Store.LifetimeValue(ltv)))
				return nil
			}
			st := app.Store.Stats()
			fmt.Fprintf(w, "Revenue:    %s\n", inr(st.Revenue))
			fmt.Fprintf(w, "Orders:     %d\n", st.Orders)
			fmt.Fprintf(w, "Buyers:     %d\n", st.Buyers)
			fmt.Fprintf(w, "Products:   %d\n", st.Products)
			fmt.Fprintf(w, "Categories: %d\n", st.Categories)
			fmt.Fprintf(w, "Coupons:    %d\n", st.Coupons)
			return nil
		},
	}
	cmd.Flags().StringVar(&ltv, "ltv", "", "show the lifetime value of a buyer email")
	return cmd
}
