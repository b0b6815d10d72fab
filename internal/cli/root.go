// Package cli exposes the storefront operations as a cobra command tree.
package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vancy-storefront/server/internal/storefront"
	"github.com/vancy-storefront/server/internal/stylist"
)

// App is what every command operates on.
type App struct {
	Store   *storefront.Store
	Stylist *stylist.Service
	// Session keys the stylist history; defaults to the logged-in user.
	Session string
}

func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Vancy storefront admin and buyer console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCatalogCmd(app),
		newCartCmd(app),
		newCouponCmd(app),
		newCheckoutCmd(app),
		newOrdersCmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newAddressCmd(app),
		newWishlistCmd(app),
		newSettingsCmd(app),
		newStatsCmd(app),
		newStylistCmd(app),
	)
	return root
}

func inr(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// parseIndex converts a 1-based line number from the command line.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line number %q", s)
	}
	return n - 1, nil
}
