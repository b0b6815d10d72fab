package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> [password]",
		Short: "Log in (any password is accepted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 2 {
				password = args[1]
			}
			u, err := app.Store.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Welcome back, %s (%s).\n", u.Name, u.Role)
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <email> [password]",
		Short: "Create a buyer account and log in",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 3 {
				password = args[2]
			}
			u, err := app.Store.Register(cmd.Context(), args[0], args[1], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Welcome, %s.\n", u.Name)
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the cart and wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := app.session()
			if err := app.Store.Logout(cmd.Context()); err != nil {
				return err
			}
			if app.Stylist != nil {
				if err := app.Stylist.ClearSession(cmd.Context(), session); err != nil {
					return err
				}
			}
			fmt.Fprintln(out(cmd), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := app.Store.User()
			if u == nil {
				fmt.Fprintf(out(cmd), "Not logged in (%s).\n", app.Store.Role())
				return nil
			}
			fmt.Fprintf(out(cmd), "%s <%s> %s\n", u.Name, u.Email, app.Store.Role())
			for _, a := range u.Addresses {
				def := ""
				if a.IsDefault {
					def = " (default)"
				}
				fmt.Fprintf(out(cmd), "  %s %s: %s, %s %s%s\n", a.ID, a.Label, a.Street, a.City, a.Zip, def)
			}
			return nil
		},
	}
}

func newAddressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Manage saved addresses",
	}

	var a model.Address
	add := &cobra.Command{
		Use:   "add",
		Short: "Save an address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store.User() == nil {
				return errx.Domain(errx.ErrNotLoggedIn, "Please log in first.")
			}
			saved, err := app.Store.AddAddress(cmd.Context(), a)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Saved address %s.\n", saved.ID)
			return nil
		},
	}
	add.Flags().StringVar(&a.Label, "label", "Home", "address name")
	add.Flags().StringVar(&a.Street, "street", "", "street")
	add.Flags().StringVar(&a.City, "city", "", "city")
	add.Flags().StringVar(&a.Zip, "zip", "", "zip")
	add.Flags().BoolVar(&a.IsDefault, "default", false, "make it the default address")

	remove := &cobra.Command{
		Use:   "remove <address-id>",
		Short: "Remove a saved address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Store.RemoveAddress(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func newWishlistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range app.Store.Wishlist() {
				if p, ok := app.Store.Product(id); ok {
					printProductLine(cmd, p)
				} else {
					fmt.Fprintln(out(cmd), id)
				}
			}
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add or remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := app.Store.ToggleWishlist(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(out(cmd), "Added %s to wishlist.\n", args[0])
			} else {
				fmt.Fprintf(out(cmd), "Removed %s from wishlist.\n", args[0])
			}
			return nil
		},
	}

	cmd.AddCommand(toggle)
	return cmd
}
