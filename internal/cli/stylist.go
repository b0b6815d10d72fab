package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (app *App) session() string {
	if app.Session != "" {
		return app.Session
	}
	if u := app.Store.User(); u != nil {
		return u.ID
	}
	return "guest"
}

func newStylistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stylist",
		Short: "Ask the AI stylist",
	}

	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask for styling advice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out(cmd), app.Stylist.Advise(cmd.Context(), app.session(), strings.Join(args, " ")))
			return nil
		},
	}

	lookbook := &cobra.Command{
		Use:   "lookbook <occasion>",
		Short: "Get a two-piece outfit for an occasion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lb := app.Stylist.Lookbook(cmd.Context(), strings.Join(args, " "))
			w := out(cmd)
			fmt.Fprintf(w, "Vibe:   %s\n", lb.Vibe)
			fmt.Fprintf(w, "Items:  %s\n", strings.Join(lb.Items, " + "))
			fmt.Fprintf(w, "Reason: %s\n", lb.Reason)
			return nil
		},
	}

	recommend := &cobra.Command{
		Use:   "recommend <interests>",
		Short: "Suggest categories for your interests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs := app.Stylist.Recommend(cmd.Context(), strings.Join(args, " "))
			if len(recs) == 0 {
				fmt.Fprintln(out(cmd), "No recommendations right now.")
				return nil
			}
			for _, r := range recs {
				fmt.Fprintf(out(cmd), "%s: %s\n", r.Category, r.Reason)
			}
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the stylist conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Stylist.ClearSession(cmd.Context(), app.session())
		},
	}

	cmd.AddCommand(ask, lookbook, recommend, reset)
	return cmd
}
