package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vancy-storefront/server/internal/storefront/catalog"
	"github.com/vancy-storefront/server/internal/storefront/model"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and manage products and categories",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range app.Store.Products() {
				if category != "" && !strings.EqualFold(p.Category, category) {
					continue
				}
				printProductLine(cmd, p)
			}
			return nil
		},
	}
	list.Flags().StringVar(&category, "category", "", "only show this category")

	var searchCategory string
	var maxResults int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := app.Store.SearchProducts(catalog.SearchQuery{
				Query:      strings.Join(args, " "),
				Category:   searchCategory,
				MaxResults: maxResults,
			})
			if len(found) == 0 {
				fmt.Fprintln(out(cmd), "No products found.")
				return nil
			}
			for _, p := range found {
				printProductLine(cmd, p)
			}
			return nil
		},
	}
	search.Flags().StringVar(&searchCategory, "category", "", "category filter")
	search.Flags().IntVar(&maxResults, "max", catalog.DefaultSearchResults, "maximum results")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := app.Store.Product(args[0])
			if !ok {
				return fmt.Errorf("product %s not found", args[0])
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s  %s\n", p.ID, p.Name)
			fmt.Fprintf(w, "Category: %s\n", p.Category)
			fmt.Fprintf(w, "Price:    %s (was %s)\n", inr(p.Price), inr(p.OriginalPrice))
			fmt.Fprintf(w, "Sizes:    %s\n", strings.Join(p.Sizes, ", "))
			fmt.Fprintf(w, "Colors:   %s\n", strings.Join(p.Colors, ", "))
			fmt.Fprintf(w, "Fabric:   %s\n", p.Fabric)
			fmt.Fprintf(w, "Rating:   %.1f (%d reviews)\n", p.Rating, p.ReviewCount)
			fmt.Fprintf(w, "Stock:    %d\n", p.Stock)
			fmt.Fprintln(w, p.Description)
			return nil
		},
	}

	var np model.Product
	var sizes, colors string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			np.Sizes = splitList(sizes)
			np.Colors = splitList(colors)
			added, err := app.Store.AddProduct(cmd.Context(), np)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}
	add.Flags().StringVar(&np.Name, "name", "", "product name")
	add.Flags().StringVar(&np.Category, "category", "", "category")
	add.Flags().Float64Var(&np.Price, "price", 0, "selling price")
	add.Flags().Float64Var(&np.OriginalPrice, "original-price", 0, "list price")
	add.Flags().IntVar(&np.Stock, "stock", 0, "units in stock")
	add.Flags().StringVar(&np.Fabric, "fabric", "", "fabric")
	add.Flags().StringVar(&np.Description, "description", "", "description")
	add.Flags().StringVar(&sizes, "sizes", "", "comma separated sizes")
	add.Flags().StringVar(&colors, "colors", "", "comma separated colors")
	_ = add.MarkFlagRequired("name")

	setStock := &cobra.Command{
		Use:   "set-stock <product-id> <units>",
		Short: "Set the stock of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid stock %q", args[1])
			}
			return app.Store.UpdateProduct(cmd.Context(), args[0], model.ProductUpdate{Stock: &n})
		},
	}

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Store.DeleteProduct(cmd.Context(), args[0])
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range app.Store.Categories() {
				fmt.Fprintln(out(cmd), c)
			}
			return nil
		},
	}

	addCategory := &cobra.Command{
		Use:   "add-category <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Store.AddCategory(cmd.Context(), strings.Join(args, " "))
		},
	}

	deleteCategory := &cobra.Command{
		Use:   "delete-category <name>",
		Short: "Delete a category; its products keep the name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Store.DeleteCategory(cmd.Context(), strings.Join(args, " "))
		},
	}

	cmd.AddCommand(list, search, show, add, setStock, del, categories, addCategory, deleteCategory)
	return cmd
}

func printProductLine(cmd *cobra.Command, p model.Product) {
	fmt.Fprintf(out(cmd), "%-10s %-36s %-20s %8s  stock %d\n", p.ID, p.Name, p.Category, inr(p.Price), p.Stock)
}

func splitList(s string) []string {
	var outList []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			outList = append(outList, part)
		}
	}
	return outList
}
