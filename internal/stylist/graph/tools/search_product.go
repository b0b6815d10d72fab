package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/storefront/catalog"
)

type SearchProductInput struct {
	Query      string `json:"query"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type ProductSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Rating        float64 `json:"rating"`
	InStock       bool    `json:"in_stock"`
}

type SearchProductOutput struct {
	Products []ProductSummary `json:"products"`
	Total    int              `json:"total"`
}

func createSearchProductTool(c Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProduct,
			Desc: "Search the Vancy menswear catalog. Matches keywords against product name, category and description. Returns product ids, names, prices in INR and availability. Use it whenever the customer mentions a garment, fabric, colour or occasion.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Keywords such as polo, joggers, hoodie, cotton, navy.",
					Required: true,
				},
				"category": {
					Type: "string",
					Desc: "Optional exact category filter, e.g. Polo T-Shirts, Joggers, Chino Shorts, Hoodies.",
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum number of products to return (default: 10, max: 20)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			if strings.TrimSpace(in.Query) == "" {
				return nil, fmt.Errorf("query is required")
			}

			found := c.SearchProducts(catalog.SearchQuery{
				Query:      in.Query,
				Category:   in.Category,
				MaxResults: in.MaxResults,
			})

			out := &SearchProductOutput{Products: make([]ProductSummary, 0, len(found))}
			for _, p := range found {
				out.Products = append(out.Products, ProductSummary{
					ID:            p.ID,
					Name:          p.Name,
					Category:      p.Category,
					Price:         p.Price,
					OriginalPrice: p.OriginalPrice,
					Rating:        p.Rating,
					InStock:       p.InStock(),
				})
			}
			out.Total = len(out.Products)
			return out, nil
		},
	)
}
