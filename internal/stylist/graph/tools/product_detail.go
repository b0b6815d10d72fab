package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetProductDetailsInput struct {
	ProductID string `json:"product_id"`
}

type GetProductDetailsOutput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Fabric        string   `json:"fabric"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Stock         int      `json:"stock"`
	InStock       bool     `json:"in_stock"`
}

func createGetProductDetailsTool(c Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductDetails,
			Desc: "Get the full details of one product: description, fabric, available sizes and colours, rating and stock. Use it when the customer asks about fit, material or availability of a specific item.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "string",
					Desc:     "Product id taken from search_product results (e.g. m1, m2). Must be an exact id.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*GetProductDetailsOutput, error) {
			id := strings.TrimSpace(in.ProductID)
			if id == "" {
				return nil, fmt.Errorf("product_id is required")
			}

			p, ok := c.Product(id)
			if !ok {
				return nil, fmt.Errorf("product not found: %s", id)
			}
			return &GetProductDetailsOutput{
				ID:            p.ID,
				Name:          p.Name,
				Category:      p.Category,
				Description:   p.Description,
				Price:         p.Price,
				OriginalPrice: p.OriginalPrice,
				Sizes:         p.Sizes,
				Colors:        p.Colors,
				Fabric:        p.Fabric,
				Rating:        p.Rating,
				ReviewCount:   p.ReviewCount,
				Stock:         p.Stock,
				InStock:       p.InStock(),
			}, nil
		},
	)
}
