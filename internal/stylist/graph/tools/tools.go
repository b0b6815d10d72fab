package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/storefront/catalog"
	storemodel "github.com/vancy-storefront/server/internal/storefront/model"
)

const (
	ToolSearchProduct     = "search_product"
	ToolGetProductDetails = "get_product_details"
)

// Catalog is the read side of the store the tools query.
type Catalog interface {
	SearchProducts(q catalog.SearchQuery) []storemodel.Product
	Product(id string) (storemodel.Product, bool)
}

// GetQueryTools returns every catalog tool bound to the stylist model.
func GetQueryTools(c Catalog) []tool.BaseTool {
	return []tool.BaseTool{
		createSearchProductTool(c),
		createGetProductDetailsTool(c),
	}
}

func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
