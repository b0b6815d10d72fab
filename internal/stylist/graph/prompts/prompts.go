package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/graph/tools"
	"github.com/vancy-storefront/server/internal/stylist/model"
)

var (
	//go:embed template/advice_prompt.txt
	adviceSystemPrompt string

	//go:embed template/lookbook_prompt.txt
	lookbookSystemPrompt string

	//go:embed template/recommend_prompt.txt
	recommendSystemPrompt string
)

// RenderAdviceSystem renders the stylist chat system prompt.
func RenderAdviceSystem(ctx context.Context, config model.PromptConfig) (string, error) {
	msgs, err := format(ctx, "advice", vars(config), schema.SystemMessage(adviceSystemPrompt))
	if err != nil {
		return "", err
	}
	return msgs[0].Content, nil
}

// LookbookMessages renders the system and user messages for an occasion.
func LookbookMessages(ctx context.Context, config model.PromptConfig, occasion string) ([]*schema.Message, error) {
	v := vars(config)
	v["Occasion"] = occasion
	return format(ctx, "lookbook", v,
		schema.SystemMessage(lookbookSystemPrompt),
		schema.UserMessage("Create a 2-item outfit recommendation for: {{.Occasion}}. Use {{.BrandName}} categories like Polos, Joggers, or Chinos."),
	)
}

// RecommendMessages renders the system and user messages for buyer interests.
func RecommendMessages(ctx context.Context, config model.PromptConfig, interests string) ([]*schema.Message, error) {
	v := vars(config)
	v["Interests"] = interests
	return format(ctx, "recommend", v,
		schema.SystemMessage(recommendSystemPrompt),
		schema.UserMessage("Suggest 3 men's fashion categories for a user who likes: {{.Interests}}"),
	)
}

func vars(config model.PromptConfig) map[string]any {
	return map[string]any{
		"BrandName":     config.BrandName,
		"AssistantName": config.AssistantName,
		"Categories":    config.Categories,
		"SearchTool":    tools.ToolSearchProduct,
		"DetailsTool":   tools.ToolGetProductDetails,
	}
}

// format renders through the Eino prompt component so prompt callbacks fire.
func format(ctx context.Context, name string, v map[string]any, templates ...schema.MessagesTemplate) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(schema.GoTemplate, templates...)
	msgs, err := tpl.Format(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("%s prompt render: %w", name, err)
	}
	if len(msgs) != len(templates) || msgs[0] == nil {
		return nil, fmt.Errorf("%s prompt render: empty result", name)
	}
	return msgs, nil
}
