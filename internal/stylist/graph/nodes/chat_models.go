package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/vancy-storefront/server/internal/stylist/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

type ChatModelConfig struct {
	APIKey     string
	BaseURL    string
	Advice     *model.AdviceModelConfig
	Structured *model.StructuredModelConfig
}

// ChatModels holds the tool-calling advice model and the plain model used
// for JSON answers (lookbooks, recommendations).
type ChatModels struct {
	Advice              einomodel.ChatModel
	Structured          einomodel.BaseChatModel
	AdviceModelName     string
	StructuredModelName string
}

func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.Advice == nil || config.Structured == nil {
		return nil, fmt.Errorf("chat model config is incomplete")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	advice, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Advice.Model,
		Temperature: &config.Advice.Temperature,
		MaxTokens:   &config.Advice.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(1024)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating advice model")
		return nil, fmt.Errorf("error creating advice model: %w", err)
	}

	structured, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Structured.Model,
		Temperature: &config.Structured.Temperature,
		MaxTokens:   &config.Structured.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating structured model")
		return nil, fmt.Errorf("error creating structured model: %w", err)
	}

	return &ChatModels{
		Advice:              advice,
		Structured:          structured,
		AdviceModelName:     config.Advice.Model,
		StructuredModelName: config.Structured.Model,
	}, nil
}

// BindToolsToAdviceModel binds the catalog tools to the advice model.
func (cm *ChatModels) BindToolsToAdviceModel(tools []*schema.ToolInfo) error {
	if err := cm.Advice.BindTools(tools); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}
	logx.Debug().Int("tools", len(tools)).Msg("Bound tools to advice model")
	return nil
}
