// Package stylist is the AI fashion assistant of the storefront. Every
// operation degrades to a fixed fallback instead of returning an error, so
// callers can render its answers unconditionally.
package stylist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/graph"
	"github.com/vancy-storefront/server/internal/stylist/graph/conversations"
	"github.com/vancy-storefront/server/internal/stylist/graph/nodes"
	"github.com/vancy-storefront/server/internal/stylist/graph/observers"
	"github.com/vancy-storefront/server/internal/stylist/graph/parsers"
	"github.com/vancy-storefront/server/internal/stylist/graph/prompts"
	"github.com/vancy-storefront/server/internal/stylist/graph/tools"
	"github.com/vancy-storefront/server/internal/stylist/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

const defaultSessionID = "default"

type Options struct {
	Config  model.Config
	Catalog tools.Catalog
	History model.ConversationRepository
}

type Service struct {
	runner         graph.Runner
	structured     compose.Runnable[[]*schema.Message, *schema.Message]
	structuredName string
	messages       *conversations.MessagesManager
	prompt         model.PromptConfig
	timeout        time.Duration
}

// New connects to Gemini and builds the advice graph. Without an API key
// it returns an offline service that always answers with fallbacks.
func New(ctx context.Context, opts Options) (*Service, error) {
	if !opts.Config.Enabled() {
		logx.Warn().Msg("GEMINI_API_KEY not set; stylist runs in fallback mode")
		return Offline(), nil
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:     opts.Config.APIKey,
		BaseURL:    opts.Config.BaseURL,
		Advice:     &opts.Config.Advice,
		Structured: &opts.Config.Structured,
	})
	if err != nil {
		return nil, err
	}
	return NewWithModels(ctx, cms, opts)
}

// NewWithModels builds the service on already constructed chat models.
func NewWithModels(ctx context.Context, cms *nodes.ChatModels, opts Options) (*Service, error) {
	if cms == nil || cms.Structured == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if opts.History == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}

	mm := conversations.NewMessagesManager(opts.History, opts.Config.Conversation)
	runner, err := graph.BuildGraph(ctx, &graph.GraphConfig{
		ChatModels:      cms,
		MessagesManager: mm,
		Catalog:         opts.Catalog,
		Prompt:          opts.Config.Prompt,
		ToolMaxCalls:    opts.Config.Conversation.Tools.MaxCalls,
	})
	if err != nil {
		return nil, err
	}

	structured, err := compose.NewChain[[]*schema.Message, *schema.Message]().
		AppendChatModel(cms.Structured).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error compiling structured chain: %w", err)
	}

	logx.Debug().Str("advice_model", cms.AdviceModelName).Str("structured_model", cms.StructuredModelName).Msg("stylist ready")
	return &Service{
		runner:         runner,
		structured:     structured,
		structuredName: cms.StructuredModelName,
		messages:       mm,
		prompt:         opts.Config.Prompt,
		timeout:        opts.Config.CallTimeout(),
	}, nil
}

// Offline returns a service that answers every call with its fallback.
func Offline() *Service {
	return &Service{}
}

func (s *Service) Online() bool {
	return s.runner != nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Advise answers a free-form styling question within a shopping session,
// using the catalog tools and the session's history.
func (s *Service) Advise(ctx context.Context, sessionID, prompt string) string {
	if !s.Online() || strings.TrimSpace(prompt) == "" {
		return model.AdviceFallback
	}
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.runner.Invoke(ctx, model.AdviceInput{SessionID: sessionID, Prompt: prompt})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("stylist advice failed")
		return model.AdviceFallback
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		logx.Warn().Str("session_id", sessionID).Msg("stylist returned no advice")
		return model.AdviceFallback
	}
	return out.Content
}

// ClearSession forgets a session's stylist history.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	if s.messages == nil {
		return nil
	}
	return s.messages.Clear(ctx, sessionID)
}

// Lookbook suggests a two-item outfit for an occasion.
func (s *Service) Lookbook(ctx context.Context, occasion string) model.Lookbook {
	if !s.Online() {
		return model.FallbackLookbook()
	}
	content, err := s.generate(ctx, "lookbook", func(ctx context.Context) ([]*schema.Message, error) {
		return prompts.LookbookMessages(ctx, s.prompt, occasion)
	})
	if err != nil {
		return model.FallbackLookbook()
	}
	lb, err := parsers.ParseLookbook(content)
	if err != nil {
		logx.Warn().Err(err).Str("occasion", occasion).Msg("unusable lookbook from model")
		return model.FallbackLookbook()
	}
	return lb
}

// Recommend suggests catalog categories for the buyer's interests. It
// returns an empty list when the model cannot help.
func (s *Service) Recommend(ctx context.Context, interests string) []model.Recommendation {
	if !s.Online() {
		return []model.Recommendation{}
	}
	content, err := s.generate(ctx, "recommend", func(ctx context.Context) ([]*schema.Message, error) {
		return prompts.RecommendMessages(ctx, s.prompt, interests)
	})
	if err != nil {
		return []model.Recommendation{}
	}
	recs, err := parsers.ParseRecommendations(content)
	if err != nil {
		logx.Warn().Err(err).Msg("unusable recommendations from model")
		return []model.Recommendation{}
	}
	return recs
}

// generate renders the messages and runs them through the structured model
// with the stylist observers attached.
func (s *Service) generate(ctx context.Context, name string, build func(context.Context) ([]*schema.Message, error)) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	msgs, err := build(ctx)
	if err != nil {
		logx.Error().Err(err).Str("call", name).Msg("stylist prompt failed")
		return "", err
	}
	out, err := s.structured.Invoke(ctx, msgs, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Error().Err(err).Str("call", name).Msg("stylist call failed")
		return "", err
	}
	nodes.RecordUsage(out, s.structuredName, "", name)
	return out.Content, nil
}
