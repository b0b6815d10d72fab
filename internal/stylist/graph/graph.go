package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/graph/conversations"
	"github.com/vancy-storefront/server/internal/stylist/graph/nodes"
	"github.com/vancy-storefront/server/internal/stylist/graph/observers"
	"github.com/vancy-storefront/server/internal/stylist/graph/tools"
	"github.com/vancy-storefront/server/internal/stylist/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// Runner executes the compiled advice graph.
type Runner interface {
	Invoke(ctx context.Context, in model.AdviceInput) (*schema.Message, error)
}

// GraphConfig holds everything needed to build the advice graph.
type GraphConfig struct {
	ChatModels      *nodes.ChatModels
	MessagesManager *conversations.MessagesManager
	Catalog         tools.Catalog
	Prompt          model.PromptConfig
	ToolMaxCalls    int
}

type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.AdviceInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.AdviceInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.AdviceInput) (*schema.Message, error) {
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

// BuildGraph compiles the advice graph:
// input converter -> advice model -> (tools -> advice model)* -> end.
func BuildGraph(ctx context.Context, config *GraphConfig) (Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Advice == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	b := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.AdviceInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AdviceState {
				return &model.AdviceState{}
			}),
		),
	}

	steps := []func(context.Context) error{
		b.setupTools,
		b.addNodes,
		b.addEdges,
		b.addBranches,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return nil, err
		}
	}

	runnable, err := b.compile(ctx)
	if err != nil {
		return nil, err
	}
	return &graphRunner{runnable: runnable}, nil
}

func (b *GraphBuilder) setupTools(ctx context.Context) error {
	catalogTools := tools.GetQueryTools(b.config.Catalog)
	toolInfos, err := tools.GetToolInfos(ctx, catalogTools)
	if err != nil {
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.config.ChatModels.BindToolsToAdviceModel(toolInfos); err != nil {
		return err
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:                catalogTools,
		ExecuteSequentially:  true,
		UnknownToolsHandler:  tools.UnknownTool,
		ToolArgumentsHandler: tools.SanitizeArguments,
	})
	if err != nil {
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	return b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.ToolMaxCalls)),
	)
}

func (b *GraphBuilder) addNodes(context.Context) error {
	if err := b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(b.config.MessagesManager, b.config.Prompt),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler()),
	); err != nil {
		return fmt.Errorf("add input converter: %w", err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodeAdviceChatModel,
		b.config.ChatModels.Advice,
		compose.WithStatePreHandler(nodes.NewAdviceChatModelPreHandler(b.config.ToolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewAdviceChatModelPostHandler(b.config.MessagesManager, b.config.ChatModels.AdviceModelName)),
	); err != nil {
		return fmt.Errorf("add advice model: %w", err)
	}
	return nil
}

func (b *GraphBuilder) addEdges(context.Context) error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeAdviceChatModel},
		{nodes.NodeToolExecutor, nodes.NodeAdviceChatModel},
	}
	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

func (b *GraphBuilder) addBranches(context.Context) error {
	decision := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeAdviceChatModel, decision); err != nil {
		return fmt.Errorf("error adding tool branch: %w", err)
	}
	return nil
}

func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.AdviceInput, *schema.Message], error) {
	// Bound the loop; each tool round costs two steps.
	maxSteps := 10 + b.config.ToolMaxCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}
	logx.Debug().Int("max_steps", maxSteps).Msg("Advice graph compiled")
	return runnable, nil
}
