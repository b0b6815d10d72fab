package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
	"github.com/rs/zerolog"

	logx "github.com/vancy-storefront/server/pkg/logger"
)

func logger() zerolog.Logger {
	return logx.With("stylist")
}

// NewAllCallbacks aggregates the tool, chat model and prompt observers into
// one handler for compose.WithCallbacks.
func NewAllCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolHandler()).
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()
}
