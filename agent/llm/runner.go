package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/curiousclaude/backend/agent/contract"
	normalizex "github.com/curiousclaude/backend/agent/normalize"
)

// Runners are compiled eino graphs over pre-built message slices. Messages
// are assembled by the callers rather than by a chat-template node: the
// system prompts here contain literal JSON braces, which the template
// formatter would treat as placeholders.

// NewTextRunner compiles a graph producing the model's raw reply message.
func NewTextRunner(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	graphName string,
) (compose.Runnable[[]*schema.Message, *schema.Message], error) {
	graph := compose.NewGraph[[]*schema.Message, *schema.Message]()
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "model"); err != nil {
		return nil, fmt.Errorf("add edge start->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile text graph %s: %w", graphName, err)
	}
	return runner, nil
}

// NewStructuredRunner compiles a graph that routes the model's reply through
// the response normalizer and decodes the recovered object into T.
func NewStructuredRunner[T any](
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	graphName string,
) (compose.Runnable[[]*schema.Message, T], error) {
	graph := compose.NewGraph[[]*schema.Message, T]()
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddLambdaNode("extract",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (T, error) {
			var zero T
			if msg == nil {
				return zero, fmt.Errorf("%w: nil model response", contractx.ErrSchemaViolation)
			}
			return normalizex.Extract[T](msg.Content)
		}),
	); err != nil {
		return nil, fmt.Errorf("add extract node: %w", err)
	}

	if err := graph.AddEdge(compose.START, "model"); err != nil {
		return nil, fmt.Errorf("add edge start->model: %w", err)
	}
	if err := graph.AddEdge("model", "extract"); err != nil {
		return nil, fmt.Errorf("add edge model->extract: %w", err)
	}
	if err := graph.AddEdge("extract", compose.END); err != nil {
		return nil, fmt.Errorf("add edge extract->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile structured graph %s: %w", graphName, err)
	}
	return runner, nil
}
