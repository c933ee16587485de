// Package tutor implements the Curious Claude orchestrations: single-turn
// completion, multi-turn conversation, prompt analysis into learning goals,
// short goal labels and advanced prompt generation.
package tutor

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/curiousclaude/backend/agent/contract"
	llmx "github.com/curiousclaude/backend/agent/llm"
)

// ConverseFallback is returned to the chat UI whenever the provider fails or
// replies blank. Conversational surfaces never show a raw error.
const ConverseFallback = "I apologize, but I encountered an error while processing your request. Please try again or rephrase your question."

// Output budgets per workflow.
const (
	respondMaxTokens  = 1024
	converseMaxTokens = 1024
	splitMaxTokens    = 1024
	goalsMaxTokens    = 512
	shortMaxTokens    = 256
	advancedMaxTokens = 8024
)

type splitOutput struct {
	Instructions string `json:"instructions"`
	External     string `json:"external"`
}

type goalItem struct {
	Goal string `json:"goal"`
}

type goalsOutput struct {
	Goals []goalItem `json:"goals"`
}

type shortGoalOutput struct {
	ShortDescription string `json:"shortDescription"`
}

type advancedOutput struct {
	Prompt string `json:"prompt"`
}

// Analysis is the result of AnalyzePrompt: the split of the student prompt
// plus exactly three learning goals.
type Analysis struct {
	Instructions string
	External     string
	Goals        []string
}

// Models holds the chat models backing each workflow, one per output budget.
type Models struct {
	Respond  einomodel.BaseChatModel
	Converse einomodel.BaseChatModel
	Split    einomodel.BaseChatModel
	Goals    einomodel.BaseChatModel
	Short    einomodel.BaseChatModel
	Advanced einomodel.BaseChatModel
}

type Service struct {
	respond  compose.Runnable[[]*schema.Message, *schema.Message]
	converse compose.Runnable[[]*schema.Message, *schema.Message]
	split    compose.Runnable[[]*schema.Message, splitOutput]
	goals    compose.Runnable[[]*schema.Message, goalsOutput]
	short    compose.Runnable[[]*schema.Message, shortGoalOutput]
	advanced compose.Runnable[[]*schema.Message, advancedOutput]
}

// New builds the service from config, compiling one model per workflow.
func New(ctx context.Context, cfg llmx.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	respondCfg := cfg.DefaultFor(respondMaxTokens)
	respondModel, err := respondCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create respond model: %v", contractx.ErrModelInvoke, err)
	}
	converseCfg := cfg.AdvancedFor(converseMaxTokens)
	converseModel, err := converseCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create converse model: %v", contractx.ErrModelInvoke, err)
	}
	splitCfg := cfg.DefaultFor(splitMaxTokens)
	splitModel, err := splitCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create split model: %v", contractx.ErrModelInvoke, err)
	}
	goalsCfg := cfg.DefaultFor(goalsMaxTokens)
	goalsModel, err := goalsCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create goals model: %v", contractx.ErrModelInvoke, err)
	}
	shortCfg := cfg.DefaultFor(shortMaxTokens)
	shortModel, err := shortCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create short-goal model: %v", contractx.ErrModelInvoke, err)
	}
	advancedCfg := cfg.AdvancedFor(advancedMaxTokens)
	advancedModel, err := advancedCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create advanced model: %v", contractx.ErrModelInvoke, err)
	}

	return NewWithModels(ctx, Models{
		Respond:  respondModel,
		Converse: converseModel,
		Split:    splitModel,
		Goals:    goalsModel,
		Short:    shortModel,
		Advanced: advancedModel,
	})
}

// NewWithModels compiles the workflow graphs around the given chat models.
func NewWithModels(ctx context.Context, m Models) (*Service, error) {
	respond, err := llmx.NewTextRunner(ctx, m.Respond, "tutor.respond")
	if err != nil {
		return nil, err
	}
	converse, err := llmx.NewTextRunner(ctx, m.Converse, "tutor.converse")
	if err != nil {
		return nil, err
	}
	split, err := llmx.NewStructuredRunner[splitOutput](ctx, m.Split, "tutor.split")
	if err != nil {
		return nil, err
	}
	goals, err := llmx.NewStructuredRunner[goalsOutput](ctx, m.Goals, "tutor.goals")
	if err != nil {
		return nil, err
	}
	short, err := llmx.NewStructuredRunner[shortGoalOutput](ctx, m.Short, "tutor.short_goal")
	if err != nil {
		return nil, err
	}
	advanced, err := llmx.NewStructuredRunner[advancedOutput](ctx, m.Advanced, "tutor.advanced_prompt")
	if err != nil {
		return nil, err
	}

	return &Service{
		respond:  respond,
		converse: converse,
		split:    split,
		goals:    goals,
		short:    short,
		advanced: advanced,
	}, nil
}

// Respond answers a single prompt with free text. Provider errors propagate.
func (s *Service) Respond(ctx context.Context, prompt string) (string, error) {
	out, err := s.respond.Invoke(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: respond invoke: %v", contractx.ErrModelInvoke, err)
	}
	if out == nil {
		return "", fmt.Errorf("%w: nil respond output", contractx.ErrModelInvoke)
	}
	return out.Content, nil
}

// Converse answers a multi-turn conversation. Thinking, errored and blank
// turns are dropped; an empty filtered sequence fails closed without a
// provider call. Provider failures and blank replies fall back to a fixed
// apologetic message so the chat UI never sees a raw error.
func (s *Service) Converse(ctx context.Context, conversation []contractx.ChatMessage) (contractx.Outcome[string], error) {
	history := chatHistory(conversation)
	if len(history) == 0 {
		return contractx.Outcome[string]{}, fmt.Errorf("%w: no valid messages in conversation", contractx.ErrValidation)
	}

	out, err := s.converse.Invoke(ctx, history)
	if err != nil {
		log.Warn().Err(err).Str("workflow", "tutor.converse").Msg("falling back to canned chat reply")
		return contractx.Fallback(ConverseFallback), nil
	}
	text := ""
	if out != nil {
		text = strings.TrimSpace(out.Content)
	}
	if text == "" {
		log.Warn().Str("workflow", "tutor.converse").Msg("empty model reply, falling back to canned chat reply")
		return contractx.Fallback(ConverseFallback), nil
	}
	return contractx.Ok(text), nil
}

// AnalyzePrompt splits the student prompt into instructions/external content,
// then derives exactly three learning goals from the instructions. A goal
// count other than three is a contract violation, never padded or truncated.
func (s *Service) AnalyzePrompt(ctx context.Context, prompt string) (Analysis, error) {
	split, err := s.split.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(splitSystemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: split instructions invoke: %v", contractx.ErrModelInvoke, err)
	}

	instructions := strings.TrimSpace(split.Instructions)
	external := strings.TrimSpace(split.External)

	goalsOut, err := s.goals.Invoke(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(goalsPrompt, instructions)),
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: goals invoke: %v", contractx.ErrModelInvoke, err)
	}
	if len(goalsOut.Goals) != 3 {
		return Analysis{}, fmt.Errorf("%w: expected exactly 3 goals, got %d", contractx.ErrSchemaViolation, len(goalsOut.Goals))
	}

	goals := make([]string, 0, len(goalsOut.Goals))
	for _, g := range goalsOut.Goals {
		goals = append(goals, g.Goal)
	}

	return Analysis{
		Instructions: instructions,
		External:     external,
		Goals:        goals,
	}, nil
}

// ShortGoal produces a 2-5 word label for a goal. The transport layer treats
// an empty label as a failure; this workflow itself has no fallback.
func (s *Service) ShortGoal(ctx context.Context, goal string) (string, error) {
	out, err := s.short.Invoke(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(shortGoalPrompt, goal)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: short goal invoke: %v", contractx.ErrModelInvoke, err)
	}
	return strings.TrimSpace(out.ShortDescription), nil
}

// AdvancedPrompt generates a professional learning prompt from the original
// prompt and the chosen goal. There is no safe default content, so parse
// failures and empty results propagate.
func (s *Service) AdvancedPrompt(ctx context.Context, goal, prompt string) (string, error) {
	out, err := s.advanced.Invoke(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(advancedPrompt, goal, prompt)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: advanced prompt invoke: %v", contractx.ErrModelInvoke, err)
	}
	text := strings.TrimSpace(out.Prompt)
	if text == "" {
		return "", fmt.Errorf("%w: advanced prompt is empty", contractx.ErrSchemaViolation)
	}
	return text, nil
}

// chatHistory converts UI messages to model messages, dropping thinking
// placeholders, errored turns and blank content.
func chatHistory(conversation []contractx.ChatMessage) []*schema.Message {
	history := make([]*schema.Message, 0, len(conversation))
	for _, msg := range conversation {
		if msg.Thinking || msg.Error != "" || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		if msg.Type == contractx.MessageTypeUser {
			history = append(history, schema.UserMessage(msg.Content))
		} else {
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
