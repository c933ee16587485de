package tutor

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/curiousclaude/backend/agent/contract"
)

type fakeChatModel struct {
	responses []*schema.Message
	err       error
	idx       int
	calls     int
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func newTestService(t *testing.T, m Models) *Service {
	t.Helper()
	if m.Respond == nil {
		m.Respond = &fakeChatModel{}
	}
	if m.Converse == nil {
		m.Converse = &fakeChatModel{}
	}
	if m.Split == nil {
		m.Split = &fakeChatModel{}
	}
	if m.Goals == nil {
		m.Goals = &fakeChatModel{}
	}
	if m.Short == nil {
		m.Short = &fakeChatModel{}
	}
	if m.Advanced == nil {
		m.Advanced = &fakeChatModel{}
	}
	svc, err := NewWithModels(context.Background(), m)
	if err != nil {
		t.Fatalf("NewWithModels() error = %v", err)
	}
	return svc
}

func TestRespond(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Respond: &fakeChatModel{responses: []*schema.Message{schema.AssistantMessage("hello", nil)}},
	})

	out, err := svc.Respond(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Respond() = %q, want %q", out, "hello")
	}
}

func TestConverseSuccess(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Converse: &fakeChatModel{responses: []*schema.Message{schema.AssistantMessage("  of course  ", nil)}},
	})

	out, err := svc.Converse(context.Background(), []contractx.ChatMessage{
		{ID: "1", Type: contractx.MessageTypeUser, Content: "help me study"},
		{ID: "2", Type: contractx.MessageTypeClaude, Content: "what subject?"},
		{ID: "3", Type: contractx.MessageTypeUser, Content: "biology"},
	})
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if out.Origin != contractx.OriginModel {
		t.Errorf("Origin = %q, want %q", out.Origin, contractx.OriginModel)
	}
	if out.Value != "of course" {
		t.Errorf("Value = %q, want trimmed reply", out.Value)
	}
}

func TestConverseEmptyAfterFilteringFailsClosed(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{responses: []*schema.Message{schema.AssistantMessage("should never be used", nil)}}
	svc := newTestService(t, Models{Converse: fake})

	_, err := svc.Converse(context.Background(), []contractx.ChatMessage{
		{ID: "1", Type: contractx.MessageTypeClaude, Content: "", Thinking: true},
		{ID: "2", Type: contractx.MessageTypeClaude, Content: "oops", Error: "boom"},
		{ID: "3", Type: contractx.MessageTypeUser, Content: "   "},
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Converse() error = %v, want ErrValidation", err)
	}
	if fake.calls != 0 {
		t.Errorf("provider called %d times, want 0", fake.calls)
	}
}

func TestConverseFallsBackOnProviderError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Converse: &fakeChatModel{err: errors.New("connection reset")},
	})

	out, err := svc.Converse(context.Background(), []contractx.ChatMessage{
		{ID: "1", Type: contractx.MessageTypeUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if out.Origin != contractx.OriginFallback {
		t.Errorf("Origin = %q, want %q", out.Origin, contractx.OriginFallback)
	}
	if out.Value != ConverseFallback {
		t.Errorf("Value = %q, want canned fallback", out.Value)
	}
}

func TestAnalyzePrompt(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Split: &fakeChatModel{responses: []*schema.Message{
			schema.AssistantMessage(`{"instructions": "summarize the article", "external": "the article text"}`, nil),
		}},
		Goals: &fakeChatModel{responses: []*schema.Message{
			schema.AssistantMessage(`{"goals": [{"goal": "Learn how to summarize"}, {"goal": "Learn how to find key ideas"}, {"goal": "Learn how to condense text"}]}`, nil),
		}},
	})

	analysis, err := svc.AnalyzePrompt(context.Background(), "summarize this: the article text")
	if err != nil {
		t.Fatalf("AnalyzePrompt() error = %v", err)
	}
	if analysis.Instructions != "summarize the article" {
		t.Errorf("Instructions = %q", analysis.Instructions)
	}
	if analysis.External != "the article text" {
		t.Errorf("External = %q", analysis.External)
	}
	if len(analysis.Goals) != 3 {
		t.Fatalf("got %d goals, want 3", len(analysis.Goals))
	}
	if analysis.Goals[0] != "Learn how to summarize" {
		t.Errorf("Goals[0] = %q", analysis.Goals[0])
	}
}

func TestAnalyzePromptRejectsWrongGoalCount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Split: &fakeChatModel{responses: []*schema.Message{
			schema.AssistantMessage(`{"instructions": "summarize", "external": ""}`, nil),
		}},
		Goals: &fakeChatModel{responses: []*schema.Message{
			schema.AssistantMessage(`{"goals": [{"goal": "Learn how to summarize"}, {"goal": "Learn how to outline"}]}`, nil),
		}},
	})

	_, err := svc.AnalyzePrompt(context.Background(), "summarize this")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("AnalyzePrompt() error = %v, want ErrSchemaViolation", err)
	}
}

func TestShortGoal(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Short: &fakeChatModel{responses: []*schema.Message{
			schema.AssistantMessage("```json\n{\"shortDescription\": \"Summarizing key ideas\"}\n```", nil),
		}},
	})

	short, err := svc.ShortGoal(context.Background(), "Learn how to summarize")
	if err != nil {
		t.Fatalf("ShortGoal() error = %v", err)
	}
	if short != "Summarizing key ideas" {
		t.Errorf("ShortGoal() = %q", short)
	}
}

func TestAdvancedPromptRejectsEmptyResult(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, Models{
		Advanced: &fakeChatModel{responses: []*schema.Message{
			schema.AssistantMessage(`{"prompt": "   "}`, nil),
		}},
	})

	_, err := svc.AdvancedPrompt(context.Background(), "Learn how to outline", "help me write")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("AdvancedPrompt() error = %v, want ErrSchemaViolation", err)
	}
}
