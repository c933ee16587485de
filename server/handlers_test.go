package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/curiousclaude/backend/agent/absence"
	contractx "github.com/curiousclaude/backend/agent/contract"
	"github.com/curiousclaude/backend/agent/tutor"
)

type fakeModel struct {
	content string
	err     error
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

type serverModels struct {
	respond   *fakeModel
	advanced  *fakeModel
	recommend *fakeModel
	company   *fakeModel
	federal   *fakeModel
}

func newTestServer(t *testing.T, m serverModels) *Server {
	t.Helper()

	blank := &fakeModel{content: "{}"}
	pick := func(f *fakeModel) *fakeModel {
		if f == nil {
			return blank
		}
		return f
	}

	tutorSvc, err := tutor.NewWithModels(context.Background(), tutor.Models{
		Respond:  pick(m.respond),
		Converse: blank,
		Split:    blank,
		Goals:    blank,
		Short:    blank,
		Advanced: pick(m.advanced),
	})
	if err != nil {
		t.Fatalf("tutor.NewWithModels() error = %v", err)
	}

	absenceSvc, err := absence.NewWithModels(context.Background(), absence.Models{
		Acknowledge: blank,
		Converse:    blank,
		Company:     pick(m.company),
		Federal:     pick(m.federal),
		Clarify:     blank,
		Recommend:   pick(m.recommend),
		Decision:    blank,
	})
	if err != nil {
		t.Fatalf("absence.NewWithModels() error = %v", err)
	}

	return New(Config{Port: 3001, AllowedOrigins: []string{"http://localhost:5173"}}, tutorSvc, absenceSvc)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{})
	rec := doJSON(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody[healthResponse](t, rec)
	if body.Status != "OK" || body.Timestamp == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestClaudeMissingPrompt(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{})
	rec := doJSON(t, srv, http.MethodPost, "/api/claude", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error != "Prompt is required" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestClaudeSuccess(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{respond: &fakeModel{content: "hello"}})
	rec := doJSON(t, srv, http.MethodPost, "/api/claude", `{"prompt": "hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[contentResponse](t, rec)
	if body.Content != "hello" {
		t.Errorf("content = %q, want %q", body.Content, "hello")
	}
}

func TestClaudeConversationEmptyArray(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{})
	rec := doJSON(t, srv, http.MethodPost, "/api/claude-conversation", `{"conversation": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error != "Conversation array is required" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestAdvancedPromptUnparsableModelOutput(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{advanced: &fakeModel{content: "sorry, no json here"}})
	rec := doJSON(t, srv, http.MethodPost, "/api/get-advanced-prompt",
		`{"prompt": "help me write", "goal": "Learn how to outline"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error == "" {
		t.Error("expected error body")
	}
}

func TestPolicyRecommendationFallsBackOnProviderError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{recommend: &fakeModel{err: errors.New("connection reset")}})
	rec := doJSON(t, srv, http.MethodPost, "/api/absence-policy-recommendation",
		`{"policies": [{"title": "FMLA", "actionType": "form", "jurisdiction": "federal", "confidence": "high"}], "answers": {"q1": "yes"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with fallback body", rec.Code)
	}
	envelope := decodeBody[contentResponse](t, rec)

	var payload contractx.RecommendationPayload
	if err := json.Unmarshal([]byte(envelope.Content), &payload); err != nil {
		t.Fatalf("decode content %q: %v", envelope.Content, err)
	}
	if payload.Recommendation.Title != "FMLA Medical Leave" {
		t.Errorf("title = %q, want canned fallback", payload.Recommendation.Title)
	}
	if payload.Recommendation.Confidence != "medium" {
		t.Errorf("confidence = %q, want medium", payload.Recommendation.Confidence)
	}
}

func TestPolicyRecommendationMissingAnswers(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{})
	rec := doJSON(t, srv, http.MethodPost, "/api/absence-policy-recommendation",
		`{"policies": [{"title": "FMLA"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error != "Policies and answers are required" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestAllPolicyOptionsMerge(t *testing.T) {
	t.Parallel()

	company := `{"title": "Google Parental Leave Policy", "actionType": "form", "jurisdiction": "company", "confidence": "high"}`
	federal := `{"policyOptions": [{"title": "FMLA", "actionType": "form", "jurisdiction": "federal", "confidence": "high"}]}`
	srv := newTestServer(t, serverModels{
		company: &fakeModel{content: company},
		federal: &fakeModel{content: federal},
	})

	rec := doJSON(t, srv, http.MethodPost, "/api/get-all-policy-options", `{"request": "parental leave"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	envelope := decodeBody[contentResponse](t, rec)

	var list contractx.PolicyList
	if err := json.Unmarshal([]byte(envelope.Content), &list); err != nil {
		t.Fatalf("decode content %q: %v", envelope.Content, err)
	}
	if len(list.PolicyOptions) != 2 {
		t.Fatalf("got %d options, want 2", len(list.PolicyOptions))
	}
	if list.PolicyOptions[0].Jurisdiction != "company" {
		t.Errorf("first option jurisdiction = %q, want company first", list.PolicyOptions[0].Jurisdiction)
	}
}

func TestAbsenceMissingRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{})
	rec := doJSON(t, srv, http.MethodPost, "/api/absence", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error != "Request is required" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestDecisionHelpMissingQuestion(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverModels{})
	rec := doJSON(t, srv, http.MethodPost, "/api/absence-decision-help", `{"policies": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error != "Question is required" {
		t.Errorf("error = %q", body.Error)
	}
}
