package normalize

import (
	"errors"
	"testing"

	contractx "github.com/curiousclaude/backend/agent/contract"
)

type goalPayload struct {
	Goal string `json:"goal"`
}

type nestedPayload struct {
	Instructions string `json:"instructions"`
	External     string `json:"external"`
}

func TestExtractPlainObject(t *testing.T) {
	t.Parallel()

	out, err := Extract[goalPayload](`{"goal": "Learn how to ask questions"}`)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Goal != "Learn how to ask questions" {
		t.Errorf("Goal = %q", out.Goal)
	}
}

func TestExtractFencedObject(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"goal\": \"Learn how to revise\"}\n```"
	out, err := Extract[goalPayload](raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Goal != "Learn how to revise" {
		t.Errorf("Goal = %q", out.Goal)
	}
}

func TestExtractObjectWrappedInProse(t *testing.T) {
	t.Parallel()

	raw := `Here is the result you asked for: {"instructions": "summarize", "external": "the article text"} hope that helps!`
	out, err := Extract[nestedPayload](raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Instructions != "summarize" || out.External != "the article text" {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestExtractIgnoresBracesInsideStrings(t *testing.T) {
	t.Parallel()

	raw := `{"instructions": "use {curly} notation", "external": "a } stray brace"} trailing {junk}`
	out, err := Extract[nestedPayload](raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Instructions != "use {curly} notation" {
		t.Errorf("Instructions = %q", out.Instructions)
	}
}

func TestExtractRepairsQuoteGap(t *testing.T) {
	t.Parallel()

	raw := `{"goal"  :  "Learn how to outline"}`
	out, err := Extract[goalPayload](raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Goal != "Learn how to outline" {
		t.Errorf("Goal = %q", out.Goal)
	}
}

func TestExtractNoObject(t *testing.T) {
	t.Parallel()

	_, err := Extract[goalPayload]("sorry, I cannot answer that")
	if !errors.Is(err, contractx.ErrParse) {
		t.Fatalf("Extract() error = %v, want ErrParse", err)
	}
}

func TestExtractUnbalancedObject(t *testing.T) {
	t.Parallel()

	_, err := Extract[goalPayload](`{"goal": "never closes"`)
	if !errors.Is(err, contractx.ErrParse) {
		t.Fatalf("Extract() error = %v, want ErrParse", err)
	}
}

func TestExtractInvalidJSONInSpan(t *testing.T) {
	t.Parallel()

	_, err := Extract[goalPayload](`{goal: unquoted}`)
	if !errors.Is(err, contractx.ErrParse) {
		t.Fatalf("Extract() error = %v, want ErrParse", err)
	}
}
