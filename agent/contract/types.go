package contract

// ChatMessage is one turn of a UI conversation as the frontend posts it.
// Thinking placeholders and errored turns are filtered out before dispatch.
type ChatMessage struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // "user" or "claude"
	Content  string `json:"content"`
	Thinking bool   `json:"isThinking,omitempty"`
	Error    string `json:"error,omitempty"`
}

const (
	MessageTypeUser   = "user"
	MessageTypeClaude = "claude"
)

// PolicyOption is one leave-policy candidate shown to the user.
type PolicyOption struct {
	Title                   string    `json:"title"`
	ActionType              string    `json:"actionType"` // "form" or "request"
	Description             string    `json:"description"`
	KeyBenefits             []string  `json:"keyBenefits,omitempty"`
	EligibilityRequirements []string  `json:"eligibilityRequirements,omitempty"`
	Forms                   []FormRef `json:"forms,omitempty"`
	RequestEndpoint         string    `json:"requestEndpoint,omitempty"`
	Jurisdiction            string    `json:"jurisdiction"` // "federal", "state" or "company"
	Confidence              string    `json:"confidence"`   // "high", "medium" or "low"
	Citations               []string  `json:"citations,omitempty"`
	Rationale               string    `json:"rationale,omitempty"`
}

type FormRef struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	URL  string `json:"url,omitempty"`
}

// PolicyList is the wire wrapper the model is asked to produce for
// multi-option lookups.
type PolicyList struct {
	PolicyOptions []PolicyOption `json:"policyOptions"`
}

// Question is one clarifying question narrowing down policy options.
type Question struct {
	Text    string   `json:"text"`
	Type    string   `json:"type"` // "yes_no" or "multiple_choice"
	Options []string `json:"options,omitempty"`
	Note    string   `json:"note,omitempty"`
}

type QuestionList struct {
	Questions []Question `json:"questions"`
}

// Recommendation is the synthesized best-fit policy for the user's answers.
type Recommendation struct {
	Title           string           `json:"title"`
	Confidence      string           `json:"confidence"`
	KeyBenefits     []string         `json:"keyBenefits,omitempty"`
	Why             []string         `json:"why,omitempty"`
	RequiredActions []RequiredAction `json:"required_actions,omitempty"`
	SequenceNotes   string           `json:"sequence_notes,omitempty"`
	Citations       []string         `json:"citations,omitempty"`
}

type RequiredAction struct {
	Type string `json:"type"` // "form" or "request"
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	URL  string `json:"url,omitempty"`
}

type RecommendationPayload struct {
	Recommendation Recommendation `json:"recommendation"`
}

// Origin tags how a workflow result was produced, so canned fallbacks can be
// told apart from real model output in logs even though the wire contract
// returns both as 200.
type Origin string

const (
	OriginModel    Origin = "model"
	OriginFallback Origin = "fallback"
	// OriginMixed marks aggregate results where only one branch succeeded.
	OriginMixed Origin = "mixed"
)

// Outcome pairs a workflow result with its origin.
type Outcome[T any] struct {
	Value  T
	Origin Origin
}

func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Origin: OriginModel}
}

func Fallback[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Origin: OriginFallback}
}
