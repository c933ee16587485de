// Package absence implements the Absence Navigator orchestrations: the
// tool-assisted acknowledgment, the confirmation conversation, the policy
// lookups, clarifying questions, the final recommendation and decision help.
package absence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contractx "github.com/curiousclaude/backend/agent/contract"
	llmx "github.com/curiousclaude/backend/agent/llm"
)

// Output budgets per workflow.
const (
	ackMaxTokens       = 512
	converseMaxTokens  = 2048
	companyMaxTokens   = 1024
	federalMaxTokens   = 2048
	clarifyMaxTokens   = 1024
	recommendMaxTokens = 1024
	decisionMaxTokens  = 1024
)

// The company lookup retries on provider overload: one initial attempt plus
// two retries, waiting attempt*retryBaseDelay before each retry.
const companyPolicyAttempts = 3

const companyPolicyToolName = "GetCompanyPolicy"

// The clarifying-questions prompt caps the list at five.
const maxClarifyingQuestions = 5

// Models holds the chat models backing each workflow. Acknowledge needs tool
// binding; the rest only generate.
type Models struct {
	Acknowledge einomodel.ToolCallingChatModel
	Converse    einomodel.BaseChatModel
	Company     einomodel.BaseChatModel
	Federal     einomodel.BaseChatModel
	Clarify     einomodel.BaseChatModel
	Recommend   einomodel.BaseChatModel
	Decision    einomodel.BaseChatModel
}

type Service struct {
	ack       compose.Runnable[[]*schema.Message, *schema.Message]
	converse  compose.Runnable[[]*schema.Message, *schema.Message]
	company   compose.Runnable[[]*schema.Message, contractx.PolicyOption]
	federal   compose.Runnable[[]*schema.Message, contractx.PolicyList]
	clarify   compose.Runnable[[]*schema.Message, contractx.QuestionList]
	recommend compose.Runnable[[]*schema.Message, contractx.RecommendationPayload]
	decision  compose.Runnable[[]*schema.Message, *schema.Message]

	retryBaseDelay time.Duration
	sleep          func(context.Context, time.Duration) error
}

type Option func(*Service)

// WithRetryBaseDelay overrides the base delay of the company-lookup retry
// loop. Tests shrink it so retries run in microseconds.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(s *Service) { s.retryBaseDelay = d }
}

// WithSleep overrides the retry sleep. Tests record the delays instead of
// waiting them out.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(s *Service) { s.sleep = fn }
}

// New builds the service from config, compiling one model per workflow.
func New(ctx context.Context, cfg llmx.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ackCfg := cfg.AdvancedFor(ackMaxTokens)
	ackModel, err := ackCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create acknowledge model: %v", contractx.ErrModelInvoke, err)
	}
	converseCfg := cfg.AdvancedFor(converseMaxTokens)
	converseModel, err := converseCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create converse model: %v", contractx.ErrModelInvoke, err)
	}
	companyCfg := cfg.AdvancedFor(companyMaxTokens)
	companyModel, err := companyCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create company model: %v", contractx.ErrModelInvoke, err)
	}
	federalCfg := cfg.DefaultFor(federalMaxTokens)
	federalModel, err := federalCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create federal model: %v", contractx.ErrModelInvoke, err)
	}
	clarifyCfg := cfg.AdvancedFor(clarifyMaxTokens)
	clarifyModel, err := clarifyCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create clarify model: %v", contractx.ErrModelInvoke, err)
	}
	recommendCfg := cfg.AdvancedFor(recommendMaxTokens)
	recommendModel, err := recommendCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create recommend model: %v", contractx.ErrModelInvoke, err)
	}
	decisionCfg := cfg.AdvancedFor(decisionMaxTokens)
	decisionModel, err := decisionCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create decision model: %v", contractx.ErrModelInvoke, err)
	}

	return NewWithModels(ctx, Models{
		Acknowledge: ackModel,
		Converse:    converseModel,
		Company:     companyModel,
		Federal:     federalModel,
		Clarify:     clarifyModel,
		Recommend:   recommendModel,
		Decision:    decisionModel,
	}, opts...)
}

// NewWithModels compiles the workflow graphs around the given chat models.
func NewWithModels(ctx context.Context, m Models, opts ...Option) (*Service, error) {
	toolModel, err := m.Acknowledge.WithTools([]*schema.ToolInfo{companyPolicyTool()})
	if err != nil {
		return nil, fmt.Errorf("%w: bind company policy tool: %v", contractx.ErrModelInvoke, err)
	}

	ack, err := llmx.NewTextRunner(ctx, toolModel, "absence.acknowledge")
	if err != nil {
		return nil, err
	}
	converse, err := llmx.NewTextRunner(ctx, m.Converse, "absence.converse")
	if err != nil {
		return nil, err
	}
	company, err := llmx.NewStructuredRunner[contractx.PolicyOption](ctx, m.Company, "absence.company_policy")
	if err != nil {
		return nil, err
	}
	federal, err := llmx.NewStructuredRunner[contractx.PolicyList](ctx, m.Federal, "absence.federal_state")
	if err != nil {
		return nil, err
	}
	clarify, err := llmx.NewStructuredRunner[contractx.QuestionList](ctx, m.Clarify, "absence.clarify")
	if err != nil {
		return nil, err
	}
	recommend, err := llmx.NewStructuredRunner[contractx.RecommendationPayload](ctx, m.Recommend, "absence.recommend")
	if err != nil {
		return nil, err
	}
	decision, err := llmx.NewTextRunner(ctx, m.Decision, "absence.decision_help")
	if err != nil {
		return nil, err
	}

	s := &Service{
		ack:            ack,
		converse:       converse,
		company:        company,
		federal:        federal,
		clarify:        clarify,
		recommend:      recommend,
		decision:       decision,
		retryBaseDelay: 2 * time.Second,
		sleep:          sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func companyPolicyTool() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: companyPolicyToolName,
		Desc: "Retrieves Google's internal policies for specific HR topics or employee requests",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"request": {
				Type:     schema.String,
				Desc:     "The policy topic or employee request to look up (e.g., 'parental leave', 'remote work accommodation', 'medical leave')",
				Required: true,
			},
		}),
	}
}

// Acknowledge produces the empathetic restatement of the user's request. When
// the model calls GetCompanyPolicy, the lookup runs and a second call folds
// the result back in. Any failure falls back to the canned apology.
func (s *Service) Acknowledge(ctx context.Context, request string) contractx.Outcome[string] {
	first, err := s.ack.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(ackSystemPrompt),
		schema.UserMessage(request),
	})
	if err != nil || first == nil {
		log.Warn().Err(err).Str("workflow", "absence.acknowledge").Msg("falling back to canned acknowledgment")
		return contractx.Fallback(AckFallback)
	}

	if call, ok := findToolCall(first, companyPolicyToolName); ok {
		return s.acknowledgeWithPolicy(ctx, request, first, call)
	}

	text := strings.TrimSpace(first.Content)
	if text == "" {
		log.Warn().Str("workflow", "absence.acknowledge").Msg("empty model reply, falling back to canned acknowledgment")
		return contractx.Fallback(AckFallback)
	}
	return contractx.Ok(text)
}

func (s *Service) acknowledgeWithPolicy(ctx context.Context, request string, first *schema.Message, call schema.ToolCall) contractx.Outcome[string] {
	var args struct {
		Request string `json:"request"`
	}
	topic := request
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err == nil && strings.TrimSpace(args.Request) != "" {
		topic = args.Request
	}
	log.Info().Str("workflow", "absence.acknowledge").Str("topic", topic).Msg("model requested company policy lookup")

	policy, err := s.CompanyPolicy(ctx, topic)
	if err != nil {
		log.Warn().Err(err).Str("workflow", "absence.acknowledge").Msg("policy lookup aborted, falling back to canned acknowledgment")
		return contractx.Fallback(AckFallback)
	}
	policyJSON, err := json.Marshal(policy.Value)
	if err != nil {
		return contractx.Fallback(AckFallback)
	}

	second, err := s.ack.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(ackToolSystemPrompt),
		schema.UserMessage(request),
		first,
		schema.ToolMessage(string(policyJSON), call.ID),
	})
	if err != nil || second == nil || strings.TrimSpace(second.Content) == "" {
		log.Warn().Err(err).Str("workflow", "absence.acknowledge").Msg("tool follow-up failed, falling back to canned acknowledgment")
		return contractx.Fallback(AckFallback)
	}
	return contractx.Ok(strings.TrimSpace(second.Content))
}

// Converse handles the confirmation turn of the wizard. "no" restarts, an
// explicit confirmation triggers the policy-options simulation over the full
// history, anything else asks for a clear yes or no.
func (s *Service) Converse(ctx context.Context, conversation []contractx.ChatMessage) contractx.Outcome[string] {
	last, ok := lastUserMessage(conversation)
	if ok {
		normalized := strings.ToLower(strings.TrimSpace(last.Content))
		if strings.Contains(normalized, "no") {
			return contractx.Ok(RestartNotice)
		}
		if strings.Contains(normalized, "yes") || strings.Contains(normalized, "correct") || strings.Contains(normalized, "right") {
			return s.converseConfirmed(ctx, conversation)
		}
	}
	return contractx.Ok(ConfirmNudge)
}

func (s *Service) converseConfirmed(ctx context.Context, conversation []contractx.ChatMessage) contractx.Outcome[string] {
	history := chatHistory(conversation)
	if len(history) == 0 {
		log.Warn().Str("workflow", "absence.converse").Msg("no usable turns in conversation, falling back to canned reply")
		return contractx.Fallback(ConverseFallback)
	}

	msgs := append([]*schema.Message{schema.SystemMessage(policySimSystemPrompt)}, history...)
	out, err := s.converse.Invoke(ctx, msgs)
	if err != nil {
		log.Warn().Err(err).Str("workflow", "absence.converse").Msg("falling back to canned reply")
		return contractx.Fallback(ConverseFallback)
	}
	text := ""
	if out != nil {
		text = strings.TrimSpace(out.Content)
	}
	if text == "" {
		log.Warn().Str("workflow", "absence.converse").Msg("empty model reply, falling back to canned reply")
		return contractx.Fallback(ConverseFallback)
	}
	return contractx.Ok(text)
}

// CompanyPolicy looks up the single internal policy for a request. Provider
// overload is retried inside the lookup; any terminal failure goes to the
// canned option. The returned error is non-nil only when the context ended,
// so callers can tell cancellation from a fallback.
func (s *Service) CompanyPolicy(ctx context.Context, request string) (contractx.Outcome[contractx.PolicyOption], error) {
	opt, err := s.companyLookup(ctx, request)
	if err != nil {
		if ctx.Err() != nil {
			return contractx.Outcome[contractx.PolicyOption]{}, ctx.Err()
		}
		log.Error().Err(err).Str("workflow", "absence.company_policy").Msg("falling back to canned company policy")
		return contractx.Fallback(fallbackCompanyPolicy()), nil
	}
	return contractx.Ok(opt), nil
}

// companyLookup runs the handbook call with the overload retry loop. The
// delay before retry N is N*retryBaseDelay.
func (s *Service) companyLookup(ctx context.Context, request string) (contractx.PolicyOption, error) {
	msgs := []*schema.Message{
		schema.SystemMessage(companyPolicySystemPrompt),
		schema.UserMessage(fmt.Sprintf(companyPolicyUserPrompt, request)),
	}

	var lastErr error
	for attempt := 1; attempt <= companyPolicyAttempts; attempt++ {
		opt, err := s.company.Invoke(ctx, msgs)
		if err == nil {
			if strings.TrimSpace(opt.Title) == "" {
				err = fmt.Errorf("%w: company policy title is empty", contractx.ErrSchemaViolation)
			} else {
				return opt, nil
			}
		}
		lastErr = err
		if ctx.Err() != nil {
			return contractx.PolicyOption{}, ctx.Err()
		}
		if !contractx.IsOverloaded(err) || attempt == companyPolicyAttempts {
			break
		}
		delay := time.Duration(attempt) * s.retryBaseDelay
		log.Warn().Err(err).
			Str("workflow", "absence.company_policy").
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("provider overloaded, retrying")
		if serr := s.sleep(ctx, delay); serr != nil {
			return contractx.PolicyOption{}, serr
		}
	}
	return contractx.PolicyOption{}, lastErr
}

// FederalStatePolicies looks up the applicable federal and state options for
// a request. Failures and empty lists fall back to the canned FMLA/CFRA pair.
func (s *Service) FederalStatePolicies(ctx context.Context, request string) (contractx.Outcome[[]contractx.PolicyOption], error) {
	list, err := s.federalLookup(ctx, request)
	if err != nil {
		if ctx.Err() != nil {
			return contractx.Outcome[[]contractx.PolicyOption]{}, ctx.Err()
		}
		log.Error().Err(err).Str("workflow", "absence.federal_state").Msg("falling back to canned federal and state policies")
		return contractx.Fallback(fallbackFederalStatePolicies()), nil
	}
	return contractx.Ok(list), nil
}

func (s *Service) federalLookup(ctx context.Context, request string) ([]contractx.PolicyOption, error) {
	list, err := s.federal.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(federalStateSystemPrompt, request)),
		schema.UserMessage(request),
	})
	if err != nil {
		return nil, err
	}
	if len(list.PolicyOptions) == 0 {
		return nil, fmt.Errorf("%w: no federal or state policy options returned", contractx.ErrSchemaViolation)
	}
	return list.PolicyOptions, nil
}

// AllPolicyOptions runs the company and federal/state lookups concurrently
// and merges them company-first. A failed branch contributes nothing; when
// both fail the result is the canned single-option list.
func (s *Service) AllPolicyOptions(ctx context.Context, request string) contractx.Outcome[[]contractx.PolicyOption] {
	var (
		companyOpt  contractx.PolicyOption
		federalOpts []contractx.PolicyOption
		companyErr  error
		federalErr  error
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				companyErr = fmt.Errorf("company policy lookup panicked: %v", r)
			}
		}()
		companyOpt, companyErr = s.companyLookup(ctx, request)
		return nil
	})
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				federalErr = fmt.Errorf("federal and state lookup panicked: %v", r)
			}
		}()
		federalOpts, federalErr = s.federalLookup(ctx, request)
		return nil
	})
	_ = g.Wait()

	if companyErr != nil && federalErr != nil {
		log.Error().
			AnErr("company_error", companyErr).
			AnErr("federal_error", federalErr).
			Str("workflow", "absence.all_policies").
			Msg("both lookups failed, falling back to canned option list")
		return contractx.Fallback(fallbackAggregatePolicies())
	}

	merged := make([]contractx.PolicyOption, 0, 1+len(federalOpts))
	if companyErr == nil {
		merged = append(merged, companyOpt)
	} else {
		log.Warn().Err(companyErr).Str("workflow", "absence.all_policies").Msg("company branch failed, merging without it")
	}
	if federalErr == nil {
		merged = append(merged, federalOpts...)
	} else {
		log.Warn().Err(federalErr).Str("workflow", "absence.all_policies").Msg("federal branch failed, merging without it")
	}

	origin := contractx.OriginModel
	if companyErr != nil || federalErr != nil {
		origin = contractx.OriginMixed
	}
	return contractx.Outcome[[]contractx.PolicyOption]{Value: merged, Origin: origin}
}

// ClarifyingQuestions generates up to five questions that narrow down the
// given policy options. An unusable list falls back to the canned trio.
func (s *Service) ClarifyingQuestions(ctx context.Context, policies []contractx.PolicyOption) contractx.Outcome[contractx.QuestionList] {
	policyJSON, err := json.MarshalIndent(policies, "", "  ")
	if err != nil {
		return contractx.Fallback(fallbackQuestions())
	}

	list, err := s.clarify.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(clarifySystemPrompt),
		schema.UserMessage(fmt.Sprintf(clarifyUserPrompt, policyJSON)),
	})
	if err != nil {
		log.Error().Err(err).Str("workflow", "absence.clarify").Msg("falling back to canned clarifying questions")
		return contractx.Fallback(fallbackQuestions())
	}
	if !validQuestions(list) {
		log.Error().Int("count", len(list.Questions)).Str("workflow", "absence.clarify").Msg("unusable question list, falling back")
		return contractx.Fallback(fallbackQuestions())
	}
	return contractx.Ok(list)
}

func validQuestions(list contractx.QuestionList) bool {
	if len(list.Questions) == 0 || len(list.Questions) > maxClarifyingQuestions {
		return false
	}
	for _, q := range list.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return false
		}
	}
	return true
}

// Recommend synthesizes the best-fit policy from the shortlist and the
// user's answers. Failures fall back to the canned FMLA recommendation.
func (s *Service) Recommend(ctx context.Context, policies []contractx.PolicyOption, answers map[string]string) contractx.Outcome[contractx.RecommendationPayload] {
	policyJSON, err := json.MarshalIndent(policies, "", "  ")
	if err != nil {
		return contractx.Fallback(fallbackRecommendation())
	}
	answerJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return contractx.Fallback(fallbackRecommendation())
	}

	payload, err := s.recommend.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(recommendSystemPrompt),
		schema.UserMessage(fmt.Sprintf(recommendUserPrompt, policyJSON, answerJSON)),
	})
	if err != nil {
		log.Error().Err(err).Str("workflow", "absence.recommend").Msg("falling back to canned recommendation")
		return contractx.Fallback(fallbackRecommendation())
	}
	if strings.TrimSpace(payload.Recommendation.Title) == "" {
		log.Error().Str("workflow", "absence.recommend").Msg("recommendation has no title, falling back")
		return contractx.Fallback(fallbackRecommendation())
	}
	return contractx.Ok(payload)
}

// DecisionHelp answers a free-text question about the shown policy options.
func (s *Service) DecisionHelp(ctx context.Context, question string, policies []contractx.PolicyOption, originalRequest string) contractx.Outcome[string] {
	policyJSON, err := json.MarshalIndent(policies, "", "  ")
	if err != nil {
		return contractx.Fallback(DecisionFallback)
	}

	out, err := s.decision.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(decisionHelpSystemPrompt),
		schema.UserMessage(fmt.Sprintf(decisionHelpUserPrompt, policyJSON, originalRequest, question)),
	})
	if err != nil {
		log.Warn().Err(err).Str("workflow", "absence.decision_help").Msg("falling back to canned decision reply")
		return contractx.Fallback(DecisionFallback)
	}
	text := ""
	if out != nil {
		text = strings.TrimSpace(out.Content)
	}
	if text == "" {
		log.Warn().Str("workflow", "absence.decision_help").Msg("empty model reply, falling back to canned decision reply")
		return contractx.Fallback(DecisionFallback)
	}
	return contractx.Ok(text)
}

func findToolCall(msg *schema.Message, name string) (schema.ToolCall, bool) {
	for _, call := range msg.ToolCalls {
		if call.Function.Name == name {
			return call, true
		}
	}
	return schema.ToolCall{}, false
}

func lastUserMessage(conversation []contractx.ChatMessage) (contractx.ChatMessage, bool) {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Type == contractx.MessageTypeUser {
			return conversation[i], true
		}
	}
	return contractx.ChatMessage{}, false
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

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
