package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	contractx "github.com/curiousclaude/backend/agent/contract"
)

// The chat-style endpoints keep the frontend's envelope: structured payloads
// are JSON-encoded into a single content field rather than returned as
// native bodies.

type contentResponse struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type analyzeResponse struct {
	PromptInstructions []string `json:"promptInstructions"`
	Goals              []string `json:"goals"`
}

type shortGoalResponse struct {
	ShortDescription string `json:"shortDescription"`
}

type advancedPromptResponse struct {
	Prompt string `json:"prompt"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) claude(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
		return
	}

	content, err := s.tutor.Respond(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contentResponse{Content: content})
}

func (s *Server) claudeConversation(c *gin.Context) {
	var req struct {
		Conversation []contractx.ChatMessage `json:"conversation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Conversation) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Conversation array is required"})
		return
	}

	out, err := s.tutor.Converse(c.Request.Context(), req.Conversation)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "No valid messages in conversation"})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contentResponse{Content: out.Value})
}

func (s *Server) analyzePrompt(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
		return
	}

	analysis, err := s.tutor.AnalyzePrompt(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, analyzeResponse{
		PromptInstructions: []string{analysis.Instructions, analysis.External},
		Goals:              analysis.Goals,
	})
}

func (s *Server) shortGoal(c *gin.Context) {
	var req struct {
		Goal string `json:"goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Goal == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Goal is required"})
		return
	}

	short, err := s.tutor.ShortGoal(c.Request.Context(), req.Goal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if short == "" {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to generate short goal description"})
		return
	}
	c.JSON(http.StatusOK, shortGoalResponse{ShortDescription: short})
}

func (s *Server) advancedPrompt(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
		Goal   string `json:"goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" || req.Goal == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Prompt and goal are required"})
		return
	}

	prompt, err := s.tutor.AdvancedPrompt(c.Request.Context(), req.Goal, req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, advancedPromptResponse{Prompt: prompt})
}

func (s *Server) absenceRequest(c *gin.Context) {
	var req struct {
		Request string `json:"request"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Request == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Request is required"})
		return
	}

	out := s.absence.Acknowledge(c.Request.Context(), req.Request)
	c.JSON(http.StatusOK, contentResponse{Content: out.Value})
}

func (s *Server) absenceConversation(c *gin.Context) {
	var req struct {
		Conversation []contractx.ChatMessage `json:"conversation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Conversation) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Conversation array is required"})
		return
	}

	out := s.absence.Converse(c.Request.Context(), req.Conversation)
	c.JSON(http.StatusOK, contentResponse{Content: out.Value})
}

func (s *Server) clarifyingQuestions(c *gin.Context) {
	var req struct {
		Policies []contractx.PolicyOption `json:"policies"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Policies) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Policy options array is required"})
		return
	}

	out := s.absence.ClarifyingQuestions(c.Request.Context(), req.Policies)
	s.jsonContent(c, out.Value)
}

func (s *Server) policyRecommendation(c *gin.Context) {
	var req struct {
		Policies []contractx.PolicyOption `json:"policies"`
		Answers  map[string]string        `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Policies) == 0 || req.Answers == nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Policies and answers are required"})
		return
	}

	out := s.absence.Recommend(c.Request.Context(), req.Policies, req.Answers)
	s.jsonContent(c, out.Value)
}

func (s *Server) federalStatePolicies(c *gin.Context) {
	var req struct {
		Request string `json:"request"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Request == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Request is required"})
		return
	}

	out, err := s.absence.FederalStatePolicies(c.Request.Context(), req.Request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.jsonContent(c, contractx.PolicyList{PolicyOptions: out.Value})
}

func (s *Server) allPolicyOptions(c *gin.Context) {
	var req struct {
		Request string `json:"request"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Request == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Request is required"})
		return
	}

	out := s.absence.AllPolicyOptions(c.Request.Context(), req.Request)
	s.jsonContent(c, contractx.PolicyList{PolicyOptions: out.Value})
}

func (s *Server) companyPolicy(c *gin.Context) {
	var req struct {
		Request string `json:"request"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Request == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Request is required"})
		return
	}

	out, err := s.absence.CompanyPolicy(c.Request.Context(), req.Request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.jsonContent(c, out.Value)
}

func (s *Server) decisionHelp(c *gin.Context) {
	var req struct {
		Question        string                   `json:"question"`
		Policies        []contractx.PolicyOption `json:"policies"`
		OriginalRequest string                   `json:"originalRequest"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Question is required"})
		return
	}

	out := s.absence.DecisionHelp(c.Request.Context(), req.Question, req.Policies, req.OriginalRequest)
	c.JSON(http.StatusOK, contentResponse{Content: out.Value})
}

// jsonContent encodes a structured payload into the content envelope.
func (s *Server) jsonContent(c *gin.Context, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to encode response"})
		return
	}
	c.JSON(http.StatusOK, contentResponse{Content: string(data)})
}
