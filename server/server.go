// Package server exposes the tutoring and absence workflows over HTTP.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/curiousclaude/backend/agent/absence"
	"github.com/curiousclaude/backend/agent/tutor"
)

type Config struct {
	Port           int      `envconfig:"PORT" default:"3001"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" split_words:"true" default:"http://localhost:5173"`
	Debug          bool     `envconfig:"DEBUG" default:"false"`
}

type Server struct {
	cfg     Config
	engine  *gin.Engine
	tutor   *tutor.Service
	absence *absence.Service
}

func New(cfg Config, tutorSvc *tutor.Service, absenceSvc *absence.Service) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestID(), accessLog(), gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		tutor:   tutorSvc,
		absence: absenceSvc,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api")
	api.POST("/claude", s.claude)
	api.POST("/claude-conversation", s.claudeConversation)
	api.POST("/analyze-prompt", s.analyzePrompt)
	api.POST("/get-short-goal", s.shortGoal)
	api.POST("/get-advanced-prompt", s.advancedPrompt)

	api.POST("/absence", s.absenceRequest)
	api.POST("/absence-conversation", s.absenceConversation)
	api.POST("/absence-clarifying-questions", s.clarifyingQuestions)
	api.POST("/absence-policy-recommendation", s.policyRecommendation)
	api.POST("/federal-state-policies", s.federalStatePolicies)
	api.POST("/get-all-policy-options", s.allPolicyOptions)
	api.POST("/get-company-policy", s.companyPolicy)
	api.POST("/absence-decision-help", s.decisionHelp)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Info().Str("addr", addr).Strs("allowed_origins", s.cfg.AllowedOrigins).Msg("starting http server")
	return s.engine.Run(addr)
}
