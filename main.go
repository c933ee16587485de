package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/curiousclaude/backend/agent/absence"
	llmx "github.com/curiousclaude/backend/agent/llm"
	"github.com/curiousclaude/backend/agent/tutor"
	configx "github.com/curiousclaude/backend/pkg/config"
	_ "github.com/curiousclaude/backend/pkg/logger/autoload"
	"github.com/curiousclaude/backend/server"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("ANTHROPIC")
	serverCfg := configx.MustNew[server.Config]("SERVER")

	tutorSvc, err := tutor.New(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tutor service")
	}
	absenceSvc, err := absence.New(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize absence service")
	}

	srv := server.New(*serverCfg, tutorSvc, absenceSvc)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("http server exited")
	}
}
