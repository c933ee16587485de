// Package autoload initializes the global logger from the environment as a
// side effect of being imported. Import it blank from main.
package autoload

import (
	configx "github.com/curiousclaude/backend/pkg/config"
	logx "github.com/curiousclaude/backend/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
