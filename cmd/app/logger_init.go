package main

import (
	"github.com/babilu-online/lootbox-contract/internal/config"
	"github.com/babilu-online/lootbox-contract/internal/handler"
	"github.com/babilu-online/lootbox-contract/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Only include source file/line in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"lootbox-engine",
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
