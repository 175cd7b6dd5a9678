package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"menu-service/pkg/config"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger initializes the global logger from the application configuration.
// Only the first call takes effect.
func InitLogger(appConfig *config.Config) {
	once.Do(func() {
		instance = build(appConfig)
	})
}

// GetLogger returns the global logger, building a default one if InitLogger
// was never called.
func GetLogger() *zap.Logger {
	once.Do(func() {
		instance = build(nil)
	})
	return instance
}

func build(appConfig *config.Config) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}

	if appConfig != nil {
		if level, err := zapcore.ParseLevel(appConfig.Log.Level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
		if appConfig.Server.Env == "development" {
			cfg.Development = true
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
