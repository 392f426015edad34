package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"laby-stock-backend/pkg/config"
)

var (
	once     sync.Once
	instance *zap.Logger
	level    = zapcore.InfoLevel
	devMode  bool
)

// InitLogger configures the global logger from the application config.
// Must be called before the first GetLogger call to take effect.
func InitLogger(cfg *config.Config) {
	if parsed, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		level = parsed
	}
	devMode = cfg.Server.Env == "development"
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	once.Do(func() {
		zapCfg := zap.NewProductionConfig()
		if devMode {
			zapCfg = zap.NewDevelopmentConfig()
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		zapCfg.OutputPaths = []string{"stdout"}
		logger, err := zapCfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
	return instance
}
