package logger

import (
	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
