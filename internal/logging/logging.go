package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New возвращает development-логгер для локальной разработки и production-логгер иначе.
func New(debugMode bool) (l *zap.Logger, err error) {
	if debugMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l, nil
}
