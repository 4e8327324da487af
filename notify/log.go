package notify

import (
	"go.uber.org/zap"

	"studentadmin/types"
)

// Log writes notifications to a zap logger.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger.Named("notify")}
}

func (l *Log) Success(text string) {
	l.logger.Info(text, zap.String("severity", string(types.SeveritySuccess)))
}

func (l *Log) Error(text string) {
	l.logger.Error(text, zap.String("severity", string(types.SeverityError)))
}

func (l *Log) Warning(text string) {
	l.logger.Warn(text, zap.String("severity", string(types.SeverityWarning)))
}
