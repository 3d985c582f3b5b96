package console

import (
	"go.uber.org/zap"
)

type zapSink struct {
	logger *zap.Logger
}

// NewZapSink forwards logged values to a zap logger: text at info, anything else at debug.
// Wrap it in NewFilter to keep failure lines out of the log.
func NewZapSink(logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapSink{logger: logger}
}

func (z *zapSink) Log(v any) {
	text, ok := textOf(v)
	if !ok {
		z.logger.Debug("console value", zap.Any("value", v))
		return
	}
	z.logger.Info("console", zap.String("line", text))
}
