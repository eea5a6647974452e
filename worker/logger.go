package worker

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger adapts a zap sugared logger to asynq's Logger interface.
type Logger struct {
	zap *zap.SugaredLogger
}

func NewLogger() asynq.Logger {
	return &Logger{
		zap: zap.Must(zap.NewProduction()).Sugar(),
	}
}

func (l *Logger) print(level zapcore.Level, args ...any) {
	l.zap.Log(level, args...)
}

func (l *Logger) Debug(args ...any) { l.print(zapcore.DebugLevel, args...) }
func (l *Logger) Info(args ...any)  { l.print(zapcore.InfoLevel, args...) }
func (l *Logger) Warn(args ...any)  { l.print(zapcore.WarnLevel, args...) }
func (l *Logger) Error(args ...any) { l.print(zapcore.ErrorLevel, args...) }
func (l *Logger) Fatal(args ...any) { l.print(zapcore.FatalLevel, args...) }
