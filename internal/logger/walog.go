package logger

import (
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
)

// waLogger routes whatsmeow logging into zap.
type waLogger struct {
	sugar *zap.SugaredLogger
}

// WhatsApp adapts a zap logger to whatsmeow's logging interface.
func WhatsApp(log *zap.Logger, module string) waLog.Logger {
	return &waLogger{sugar: log.Named(module).Sugar()}
}

func (l *waLogger) Errorf(msg string, args ...interface{}) { l.sugar.Errorf(msg, args...) }
func (l *waLogger) Warnf(msg string, args ...interface{})  { l.sugar.Warnf(msg, args...) }
func (l *waLogger) Infof(msg string, args ...interface{})  { l.sugar.Infof(msg, args...) }
func (l *waLogger) Debugf(msg string, args ...interface{}) { l.sugar.Debugf(msg, args...) }

func (l *waLogger) Sub(module string) waLog.Logger {
	return &waLogger{sugar: l.sugar.Named(module)}
}
