package httpclient

import "fmt"

// Logger defines the logging surface the transport relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// restyLogger bridges resty's printf-style logger onto Logger.
type restyLogger struct {
	log Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.ErrorObj("resty error", "resty_detail", fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.WarnObj("resty warning", "resty_detail", fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.DebugObj("resty debug", "resty_detail", fmt.Sprintf(format, v...))
}
