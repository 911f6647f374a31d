package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is a leveled, key/value logger. Loggers are cheap to create
// and safe for concurrent use.
type Logger interface {
	Trace(message string, opts ...interface{})
	Debug(message string, opts ...interface{})
	Info(message string, opts ...interface{})
	Warning(message string, opts ...interface{})
	Error(message string, opts ...interface{})
	Fatal(message string, opts ...interface{})
	Child(opts ...interface{}) Logger
}

type entryLogger struct {
	e *logrus.Entry
}

func (l *entryLogger) Trace(message string, opts ...interface{}) {
	l.with(opts).Trace(message)
}

func (l *entryLogger) Debug(message string, opts ...interface{}) {
	l.with(opts).Debug(message)
}

func (l *entryLogger) Info(message string, opts ...interface{}) {
	l.with(opts).Info(message)
}

func (l *entryLogger) Warning(message string, opts ...interface{}) {
	l.with(opts).Warning(message)
}

func (l *entryLogger) Error(message string, opts ...interface{}) {
	l.with(opts).Error(message)
}

func (l *entryLogger) Fatal(message string, opts ...interface{}) {
	l.with(opts).Fatal(message)
}

func (l *entryLogger) Child(opts ...interface{}) Logger {
	return &entryLogger{
		e: l.with(opts),
	}
}

func (l *entryLogger) with(opts []interface{}) *logrus.Entry {
	if len(opts) == 0 {
		return l.e
	}
	if len(opts)%2 != 0 {
		panic("mismatched log key/value pairs")
	}

	fields := make(logrus.Fields, len(opts)/2)
	for i := 0; i < len(opts); i += 2 {
		fields[opts[i].(string)] = opts[i+1]
	}
	return l.e.WithFields(fields)
}

var root = &entryLogger{
	e: logrus.NewEntry(logrus.StandardLogger()),
}

// ModuleLogger returns a child logger tagged with the module name.
func ModuleLogger(name string) Logger {
	return root.Child("module", name)
}

// SetLevel adjusts the level of the process-wide root logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}
