// Package logger is a leveled console logger with colored output. Libraries
// in this module log diagnostics through the package-level default; the host
// application decides where the writer points and which level passes.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	UNKNOWN int32 = iota
	TRACE
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
	OFF
)

type level struct {
	id     int32
	name   string
	flag   string
	colour *color.Color
}

var levels = map[int32]*level{
	TRACE: {TRACE, "TRACE", "T", color.New(color.FgCyan)},
	DEBUG: {DEBUG, "DEBUG", "D", color.New(color.FgGreen)},
	INFO:  {INFO, "INFO", "I", color.New()},
	WARN:  {WARN, "WARN", "W", color.New(color.FgYellow)},
	ERROR: {ERROR, "ERROR", "E", color.New(color.FgRed)},
	FATAL: {FATAL, "FATAL", "F", color.New(color.FgMagenta)},
}

type Logger struct {
	mu  sync.Mutex
	opt *Option
}

func New(aos ...*Option) *Logger {
	return &Logger{opt: defaultOption.Merge(aos...)}
}

func (lg *Logger) SetLevel(lv interface{}) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.opt.Level = toLevel(lv)
}

func (lg *Logger) SetOutput(w io.Writer) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.opt.Console = w
}

func (lg *Logger) SetColor(enabled bool) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.opt.ConsoleColor = enabled
}

// PrintOut formats and writes one record. format == "" means plain Sprint
// of the arguments. Callers are expected to be one frame above (the
// Trace/Debug/... wrappers), which the caller lookup depth accounts for.
func (lg *Logger) PrintOut(lvl int32, format string, a ...interface{}) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if lvl < lg.opt.Level || lg.opt.Console == nil {
		// filtering suppresses the record, not the termination
		if lvl == FATAL {
			os.Exit(1)
		}
		return
	}
	l := levels[lvl]
	if l == nil {
		l = levels[INFO]
	}
	msg := fmt.Sprint(a...)
	if format != "" {
		msg = fmt.Sprintf(format, a...)
	}
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "???", 0
	}
	record := fmt.Sprintf("%s [%s] %s:%d %s\n",
		time.Now().Format(lg.opt.TimeFormat), l.flag, filepath.Base(file), line, msg)
	if lg.opt.ConsoleColor {
		l.colour.Fprint(lg.opt.Console, record)
	} else {
		fmt.Fprint(lg.opt.Console, record)
	}
	if lvl == FATAL {
		os.Exit(1)
	}
}

func (lg *Logger) Trace(a ...interface{}) { lg.PrintOut(TRACE, "", a...) }

func (lg *Logger) Tracef(format string, a ...interface{}) { lg.PrintOut(TRACE, format, a...) }

func (lg *Logger) Debug(a ...interface{}) { lg.PrintOut(DEBUG, "", a...) }

func (lg *Logger) Debugf(format string, a ...interface{}) { lg.PrintOut(DEBUG, format, a...) }

func (lg *Logger) Info(a ...interface{}) { lg.PrintOut(INFO, "", a...) }

func (lg *Logger) Infof(format string, a ...interface{}) { lg.PrintOut(INFO, format, a...) }

func (lg *Logger) Warn(a ...interface{}) { lg.PrintOut(WARN, "", a...) }

func (lg *Logger) Warnf(format string, a ...interface{}) { lg.PrintOut(WARN, format, a...) }

func (lg *Logger) Error(a ...interface{}) { lg.PrintOut(ERROR, "", a...) }

func (lg *Logger) Errorf(format string, a ...interface{}) { lg.PrintOut(ERROR, format, a...) }

func (lg *Logger) Fatal(a ...interface{}) { lg.PrintOut(FATAL, "", a...) }

func (lg *Logger) Fatalf(format string, a ...interface{}) { lg.PrintOut(FATAL, format, a...) }

var defaultLogger = New()

func DefaultLogger() *Logger {
	return defaultLogger
}

func SetLevel(lv interface{}) {
	defaultLogger.SetLevel(lv)
}

func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

func SetColor(enabled bool) {
	defaultLogger.SetColor(enabled)
}

func Trace(a ...interface{}) { defaultLogger.PrintOut(TRACE, "", a...) }

func Tracef(format string, a ...interface{}) { defaultLogger.PrintOut(TRACE, format, a...) }

func Debug(a ...interface{}) { defaultLogger.PrintOut(DEBUG, "", a...) }

func Debugf(format string, a ...interface{}) { defaultLogger.PrintOut(DEBUG, format, a...) }

func Info(a ...interface{}) { defaultLogger.PrintOut(INFO, "", a...) }

func Infof(format string, a ...interface{}) { defaultLogger.PrintOut(INFO, format, a...) }

func Warn(a ...interface{}) { defaultLogger.PrintOut(WARN, "", a...) }

func Warnf(format string, a ...interface{}) { defaultLogger.PrintOut(WARN, format, a...) }

func Error(a ...interface{}) { defaultLogger.PrintOut(ERROR, "", a...) }

func Errorf(format string, a ...interface{}) { defaultLogger.PrintOut(ERROR, format, a...) }

func Fatal(a ...interface{}) { defaultLogger.PrintOut(FATAL, "", a...) }

func Fatalf(format string, a ...interface{}) { defaultLogger.PrintOut(FATAL, format, a...) }
