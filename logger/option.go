package logger

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
)

type Option struct {
	Level        int32
	Console      io.Writer
	ConsoleColor bool
	TimeFormat   string
}

var defaultOption = &Option{
	Level:        INFO,
	Console:      os.Stdout,
	ConsoleColor: true,
	TimeFormat:   "2006-01-02 15:04:05.000",
}

func (opt *Option) Merge(aos ...*Option) *Option {
	oo := &Option{opt.Level, opt.Console, opt.ConsoleColor, opt.TimeFormat}
	for _, a := range aos {
		if a == nil {
			continue
		}
		if a.Level != UNKNOWN {
			oo.Level = a.Level
		}
		if a.Console != nil {
			oo.Console = a.Console
		}
		oo.ConsoleColor = a.ConsoleColor
		if a.TimeFormat != "" {
			oo.TimeFormat = a.TimeFormat
		}
	}
	return oo
}

// toLevel accepts a level constant, any numeric, or a level name.
func toLevel(lv interface{}) int32 {
	switch v := lv.(type) {
	case int32:
		return v
	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "TRACE", "T":
			return TRACE
		case "DEBUG", "D":
			return DEBUG
		case "INFO", "I":
			return INFO
		case "WARN", "WARNING", "W":
			return WARN
		case "ERROR", "E":
			return ERROR
		case "FATAL", "F":
			return FATAL
		case "OFF":
			return OFF
		}
		return INFO
	default:
		return cast.ToInt32(lv)
	}
}
