package helpers

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

var debug atomic.Bool

// SetDebug включает вывод Debug-сообщений
func SetDebug(on bool) {
	debug.Store(on)
}

// Logger - логгер с префиксом компонента
type Logger struct {
	prefix string
}

// NewLogger создает логгер с префиксом
func NewLogger(prefix string) *Logger {
	return &Logger{prefix: "[" + prefix + "]"}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	log.Printf("%s INFO: %s%s", l.prefix, msg, format(args))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	log.Printf("%s WARN: %s%s", l.prefix, msg, format(args))
}

func (l *Logger) Error(msg string, err error, args ...interface{}) {
	log.Printf("%s ERROR: %s - %v%s", l.prefix, msg, err, format(args))
}

// Debug пишет только при SetDebug(true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if !debug.Load() {
		return
	}
	log.Printf("%s DEBUG: %s%s", l.prefix, msg, format(args))
}

// format склеивает дополнительные аргументы через пробел
func format(args []interface{}) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range args {
		b.WriteByte(' ')
		fmt.Fprint(&b, a)
	}
	return b.String()
}
