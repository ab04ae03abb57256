package logger

import (
	"log"
	"os"
)

type Logger struct {
	info  *log.Logger
	error *log.Logger
	warn  *log.Logger
}

func New() *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds | log.LUTC
	return &Logger{
		info:  log.New(os.Stdout, "[INFO] ", flags),
		error: log.New(os.Stderr, "[ERROR] ", flags),
		warn:  log.New(os.Stdout, "[WARN] ", flags),
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}
