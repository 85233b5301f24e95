package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return colorGray
	case INFO:
		return colorBlue
	case WARN:
		return colorYellow
	case ERROR:
		return colorRed
	case FATAL:
		return colorPurple
	default:
		return colorWhite
	}
}

type leveledLogger struct {
	mu      sync.RWMutex
	verbose bool
	colors  bool
	out     *log.Logger
	errOut  *log.Logger
	logFile *os.File
}

var global = &leveledLogger{
	colors: true,
	out:    log.New(os.Stdout, "", 0),
	errOut: log.New(os.Stderr, "", 0),
}

func SetVerbose(verbose bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.verbose = verbose
}

func IsVerbose() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.verbose
}

// SetOutput replaces both output streams, mainly for tests.
func SetOutput(w io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.colors = false
	global.out = log.New(w, "", 0)
	global.errOut = log.New(w, "", 0)
}

// AddLogFile tees every log line into the given file. Colors are disabled
// once a log file is attached; log files are for tooling, not terminals.
func AddLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	global.mu.Lock()
	defer global.mu.Unlock()
	if global.logFile != nil {
		global.logFile.Close()
	}
	global.logFile = f
	global.colors = false
	global.out = log.New(io.MultiWriter(os.Stdout, f), "", 0)
	global.errOut = log.New(io.MultiWriter(os.Stderr, f), "", 0)
	return nil
}

func (ll *leveledLogger) format(level LogLevel, message string) string {
	timestamp := time.Now().Format("06-01-02 15:04:05")
	if !ll.colors {
		return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
	}
	return fmt.Sprintf(
		"%s[%s]%s %s%-5s%s %s",
		colorGray, timestamp, colorReset,
		level.color(), level.String(), colorReset,
		message,
	)
}

func (ll *leveledLogger) log(level LogLevel, format string, args ...interface{}) {
	ll.mu.RLock()
	if level == DEBUG && !ll.verbose {
		ll.mu.RUnlock()
		return
	}
	target := ll.out
	if level >= ERROR {
		target = ll.errOut
	}
	line := ll.format(level, fmt.Sprintf(format, args...))
	ll.mu.RUnlock()

	target.Println(line)

	if level == FATAL {
		os.Exit(1)
	}
}

func Debug(format string, args ...interface{}) {
	global.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	global.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	global.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	global.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	global.log(FATAL, format, args...)
}
