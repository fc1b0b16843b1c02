package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// String returns the string representation of the log level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel converts a string to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	for level, name := range levelNames {
		if name == s {
			return level
		}
	}
	return INFO
}

// Field is a key-value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level  // Minimum log level
	FilePath   string // Empty disables file output
	MaxSize    int64  // Rotate when the file reaches this many bytes
	MaxAge     int    // Rotate when the file is older than this many days
	MaxBackups int    // Number of rotated files to keep
	Console    bool   // Mirror entries to stderr
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Level:      INFO,
		FilePath:   filepath.Join(home, ".taskpad", "logs", "taskpad.log"),
		MaxSize:    10 * 1024 * 1024,
		MaxAge:     7,
		MaxBackups: 5,
		// stderr would tear the board's alt screen
		Console: false,
	}
}

// output is shared between a logger and the children made by WithFields
type output struct {
	mu     sync.Mutex
	config Config
	file   *os.File
	extra  io.Writer
}

// Logger writes leveled entries with preset fields
type Logger struct {
	out    *output
	fields []Field
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger once
func Init(config Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(config)
	})
	return err
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	out := &output{config: config}
	if config.Console {
		out.extra = os.Stderr
	}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := out.open(); err != nil {
			return nil, err
		}
		if err := out.rotateIfNeeded(); err != nil {
			return nil, err
		}
	}

	return &Logger{out: out}, nil
}

// NewWriter creates a logger that writes only to w. Used by tests.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{out: &output{config: Config{Level: level}, extra: w}}
}

func (o *output) open() error {
	file, err := os.OpenFile(o.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	o.file = file
	return nil
}

// rotateIfNeeded must be called with mu held or before the output is shared
func (o *output) rotateIfNeeded() error {
	if o.file == nil {
		return nil
	}

	info, err := o.file.Stat()
	if err != nil {
		return err
	}

	tooBig := o.config.MaxSize > 0 && info.Size() >= o.config.MaxSize
	tooOld := o.config.MaxAge > 0 && time.Since(info.ModTime()) > time.Duration(o.config.MaxAge)*24*time.Hour
	if !tooBig && !tooOld {
		return nil
	}
	return o.rotate()
}

// rotate shifts taskpad.log.N to .N+1 and starts a fresh file
func (o *output) rotate() error {
	_ = o.file.Close()

	path := o.config.FilePath
	for i := o.config.MaxBackups - 1; i >= 1; i-- {
		_ = os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".1"); err != nil {
			return err
		}
	}

	return o.open()
}

func (o *output) write(entry string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	_ = o.rotateIfNeeded()

	if o.file != nil {
		_, _ = io.WriteString(o.file, entry)
	}
	if o.extra != nil {
		_, _ = io.WriteString(o.extra, entry)
	}
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.out.config.Level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(3); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)

	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)
	if len(all) > 0 {
		b.WriteString(" |")
		for _, f := range all {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
	}
	b.WriteByte('\n')

	l.out.write(b.String())
}

// WithFields creates a child logger with preset fields
func (l *Logger) WithFields(fields ...Field) *Logger {
	if l == nil {
		return nil
	}
	preset := make([]Field, 0, len(l.fields)+len(fields))
	preset = append(preset, l.fields...)
	preset = append(preset, fields...)
	return &Logger{out: l.out, fields: preset}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) { l.entry(DEBUG, msg, fields) }

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) { l.entry(INFO, msg, fields) }

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) { l.entry(WARN, msg, fields) }

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) { l.entry(ERROR, msg, fields) }

// entry keeps the call depth identical for methods and package functions
// and is safe on a nil Logger.
func (l *Logger) entry(level Level, msg string, fields []Field) {
	if l == nil {
		return
	}
	l.log(level, msg, fields)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file != nil {
		err := l.out.file.Close()
		l.out.file = nil
		return err
	}
	return nil
}

// Global logger functions. They are no-ops until Init succeeds.

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.entry(DEBUG, msg, fields)
	}
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.entry(INFO, msg, fields)
	}
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.entry(WARN, msg, fields)
	}
}

// Error logs an error message using the global logger
func Error(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.entry(ERROR, msg, fields)
	}
}

// WithFields returns a child of the global logger, or nil before Init
func WithFields(fields ...Field) *Logger {
	if globalLogger != nil {
		return globalLogger.WithFields(fields...)
	}
	return nil
}

// Close closes the global logger
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
