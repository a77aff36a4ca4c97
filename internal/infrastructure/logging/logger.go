package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// StructuredLogger escribe una línea por entrada, en JSON o texto
type StructuredLogger struct {
	mu     sync.RWMutex
	config LoggerConfig
	out    io.Writer
	writeM sync.Mutex
	now    func() time.Time
}

// LogEntry es la forma serializada de cada línea de log
type LogEntry struct {
	Timestamp   string   `json:"timestamp"`
	Level       LogLevel `json:"level"`
	Message     string   `json:"message"`
	RequestID   string   `json:"request_id,omitempty"`
	Service     string   `json:"service"`
	Version     string   `json:"version,omitempty"`
	Environment string   `json:"environment,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	Source      string   `json:"source,omitempty"`
	Fields      Fields   `json:"fields,omitempty"`
}

// NewStructuredLogger valida la configuración y crea el logger
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	return &StructuredLogger{
		config: *config,
		out:    config.Output,
		now:    time.Now,
	}, nil
}

func (sl *StructuredLogger) enabled(level LogLevel) bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return levelRank[level] >= levelRank[sl.config.Level]
}

func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	if !sl.enabled(level) {
		return
	}

	entry := sl.newEntry(ctx, level, message, fields)

	var line string
	if sl.config.Format == FormatText {
		line = formatText(entry)
	} else {
		line = formatJSON(entry)
	}

	sl.writeM.Lock()
	defer sl.writeM.Unlock()
	_, _ = io.WriteString(sl.out, line+"\n")
}

func (sl *StructuredLogger) newEntry(ctx context.Context, level LogLevel, message string, fields Fields) *LogEntry {
	entry := &LogEntry{
		Timestamp:   sl.now().UTC().Format(time.RFC3339Nano),
		Level:       level,
		Message:     message,
		Service:     sl.config.Service,
		Version:     sl.config.Version,
		Environment: sl.config.Environment,
	}
	if ctx != nil {
		entry.RequestID = GetRequestID(ctx)
	}

	// el dominio viaja en los campos y se promueve al nivel superior
	if len(fields) > 0 {
		entry.Fields = make(Fields, len(fields))
		for k, v := range fields {
			if k == FieldDomain {
				if d, ok := v.(string); ok {
					entry.Domain = d
					continue
				}
			}
			entry.Fields[k] = v
		}
		if len(entry.Fields) == 0 {
			entry.Fields = nil
		}
	}

	if sl.config.AddSource {
		entry.Source = callerName()
	}

	return entry
}

func formatJSON(entry *LogEntry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":%q,"message":%q,"marshal_error":%q}`, entry.Level, entry.Message, err.Error())
	}
	return string(data)
}

func formatText(entry *LogEntry) string {
	var b strings.Builder
	b.WriteString(entry.Timestamp)
	b.WriteString(" [")
	b.WriteString(string(entry.Level))
	b.WriteString("]")

	if entry.RequestID != "" {
		b.WriteString(" req:")
		b.WriteString(entry.RequestID)
	}
	if entry.Domain != "" {
		b.WriteString(" domain:")
		b.WriteString(entry.Domain)
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}

	return b.String()
}

// callerName devuelve la primera función fuera de este paquete
func callerName() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "/infrastructure/logging.") {
			name := frame.Function
			if idx := strings.LastIndex(name, "/"); idx != -1 {
				name = name[idx+1:]
			}
			return name
		}
		if !more {
			return ""
		}
	}
}

func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelInfo, message, withError(fields, err))
}

func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, withError(fields, err))
}

func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, withError(fields, err))
}

// SetLevel cambia el nivel mínimo en caliente
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.config.Level = level
}

func (sl *StructuredLogger) GetLevel() LogLevel {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.config.Level
}

func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	out := make(Fields, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldError] = err.Error()
	out[FieldErrorType] = errorType(err)
	return out
}
