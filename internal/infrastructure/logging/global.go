package logging

import (
	"context"
)

// Atajos sobre el set global

func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLoggers().Base.Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLoggers().Base.Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLoggers().Base.Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLoggers().Base.Error(ctx, message, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLoggers().Base.ErrorWithError(ctx, message, err, fields)
}

func HTTP() HTTPLogger {
	return GetGlobalLoggers().HTTP
}

func ExternalAPI() ExternalAPILogger {
	return GetGlobalLoggers().ExternalAPI
}

func Cache() CacheLogger {
	return GetGlobalLoggers().Cache
}

func Business() BusinessLogger {
	return GetGlobalLoggers().Business
}

func Security() SecurityLogger {
	return GetGlobalLoggers().Security
}
