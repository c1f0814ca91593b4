package logging

import (
	"context"
)

type contextKey string

const (
	RequestIDKey = "request_id"
	CommandKey   = "command"
	StepKey      = "step"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey(RequestIDKey), requestID)
}

func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, contextKey(CommandKey), command)
}

// WithStep names the optimize step currently running.
func WithStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, contextKey(StepKey), step)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

func GetCommand(ctx context.Context) string {
	return stringValue(ctx, CommandKey)
}

func GetStep(ctx context.Context) string {
	return stringValue(ctx, StepKey)
}

func stringValue(ctx context.Context, key string) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(contextKey(key)).(string); ok {
		return v
	}
	return ""
}

func GetLogFields(ctx context.Context) []interface{} {
	fields := make([]interface{}, 0, 6)

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, RequestIDKey, requestID)
	}

	if command := GetCommand(ctx); command != "" {
		fields = append(fields, CommandKey, command)
	}

	if step := GetStep(ctx); step != "" {
		fields = append(fields, StepKey, step)
	}

	return fields
}
