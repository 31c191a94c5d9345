// Package logger provides structured logging for the task service.
//
// It utilizes Go's standard library log/slog package to implement structured
// JSON logging with configurable log levels, and carries request-scoped
// loggers (tagged with a trace ID) through context.Context.
package logger
