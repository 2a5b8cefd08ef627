// Package logger sets up slog JSON logging and carries request-scoped
// loggers through a context.
package logger
