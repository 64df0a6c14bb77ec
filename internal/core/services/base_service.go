package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// DBTimeout bounds every unit of database work. A deadline hit is
	// reported to the caller as a transient failure, never retried
	// internally.
	DBTimeout time.Duration
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// boundedCtx derives a context carrying the service's database deadline.
func (s *BaseService) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.DBTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.DBTimeout)
}
