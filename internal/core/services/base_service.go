package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	location *time.Location
}

func newBaseService(loc *time.Location) BaseService {
	if loc == nil {
		loc = time.UTC
	}
	return BaseService{location: loc}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Today is the current calendar day in the business time zone.
func (s *BaseService) Today() string {
	return s.DateOf(time.Now())
}

// DateOf is the business calendar day t falls on.
func (s *BaseService) DateOf(t time.Time) string {
	return domain.BusinessDate(t, s.location)
}

// wrapRepoError passes sentinel errors through untouched and wraps anything else with context.
func wrapRepoError(err error, op string) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		apperrors.ErrNotFound, apperrors.ErrDuplicate, apperrors.ErrInvalidState,
		apperrors.ErrValidation, apperrors.ErrConfigMissing,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrNotFound, fmt.Sprintf(format, args...))
}

func invalidStateError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidState, fmt.Sprintf(format, args...))
}

func strPtr(s string) *string {
	return &s
}
