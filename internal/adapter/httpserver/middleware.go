package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	"github.com/PWDEJOB/pwde-job-api/internal/platform/correlation"
	apperrors "github.com/PWDEJOB/pwde-job-api/internal/platform/errors"
)

// Context keys set by the auth middleware.
const (
	contextKeyUserID = "userID"
	contextKeyToken  = "token"
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// requireAuth parses the Authorization header, resolves the bearer token
// to a principal, and stashes the principal ID and raw token in the echo
// context. Missing, malformed, and unknown tokens are all 401.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		principalID, err := s.app.ResolveToken(c.Request().Context(), token)
		if errors.Is(err, domain.ErrSessionNotFound) {
			return apperrors.UnauthenticatedError("invalid or expired token")
		}
		if err != nil {
			return apperrors.InternalError("failed to resolve session", err)
		}

		c.Set(contextKeyUserID, principalID)
		c.Set(contextKeyToken, token)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", apperrors.UnauthenticatedError("missing authorization header")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperrors.UnauthenticatedError("malformed authorization header")
	}
	return token, nil
}

func principalID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(contextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalError("invalid principal ID in context", nil)
	}
	return id, nil
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structuredErr := apperrors.AsStructuredError(mapDomainError(err))
			logError(c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// mapDomainError translates domain sentinel errors into typed errors at
// the HTTP boundary. Unknown errors pass through and end up as 500s.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrEmployerNotFound),
		errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrApplicationNotFound):
		return apperrors.NotFoundError(err.Error())

	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.UnauthenticatedError(err.Error())

	case errors.Is(err, domain.ErrNotJobOwner):
		return apperrors.ForbiddenError(err.Error())

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrSignupLimitReached),
		errors.Is(err, domain.ErrNotAnEmployee),
		errors.Is(err, domain.ErrNotAnEmployer),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrAlreadyDeclined):
		return apperrors.ConflictError(err.Error())

	case errors.Is(err, domain.ErrInvalidStatus):
		return apperrors.ValidationError(err.Error())
	}
	return err
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if userID := c.Get(contextKeyUserID); userID != nil {
		attrs = append(attrs, "user_id", userID)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.Info("Validation error", attrs...)
	case apperrors.TypeUnauthenticated:
		slog.Info("Unauthenticated", attrs...)
	case apperrors.TypeForbidden:
		slog.Warn("Forbidden", attrs...)
	case apperrors.TypeNotFound:
		slog.Info("Not found", attrs...)
	case apperrors.TypeConflict:
		slog.Warn("Conflict", attrs...)
	case apperrors.TypeExternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("External service error", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	}
}
