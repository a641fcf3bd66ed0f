package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"verification-platform/internal/domain/account"
	"verification-platform/internal/domain/extraction"
	"verification-platform/internal/domain/session"
	"verification-platform/internal/domain/verification"
)

// Map domain errors → HTTP codes
func errorStatus(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "session not found"}
	case errors.Is(err, session.ErrExpired):
		return http.StatusGone, ErrorResponse{Error: "session expired"}
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"}
	case errors.Is(err, session.ErrNoSubmission):
		return http.StatusConflict, ErrorResponse{Error: "submit the form before uploading documents"}
	case errors.Is(err, extraction.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "cannot verify",
			Details: []FieldError{{Field: "document", Message: err.Error()}},
		}
	case errors.Is(err, verification.ErrMissingField):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "_", Message: err.Error()}},
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}

func respondError(c echo.Context, log logrus.FieldLogger, err error) error {
	code, body := errorStatus(err)
	if code >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.JSON(code, body)
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
