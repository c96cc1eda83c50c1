package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
)

// errorMapping pairs an error with the status and client message it produces.
// Specific errors come before the kind they wrap.
type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrPasswordMismatch, http.StatusBadRequest, "passwords do not match"},
	{domain.ErrInvalidIdentifier, http.StatusBadRequest, "invalid email or phone number format"},
	{domain.ErrValidation, http.StatusBadRequest, "invalid request"},
	{domain.ErrOTPInvalid, http.StatusBadRequest, "otp is invalid or has expired"},
	{domain.ErrAlreadyApproved, http.StatusBadRequest, "user is already approved"},
	{domain.ErrConflict, http.StatusConflict, "email or phone number is already registered"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrAccountDisabled, http.StatusUnauthorized, "account is disabled"},
	{usecase.ErrRegistrationNotFound, http.StatusUnauthorized, "registration not found"},
	{usecase.ErrLoginChallengeNotFound, http.StatusUnauthorized, "invalid login session"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "not logged in"},
	{domain.ErrNotApproved, http.StatusForbidden, "account is waiting for admin approval"},
	{domain.ErrForbidden, http.StatusForbidden, "requires admin privileges"},
	{domain.ErrNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrOTPDelivery, http.StatusInternalServerError, "could not send otp"},
}

// statusFor maps err to an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// writeError logs err and writes the {status:"error", message} body.
// Server-side failures are logged at ERROR, client errors at WARN.
func writeError(c *gin.Context, op string, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	} else {
		slog.Warn(op+" failed", "error", err, "status", status, "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.StatusRes{Status: dto.StatusError, Message: message})
}

// writeBindError answers a request whose body failed binding or validation.
func writeBindError(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, dto.StatusRes{Status: dto.StatusError, Message: err.Error()})
}
