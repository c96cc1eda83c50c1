// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/cookie"
	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the registration, login and session operations.
// Following Go conventions, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (string, error)
	VerifyRegistration(ctx context.Context, ref, code string) (*entity.User, error)
	ResendRegistrationOTP(ctx context.Context, ref string) error
	Login(ctx context.Context, identifier, password string) (string, error)
	VerifyOTP(ctx context.Context, ref, code string, meta usecase.ClientMeta) (*entity.Session, *entity.User, error)
	ResendOTP(ctx context.Context, ref string) error
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// AuthHandler handles the /auth endpoints used by end users.
// Every step hands the client an opaque reference in an HttpOnly cookie and
// reads it back on the next step.
type AuthHandler struct {
	auth AuthUsecase
	jar  *cookie.Jar
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, jar *cookie.Jar) *AuthHandler {
	return &AuthHandler{auth: auth, jar: jar}
}

// Register handles POST /auth/register.
// - 400 on validation errors or mismatched passwords
// - 409 when the email or phone is already bound to a user
// - 500 when the OTP email cannot be sent (no cookie is set)
// - 201 with the temp_registration_id cookie on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "register", err)
		return
	}
	ref, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(c, "register", err)
		return
	}
	h.jar.SetPending(c, cookie.RegistrationRef, ref)
	slog.Info("registration pending", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.StatusRes{
		Status:  dto.StatusPending,
		Message: "An OTP has been sent to your email. Please complete the registration.",
	})
}

// VerifyRegistration handles POST /auth/verify-registration.
func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	var req dto.OTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "verify registration", err)
		return
	}
	ref, _ := c.Cookie(cookie.RegistrationRef)
	user, err := h.auth.VerifyRegistration(c.Request.Context(), ref, req.OTP)
	if err != nil {
		writeError(c, "verify registration", err)
		return
	}
	h.jar.Clear(c, cookie.RegistrationRef)
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.UserStatusRes{
		Status:  dto.StatusSuccess,
		Message: "Registration complete. Please wait for an administrator to approve your account.",
		User:    dto.NewUserRes(user),
	})
}

// ResendRegistrationOTP handles POST /auth/resend-registration-otp.
func (h *AuthHandler) ResendRegistrationOTP(c *gin.Context) {
	ref, _ := c.Cookie(cookie.RegistrationRef)
	if err := h.auth.ResendRegistrationOTP(c.Request.Context(), ref); err != nil {
		writeError(c, "resend registration otp", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusRes{
		Status:  dto.StatusSuccess,
		Message: "A new OTP has been sent to your email.",
	})
}

// Login handles POST /auth/login.
// - 400 when the identifier is neither an email nor a phone number
// - 401 on wrong credentials or a disabled account
// - 403 while the account waits for approval
// - 200 with the temp_session_id cookie once the OTP is sent
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "login", err)
		return
	}
	ref, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(c, "login", err)
		return
	}
	h.jar.SetPending(c, cookie.LoginRef, ref)
	c.JSON(http.StatusOK, dto.StatusRes{
		Status:  dto.StatusPending,
		Message: "An OTP has been sent to your email or phone.",
	})
}

// VerifyOTP handles POST /auth/verify-otp and issues the session cookie.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.OTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "verify otp", err)
		return
	}
	ref, _ := c.Cookie(cookie.LoginRef)
	session, user, err := h.auth.VerifyOTP(c.Request.Context(), ref, req.OTP, usecase.ClientMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		writeError(c, "verify otp", err)
		return
	}
	h.jar.SetSession(c, session.Token)
	h.jar.Clear(c, cookie.LoginRef)
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.UserStatusRes{
		Status:  dto.StatusSuccess,
		Message: "Login successful",
		User:    dto.NewUserRes(user),
	})
}

// ResendOTP handles POST /auth/resend-otp.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	ref, _ := c.Cookie(cookie.LoginRef)
	if err := h.auth.ResendOTP(c.Request.Context(), ref); err != nil {
		writeError(c, "resend otp", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusRes{
		Status:  dto.StatusSuccess,
		Message: "A new OTP has been sent to your email or phone.",
	})
}

// Logout handles POST /auth/logout. The cookie is cleared even when no session exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(cookie.Session)
	h.jar.Clear(c, cookie.Session)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		writeError(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusRes{Status: dto.StatusSuccess, Message: "Logged out"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	token, _ := c.Cookie(cookie.Session)
	user, err := h.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		writeError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
