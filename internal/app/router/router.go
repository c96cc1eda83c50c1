// Package router builds the gin engine and mounts all routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "auth_backend/internal/feature/auth/transport/handler"
	"auth_backend/internal/feature/auth/transport/middleware"
	"auth_backend/internal/platform/http/handler"
)

// Deps is everything NewRouter mounts.
type Deps struct {
	Auth     *authhandler.AuthHandler
	Admin    *authhandler.AdminHandler
	Sessions middleware.SessionResolver
	Checks   map[string]handler.Check
	// Origins allowed by CORS. Credentials are allowed, so "*" is never used.
	Origins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(d.Origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.Origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	health := handler.Health(d.Checks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	auth := r.Group("/auth")
	{
		// 新規ユーザー登録
		auth.POST("/register", d.Auth.Register)
		auth.POST("/verify-registration", d.Auth.VerifyRegistration)
		auth.POST("/resend-registration-otp", d.Auth.ResendRegistrationOTP)

		// ログイン（OTP 確認後にセッション発行）
		auth.POST("/login", d.Auth.Login)
		auth.POST("/verify-otp", d.Auth.VerifyOTP)
		auth.POST("/resend-otp", d.Auth.ResendOTP)
		auth.POST("/logout", d.Auth.Logout)
		auth.GET("/me", d.Auth.Me)
	}

	// 管理者専用のルート
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin(d.Sessions))
	{
		admin.GET("/pending-users", d.Admin.PendingUsers)
		admin.GET("/all-users", d.Admin.AllUsers)
		admin.POST("/approve-user", d.Admin.ApproveUser)
		admin.DELETE("/delete-user/:id", d.Admin.DeleteUser)
	}

	return r
}
