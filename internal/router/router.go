package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/chirper/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Password *apiHandler.PasswordHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Registration and login
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/registration/check", handlers.Auth.Registration)
	r.POST("/api/v1/auth/registration/code", handlers.Auth.SendRegistrationCode)
	r.GET("/api/v1/auth/registration/activate/{code}", handlers.Auth.ActivateUser)
	r.POST("/api/v1/auth/registration/confirm", handlers.Auth.EndRegistration)

	// Password recovery
	r.POST("/api/v1/auth/forgot/email", handlers.Password.FindEmail)
	r.POST("/api/v1/auth/forgot", handlers.Password.SendPasswordResetCode)
	r.GET("/api/v1/auth/reset/{code}", handlers.Password.FindByResetCode)
	r.POST("/api/v1/auth/reset", handlers.Password.PasswordReset)

	// Protected routes
	r.GET("/api/v1/auth/user", authMiddleware(handlers.Auth.UserByToken))
	r.GET("/api/v1/auth/me", authMiddleware(handlers.Auth.Me))
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.POST("/api/v1/auth/reset/current", authMiddleware(handlers.Password.CurrentPasswordReset))

	return r
}
