// Package router assembles the HTTP route table.
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	authhandler "penduduk_backend/internal/feature/auth/transport/handler"
	residenthandler "penduduk_backend/internal/feature/residents/transport/handler"
	"penduduk_backend/internal/platform/http/handler"
	"penduduk_backend/internal/platform/http/middleware"
	jwtmw "penduduk_backend/internal/platform/jwt"
	"penduduk_backend/internal/shared/ratelimiter"
)

// NewRouter builds the Gin engine with all application routes.
func NewRouter(authHandler *authhandler.AuthHandler, residents *residenthandler.ResidentHandler) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// No authentication required
	r.GET("/health-check", handler.Health)

	// Credential endpoints are rate limited against brute force.
	loginLimiter := ratelimiter.NewRateLimiter(30, time.Minute)
	r.POST("/signup", loginLimiter.Middleware(), authHandler.Signup)
	r.POST("/login", loginLimiter.Middleware(), authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)
	r.POST("/logout", authHandler.Logout)

	// Authenticated routes: the JWT middleware places the actor's identity
	// and admin capability into the request context.
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/residents", residents.List)
		auth.GET("/residents/new", residents.New)
		auth.POST("/residents", residents.Store)
		auth.GET("/residents/:id", residents.Show)
		auth.GET("/residents/:id/edit", residents.Edit)
		auth.PUT("/residents/:id", residents.Update)
		auth.DELETE("/residents/:id", residents.Destroy)
	}

	return r
}
