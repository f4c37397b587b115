package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Chun-Lin-Huang/class/internal/handlers"
	"github.com/Chun-Lin-Huang/class/internal/middleware"
)

func AuthRoutes(r *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}
