package routes

import (
	"sofer_terminal/internal/controllers"
	"sofer_terminal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SyncRoutes(r *gin.Engine) {
	// Sync runs before login too; a session only narrows the route pull.
	r.POST("/sync", middleware.OptionalAuth(), controllers.RunSync)
	r.GET("/health", controllers.Health)
}
