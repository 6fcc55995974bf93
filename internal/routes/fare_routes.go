package routes

import (
	"sofer_terminal/internal/controllers"

	"github.com/gin-gonic/gin"
)

func FareRoutes(r *gin.Engine) {
	fares := r.Group("/fares")
	{
		fares.GET("/quote", controllers.QuoteFare)
	}
}
