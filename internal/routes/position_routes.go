package routes

import (
	"sofer_terminal/internal/controllers"

	"github.com/gin-gonic/gin"
)

func PositionRoutes(r *gin.Engine) {
	position := r.Group("/position")
	{
		position.GET("/current", controllers.CurrentStation)
	}

	r.GET("/ws/position", controllers.PositionFeed)
}
