package routes

import (
	"sofer_terminal/internal/controllers"
	"sofer_terminal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CatalogRoutes(r *gin.Engine) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("/routes", controllers.ListRoutes)
		catalog.GET("/routes/:id/stations", controllers.ListStationsForRoute)
		catalog.GET("/operators", controllers.ListOperators)
		catalog.GET("/vehicles", controllers.ListVehicles)
	}

	trips := r.Group("/trips")
	trips.Use(middleware.RequireAuth())
	{
		trips.GET("", controllers.ListTrips)
		trips.POST("/validate-start", controllers.ValidateTripStart)
	}
}
