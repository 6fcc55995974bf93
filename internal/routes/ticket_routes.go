package routes

import (
	"sofer_terminal/internal/controllers"
	"sofer_terminal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TicketRoutes(r *gin.Engine) {
	tickets := r.Group("/tickets")
	tickets.Use(middleware.RequireAuth())
	{
		tickets.POST("", controllers.CreateTicket)
		tickets.GET("", controllers.ListTickets)
		tickets.GET("/discounts", controllers.ListDiscounts)
		tickets.POST("/:id/synced", controllers.MarkTicketSynced)
		tickets.POST("/:id/failed", controllers.MarkTicketFailed)
		tickets.POST("/:id/retry", controllers.RetryTicket)
	}

	reservations := r.Group("/reservations")
	reservations.Use(middleware.RequireAuth())
	{
		reservations.POST("", controllers.MirrorReservation)
		reservations.GET("", controllers.ListReservations)
		reservations.POST("/:id/board", controllers.BoardReservation)
	}
}
