package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

// SetupRouter registers every route group of the device-local API.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	SyncRoutes(r)
	CatalogRoutes(r)
	FareRoutes(r)
	TicketRoutes(r)
	PositionRoutes(r)

	return r
}
