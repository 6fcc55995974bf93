package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sofer_terminal/internal/middleware"
	mastersync "sofer_terminal/internal/sync"
)

// RunSync triggers a master-data pull. With a valid session the route list
// is scoped to the logged-in driver and today's date; anonymously the full
// list is pulled. Either way the response carries per-entity counts, or
// zero counts plus the first failure.
func RunSync(c *gin.Context) {
	driverID := middleware.EmployeeID(c)

	svc := mastersync.Service{Client: Remote, Store: Store, DriverID: driverID}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	result := svc.Run(ctx, driverID != 0)
	if result.Error != "" {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health reports the terminal's own liveness plus authority reachability
// for the sync screen.
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	backend := "unreachable"
	if msg, err := Remote.Ping(ctx); err == nil {
		backend = msg
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": backend,
	})
}
