package main

import (
	"context"
	"log"
	"net/http"
	"time"

	logrus "github.com/sirupsen/logrus"

	"sofer_terminal/internal/config"
	"sofer_terminal/internal/controllers"
	"sofer_terminal/internal/logger"
	"sofer_terminal/internal/middleware"
	"sofer_terminal/internal/remote"
	"sofer_terminal/internal/routes"
	"sofer_terminal/internal/store"
	mastersync "sofer_terminal/internal/sync"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	// Open the on-device replica database
	config.InitDB()
	replica := store.New(config.GetDB())

	// One explicit client for the remote authority, owned here and handed
	// to whatever needs it.
	client := remote.NewClient(config.BackendBaseURL(), &http.Client{Timeout: config.HTTPTimeout()})

	controllers.Init(replica, client)

	// Best-effort initial sync so the terminal has fresh master data
	// before the driver logs in. Failure is fine; the driver can retry
	// from the sync screen, and yesterday's replica still works.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		result := mastersync.New(client, replica).Run(ctx, false)
		if result.Error != "" {
			logrus.WithField("error", result.Error).Warn("initial sync failed, serving cached master data")
		}
	}()

	r := routes.SetupRouter()

	// Wrap with CORS for the UI shell
	handler := middleware.EnableCORS(r)

	addr := config.ListenAddr()
	log.Printf("driver terminal API listening at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
