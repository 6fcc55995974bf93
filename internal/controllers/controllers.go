// Package controllers is the device-local HTTP surface the UI shell talks
// to. Handlers stay thin and delegate to the core packages.
package controllers

import (
	"sofer_terminal/internal/geofence"
	"sofer_terminal/internal/pricing"
	"sofer_terminal/internal/remote"
	"sofer_terminal/internal/store"
	"sofer_terminal/internal/tickets"
)

// Shared handler dependencies, wired once by the shell at startup. The
// remote client is the one the shell constructed; nothing here reaches for
// a global network instance.
var (
	Store    *store.Store
	Remote   *remote.Client
	Fares    *pricing.Resolver
	Stations *geofence.Resolver
	Tickets  *tickets.Manager
)

// Init wires the handler dependencies.
func Init(st *store.Store, client *remote.Client) {
	Store = st
	Remote = client
	Fares = pricing.NewResolver(st)
	Stations = geofence.NewResolver(st)
	Tickets = tickets.NewManager(st)
}
