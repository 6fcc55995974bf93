package config

import (
	"strconv"
	"time"
)

// BackendBaseURL is the remote authority the synchronizer pulls from.
func BackendBaseURL() string {
	return getEnv("BACKEND_BASE_URL", "http://localhost:5000")
}

// ListenAddr is where the device-local API serves the UI shell.
func ListenAddr() string {
	return getEnv("LISTEN_ADDR", "0.0.0.0:8080")
}

// HTTPTimeout bounds each individual pull against the authority.
func HTTPTimeout() time.Duration {
	secs, err := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "5"))
	if err != nil || secs <= 0 {
		secs = 5
	}
	return time.Duration(secs) * time.Second
}
