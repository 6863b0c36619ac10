package models

import "time"

// Health is the body of the liveness endpoint.
type Health struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Version       string    `json:"version"`
	KeyConfigured bool      `json:"key_configured"`
	Timestamp     time.Time `json:"timestamp"`
}
