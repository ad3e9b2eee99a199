// Package api holds the response envelopes every handler shares.
package api

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

// StatusResponse reports the outcome of a destructive admin action.
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"User deleted successfully"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
