// Package api provides the docchat backend client implementation.
package api

// GJSON paths for extracting values from backend responses.
// Fields not listed here are ignored.
const (
	// /api/chat
	PathText = "text"

	// /api/health
	PathMode  = "mode"
	PathModel = "model"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 1 << 20
