// Package models contains data types and constants for the docchat backend API.
package models

// Endpoint paths, relative to the configured base URL
const (
	PathChat   = "/api/chat"
	PathHealth = "/api/health"
)

// FallbackText is shown in place of a reply whenever the chat call fails
const FallbackText = "Sorry, I encountered an error. Please try again."

// DefaultHeaders returns headers sent with every backend request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "docchat/1.0",
	}
}

// DefaultQuickQuestions are the preset questions offered on an empty chat
func DefaultQuickQuestions() []string {
	return []string{
		"How do I search for hotels?",
		"How do I cancel a booking?",
		"What does error 4004 mean?",
		"How do I get started with the API?",
	}
}
