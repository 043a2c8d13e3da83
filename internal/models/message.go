package models

// Role distinguishes who authored a message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message represents a chat message for display
type Message struct {
	Text   string
	IsUser bool
}

// Role returns the role class of the message
func (m Message) Role() Role {
	if m.IsUser {
		return RoleUser
	}
	return RoleBot
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the part of the /api/chat reply docchat reads
type ChatResponse struct {
	Text string
}
