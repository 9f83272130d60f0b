package domain

type SessionID string
type OwnerID string

// Role tags a chat message the way the completion API expects it.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
