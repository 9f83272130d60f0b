package domain

import "time"

// ChatMessage is one role-tagged message in the raw model context.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the unit of conversational continuity: one uploaded resume,
// one fixed persona, and the dialogue built on top of it.
//
// History[0] is always the persona (system) message. It is composed once at
// creation and never regenerated, even if later turns contradict it.
type Session struct {
	ID            SessionID
	OwnerID       OwnerID
	ResumeContext string // original resume text, verbatim
	Analysis      ResumeAnalysis
	History       []ChatMessage
	LastActiveAt  time.Time
}

// Persona returns the immutable system message of the session.
func (s *Session) Persona() ChatMessage {
	return s.History[0]
}

// Turn is the client-facing projection of one question/answer exchange.
// Distinct from History entries: a Turn never carries the system prompt.
type Turn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	AskedAt   time.Time `json:"asked_at"`
	CodeBlock string    `json:"code_block,omitempty"`
}
