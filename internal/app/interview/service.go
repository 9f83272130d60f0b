// Package interview holds the conversation orchestrator: it turns an
// uploaded resume into a persona session and answers interview questions
// in-character, with single-shot context-overflow recovery.
package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-agent/internal/domain"
	"interview-agent/internal/observability"
	"interview-agent/internal/persona"
)

const defaultModelTimeout = 30 * time.Second

var errEmptyReply = errors.New("model returned an empty response")

const greeting = "Thanks for sharing your resume. I'm ready when you are, ask me anything."

// askOptions are the sampling parameters for every interview turn. The high
// temperature keeps the persona's answers varied between turns.
var askOptions = domain.CompletionOptions{
	Temperature:      0.9,
	MaxOutputTokens:  350,
	PresencePenalty:  0.7,
	FrequencyPenalty: 0.5,
}

type Service struct {
	llm          domain.LLMClient
	sessions     domain.SessionStore
	transcripts  domain.TranscriptStore
	flavorer     *persona.Flavorer
	modelTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// NewService wires the orchestrator. flavorer may be nil, in which case
// model answers are returned untouched. modelTimeout <= 0 uses the default.
func NewService(
	llm domain.LLMClient,
	sessions domain.SessionStore,
	transcripts domain.TranscriptStore,
	flavorer *persona.Flavorer,
	modelTimeout time.Duration,
) *Service {
	if modelTimeout <= 0 {
		modelTimeout = defaultModelTimeout
	}

	return &Service{
		llm:          llm,
		sessions:     sessions,
		transcripts:  transcripts,
		flavorer:     flavorer,
		modelTimeout: modelTimeout,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type StartInput struct {
	OwnerID    domain.OwnerID
	ResumeText string
}

type StartOutput struct {
	Session  *domain.Session
	Greeting string
}

// StartInterview analyzes the resume, composes the persona prompt and
// creates the session. The persona becomes History[0] and is never
// regenerated for the lifetime of the session.
func (s *Service) StartInterview(ctx context.Context, in StartInput) (*StartOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"owner_id", in.OwnerID,
	)

	if strings.TrimSpace(in.ResumeText) == "" {
		return nil, domain.ErrInvalidResume
	}

	analysis := persona.Analyze(in.ResumeText)
	prompt := persona.ComposeSystemPrompt(analysis)

	session := &domain.Session{
		ID:            domain.SessionID(s.newID()),
		OwnerID:       in.OwnerID,
		ResumeContext: in.ResumeText,
		Analysis:      analysis,
		History: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: prompt},
		},
		LastActiveAt: s.now(),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	log.Info("interview session started",
		"session_id", session.ID,
		"keywords", len(analysis.Keywords),
		"style", persona.StyleDirective(analysis.Traits))

	return &StartOutput{
		Session:  session,
		Greeting: greeting,
	}, nil
}

type AskInput struct {
	SessionID domain.SessionID
	OwnerID   domain.OwnerID
	Question  string
	CodeBlock string
}

type AskOutput struct {
	Answer string
}

// Ask runs one interview turn: load the session, invoke the model with the
// accumulated history, recover once from a context-window overflow by
// dropping everything but the persona and the current question, then
// persist exactly the message set that was sent. Nothing is persisted when
// the model fails, so a dropped request leaves the session unchanged.
func (s *Service) Ask(ctx context.Context, in AskInput) (*AskOutput, error) {
	session, err := s.sessions.GetSession(ctx, in.SessionID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", session.ID,
		"owner_id", session.OwnerID,
	)

	userMsg := domain.ChatMessage{Role: domain.RoleUser, Content: in.Question}

	messages := make([]domain.ChatMessage, 0, len(session.History)+1)
	messages = append(messages, session.History...)
	messages = append(messages, userMsg)

	start := time.Now()
	content, err := s.complete(ctx, messages)
	truncated := false

	if domain.IsContextLengthExceeded(err) {
		// Retry exactly once with only the persona and the current
		// question. The persona is never truncated, the dialogue is.
		log.Warn("context window exceeded, retrying with truncated history",
			"history_len", len(messages))
		messages = []domain.ChatMessage{session.Persona(), userMsg}
		content, err = s.complete(ctx, messages)
		truncated = true
	}
	if err != nil {
		log.Error("model invocation failed", "error", err, "truncated", truncated)
		return nil, err
	}

	answer := s.flavorer.Apply(content, session.Analysis.Traits)
	assistantMsg := domain.ChatMessage{Role: domain.RoleAssistant, Content: answer}

	// Persist the message set actually sent: after a truncating retry the
	// session continues from the reduced history, preventing repeated
	// overflow on the next turn.
	if truncated {
		err = s.sessions.ReplaceHistory(ctx, session.ID, append(messages, assistantMsg))
	} else {
		err = s.sessions.AppendTurn(ctx, session.ID, userMsg, assistantMsg)
	}
	if err != nil {
		log.Error("failed to persist turn", "error", err)
		return nil, err
	}

	turn := domain.Turn{
		Question:  in.Question,
		Answer:    answer,
		AskedAt:   s.now(),
		CodeBlock: in.CodeBlock,
	}
	if err := s.transcripts.AppendTurnRecord(ctx, session.ID, turn); err != nil {
		// The transcript is a projection of history, not the source of
		// truth; the answer is already committed.
		log.Warn("failed to record transcript turn", "error", err)
	}

	log.Info("turn completed",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"truncated", truncated)

	return &AskOutput{Answer: answer}, nil
}

// complete invokes the model collaborator under the configured timeout and
// normalizes every failure into *domain.ModelError.
func (s *Service) complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	content, err := s.llm.Complete(callCtx, messages, askOptions)
	if err != nil {
		var me *domain.ModelError
		if errors.As(err, &me) {
			return "", err
		}
		return "", &domain.ModelError{Kind: domain.ModelErrOther, Err: err}
	}
	if strings.TrimSpace(content) == "" {
		return "", &domain.ModelError{Kind: domain.ModelErrOther, Err: errEmptyReply}
	}
	return content, nil
}

// Clear truncates the session history back to the persona message and drops
// the recorded transcript. The session id stays valid.
func (s *Service) Clear(ctx context.Context, id domain.SessionID, owner domain.OwnerID) error {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	if err := s.sessions.ClearSession(ctx, id, owner); err != nil {
		return err
	}
	if err := s.transcripts.ClearTurns(ctx, id); err != nil {
		log.Warn("failed to clear transcript", "error", err)
	}

	log.Info("session cleared")
	return nil
}

// GetTranscript returns the last `limit` client-facing turns, after the
// same ownership check every other operation performs.
func (s *Service) GetTranscript(
	ctx context.Context,
	id domain.SessionID,
	owner domain.OwnerID,
	limit int,
) ([]domain.Turn, error) {
	if _, err := s.sessions.GetSession(ctx, id, owner); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.transcripts.GetTurns(ctx, id, limit)
}
