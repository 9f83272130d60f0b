package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"interview-agent/internal/app/interview"
	"interview-agent/internal/domain"
)

// The real deployment puts an auth middleware in front of this adapter; it
// resolves the user and forwards the identity in this header. The core
// still re-checks ownership on every session access.
const ownerHeader = "X-User-ID"

var validate = validator.New()

type Server struct {
	svc *interview.Service
}

func NewServer(svc *interview.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /interviews → create session (POST)
	mux.HandleFunc("/interviews", s.handleInterviews)

	// /interviews/{id}            → DELETE: clear session
	// /interviews/{id}/questions  → POST: ask a question
	// /interviews/{id}/transcript → GET: client-facing turn log
	mux.HandleFunc("/interviews/", s.handleInterviewWithID)

	return chainMiddlewares(mux, withRequestID, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createInterviewRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=10,max=50000"`
}

type createInterviewResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

type askRequest struct {
	Question  string `json:"question" validate:"required,max=4000"`
	CodeBlock string `json:"code_block,omitempty" validate:"omitempty,max=20000"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type turnResponse struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	AskedAt   time.Time `json:"asked_at"`
	CodeBlock string    `json:"code_block,omitempty"`
}

type transcriptResponse struct {
	Turns []turnResponse `json:"turns"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInterviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateInterview(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleInterviewWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/interviews/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := domain.SessionID(parts[0])
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodDelete:
			s.handleClearInterview(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 {
		switch {
		case parts[1] == "questions" && r.Method == http.MethodPost:
			s.handleAsk(w, r, id)
			return
		case parts[1] == "transcript" && r.Method == http.MethodGet:
			s.handleTranscript(w, r, id)
			return
		}
	}

	http.NotFound(w, r)
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, "resume_text must be between 10 and 50000 characters")
		return
	}

	out, err := s.svc.StartInterview(r.Context(), interview.StartInput{
		OwnerID:    owner,
		ResumeText: req.ResumeText,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createInterviewResponse{
		SessionID: string(out.Session.ID),
		Greeting:  out.Greeting,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if err := validate.Struct(req); err != nil {
		badRequest(w, "question is required")
		return
	}

	out, err := s.svc.Ask(r.Context(), interview.AskInput{
		SessionID: id,
		OwnerID:   owner,
		Question:  req.Question,
		CodeBlock: req.CodeBlock,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: out.Answer})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	turns, err := s.svc.GetTranscript(r.Context(), id, owner, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := transcriptResponse{Turns: make([]turnResponse, 0, len(turns))}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, turnResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearInterview(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := s.svc.Clear(r.Context(), id, owner); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func requireOwner(w http.ResponseWriter, r *http.Request) (domain.OwnerID, bool) {
	owner := strings.TrimSpace(r.Header.Get(ownerHeader))
	if owner == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "missing user identity",
		})
		return "", false
	}
	return domain.OwnerID(owner), true
}

// writeError maps domain errors onto HTTP statuses. Not-found and not-owner
// share one response on purpose, so callers cannot probe whether a foreign
// session id exists.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidResume):
		badRequest(w, "resume text is empty or invalid")
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrNotOwner):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "session unavailable, please start a new interview",
		})
	default:
		var me *domain.ModelError
		if errors.As(err, &me) {
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error": "the interviewer is unavailable right now, please retry",
			})
			return
		}
		internalError(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
