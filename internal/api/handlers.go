// Package api exposes the tutoring service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/abhisek/mathtutor/internal/auth"
	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/session"
	"github.com/abhisek/mathtutor/internal/store"
)

// Handlers holds the request handlers and their dependencies.
type Handlers struct {
	sessions    *session.Service
	users       *store.UserRepo
	records     *store.SessionRepo
	tokens      *auth.Service
	defaultLang i18n.Language
}

// NewHandlers wires the handler set.
func NewHandlers(sessions *session.Service, users *store.UserRepo, records *store.SessionRepo, tokens *auth.Service, defaultLang i18n.Language) *Handlers {
	return &Handlers{
		sessions:    sessions,
		users:       users,
		records:     records,
		tokens:      tokens,
		defaultLang: defaultLang,
	}
}

// language resolves the response language for an authenticated request
// from the user's stored preference.
func (h *Handlers) language(r *http.Request) i18n.Language {
	claims := auth.ClaimsFromContext(r.Context())
	if claims != nil {
		if u, err := h.users.ByID(r.Context(), claims.Sub); err == nil {
			return u.PreferredLanguage
		}
	}
	return h.defaultLang
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

type authResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Language string `json:"language"`
}

// Register creates a user account and returns a session token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	lang := h.defaultLang
	var req registerRequest
	if err := decode(r, &req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrMissingFields})
		return
	}
	if req.Language != "" && !i18n.Known(req.Language) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrInvalidLanguage})
		return
	}
	userLang := lang
	if req.Language != "" {
		userLang = i18n.Language(req.Language)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, lang, err)
		return
	}
	u := &store.User{
		Username:          req.Username,
		Email:             req.Email,
		PasswordHash:      hash,
		PreferredLanguage: userLang,
	}
	if err := h.users.Create(r.Context(), u); err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: i18n.T(userLang).ErrInternal})
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		writeError(w, userLang, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Language: string(u.PreferredLanguage),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and returns a session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	lang := h.defaultLang
	var req loginRequest
	if err := decode(r, &req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrMissingFields})
		return
	}

	u, err := h.users.ByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !auth.CheckPassword(u.PasswordHash, req.Password)) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: i18n.T(lang).ErrUnauthorized})
		return
	}
	if err != nil {
		writeError(w, lang, err)
		return
	}

	// Stamp records left open by an earlier process. A live session keeps
	// its record: it is still being updated in memory.
	if _, ok := h.sessions.Stats(u.ID); !ok {
		if _, err := h.records.EndOpen(r.Context(), u.ID, time.Now()); err != nil {
			writeError(w, u.PreferredLanguage, err)
			return
		}
	}

	token, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		writeError(w, u.PreferredLanguage, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Language: string(u.PreferredLanguage),
	})
}

type subjectEntry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Subjects returns the subject catalog translated to the lang query
// parameter, defaulting to English.
func (h *Handlers) Subjects(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Parse(r.URL.Query().Get("lang"))
	out := make([]subjectEntry, 0, len(drill.Subjects()))
	for _, s := range drill.Subjects() {
		info := i18n.Subject(lang, string(s))
		out = append(out, subjectEntry{Key: string(s), Name: info.Name, Icon: s.Icon(), Description: info.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": out})
}

type newDrillRequest struct {
	Subject  string `json:"subject"`
	Language string `json:"language"`
}

// NewDrill starts a drill in the requested subject.
func (h *Handlers) NewDrill(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	var req newDrillRequest
	if err := decode(r, &req); err != nil || req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrMissingFields})
		return
	}
	if req.Language != "" {
		if !i18n.Known(req.Language) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrInvalidLanguage})
			return
		}
		lang = i18n.Language(req.Language)
	}

	subject, err := drill.ParseSubject(req.Subject)
	if err != nil {
		writeError(w, lang, err)
		return
	}

	userID := auth.ClaimsFromContext(r.Context()).Sub
	res, err := h.sessions.StartDrill(r.Context(), userID, subject, lang)
	if err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat relays a help message about the active drill.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	var req chatRequest
	if err := decode(r, &req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrMissingFields})
		return
	}

	userID := auth.ClaimsFromContext(r.Context()).Sub
	before, _ := h.sessions.Stats(userID)
	res, err := h.sessions.Chat(r.Context(), userID, req.Message)
	if err != nil {
		writeError(w, lang, err)
		return
	}
	if delta := res.Stats.Score - before.Score; delta > 0 {
		if err := h.users.AddScore(r.Context(), userID, delta); err != nil {
			writeError(w, lang, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// Answer submits an answer for the active drill. A correct answer also
// adds the score delta to the user's lifetime total.
func (h *Handlers) Answer(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	var req answerRequest
	if err := decode(r, &req); err != nil || req.Answer == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrMissingFields})
		return
	}

	userID := auth.ClaimsFromContext(r.Context()).Sub
	before, _ := h.sessions.Stats(userID)
	res, err := h.sessions.CheckAnswer(r.Context(), userID, req.Answer)
	if err != nil {
		writeError(w, lang, err)
		return
	}
	if delta := res.Stats.Score - before.Score; delta > 0 {
		if err := h.users.AddScore(r.Context(), userID, delta); err != nil {
			writeError(w, lang, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// Stats returns the live session snapshot plus the user's lifetime score
// and session history.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	userID := auth.ClaimsFromContext(r.Context()).Sub

	live, _ := h.sessions.Stats(userID)

	u, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		writeError(w, lang, err)
		return
	}
	history, err := h.records.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, lang, err)
		return
	}

	type recordEntry struct {
		Subject   string `json:"subject"`
		Attempted int    `json:"problems_attempted"`
		Solved    int    `json:"problems_solved"`
		Hints     int    `json:"hints_used"`
		Score     int    `json:"score"`
		Closed    bool   `json:"closed"`
	}
	recs := make([]recordEntry, 0, len(history))
	for _, rec := range history {
		recs = append(recs, recordEntry{
			Subject:   rec.Subject,
			Attempted: rec.ProblemsAttempted,
			Solved:    rec.ProblemsSolved,
			Hints:     rec.HintsUsed,
			Score:     rec.Score,
			Closed:    rec.EndTime != nil,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session":     live,
		"total_score": u.TotalScore,
		"history":     recs,
	})
}

// EndSession closes the live session and returns its final stats.
func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	userID := auth.ClaimsFromContext(r.Context()).Sub
	stats, ok := h.sessions.End(r.Context(), userID)
	writeJSON(w, http.StatusOK, map[string]any{"ended": ok, "stats": stats})
}

type languageRequest struct {
	Language string `json:"language"`
}

// SetLanguage updates the user's preferred response language.
func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	var req languageRequest
	if err := decode(r, &req); err != nil || req.Language == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrMissingFields})
		return
	}
	if !i18n.Known(req.Language) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: i18n.T(lang).ErrInvalidLanguage})
		return
	}
	next := i18n.Language(req.Language)

	userID := auth.ClaimsFromContext(r.Context()).Sub
	if err := h.users.UpdateLanguage(r.Context(), userID, next); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": string(next)})
}
