package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/llm"
	"github.com/abhisek/mathtutor/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to a status code and a message
// localized to the request language. Internal detail never leaks to the
// client.
func writeError(w http.ResponseWriter, lang i18n.Language, err error) {
	msgs := i18n.T(lang)

	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrUnavailable
		empty       *llm.ErrEmptyResponse
		missingCred *llm.ErrMissingCredentials
		malformed   *drill.ErrMalformedDrill
	)

	switch {
	case errors.Is(err, drill.ErrUnknownSubject):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgs.ErrInvalidSubject})
	case errors.Is(err, session.ErrNoActiveDrill):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgs.ErrNoActiveDrill})
	case errors.As(err, &rateLimit),
		errors.As(err, &unavailable),
		errors.As(err, &empty),
		errors.As(err, &missingCred),
		errors.As(err, &malformed):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msgs.ErrServiceUnavailable})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgs.ErrInternal})
	}
}
