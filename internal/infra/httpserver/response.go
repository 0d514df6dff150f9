package httpserver

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Meta struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
}

const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeDecodeFailed     = "DECODE_FAILED"
	ErrCodeAnalysisFailed   = "ANALYSIS_FAILED"
	ErrCodeAIQuotaExceeded  = "AI_QUOTA_EXCEEDED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

type startKey struct{}

func startedAt(r *http.Request) time.Time {
	if t, ok := r.Context().Value(startKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func meta(r *http.Request) *Meta {
	return &Meta{
		RequestID:  logging.RequestIDFromContext(r.Context()),
		Timestamp:  time.Now().UTC(),
		DurationMs: time.Since(startedAt(r)).Milliseconds(),
	}
}

// writeJSON never fails the handler: headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("encode response failed")
	}
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) error {
	writeJSON(w, r, status, Response{Success: true, Data: data, Meta: meta(r)})
	return nil
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	m := meta(r)
	writeJSON(w, r, status, Response{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: m.RequestID,
		},
		Meta: m,
	})
}
