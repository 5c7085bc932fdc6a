package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/poetry-api/internal/platform/logger"
	"github.com/phrazzld/poetry-api/internal/redact"
)

// ProblemContentType is the media type of RFC 7807 problem details.
const ProblemContentType = "application/problem+json"

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
	TraceID  string `json:"trace_id,omitempty"`
}

// NewProblemDetail builds the problem detail for status and detail message.
func NewProblemDetail(r *http.Request, status int, detail string) ProblemDetail {
	return ProblemDetail{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
		TraceID:  GetTraceID(r.Context()),
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeJSON(w, r, "application/json", status, data)
}

// RespondWithProblem writes a problem detail response without logging the cause.
func RespondWithProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, ProblemContentType, status, NewProblemDetail(r, status, detail))
}

// RespondWithProblemAndLog writes a problem detail response and logs the detailed error.
// The client only ever sees detail; the redacted error goes to the logs.
//
// Log level strategy:
// - 5xx errors: ERROR
// - everything else: DEBUG
func RespondWithProblemAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	detail string,
	err error,
) {
	problem := NewProblemDetail(r, status, detail)

	logAttrs := []slog.Attr{
		slog.String("trace_id", problem.TraceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("detail", detail),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	log := logger.FromContextOrDefault(r.Context(), nil)
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeJSON(w, r, ProblemContentType, status, problem)
}

func writeJSON(w http.ResponseWriter, r *http.Request, contentType string, status int, data interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), nil).
			ErrorContext(r.Context(), "failed to encode JSON response", "error", err)
	}
}
