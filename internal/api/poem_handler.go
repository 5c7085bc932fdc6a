package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/poetry-api/internal/api/shared"
	"github.com/phrazzld/poetry-api/internal/platform/logger"
	"github.com/phrazzld/poetry-api/internal/service"
)

// PoemHandler handles poem-related HTTP requests
type PoemHandler struct {
	poetryService service.PoetryService
	logger        *slog.Logger
}

// NewPoemHandler creates a new PoemHandler
func NewPoemHandler(poetryService service.PoetryService, logger *slog.Logger) *PoemHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PoemHandler{
		poetryService: poetryService,
		logger:        logger.With(slog.String("handler", "poem_handler")),
	}
}

// GeneratePoem handles POST /poems requests
func (h *PoemHandler) GeneratePoem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if log == nil {
		log = h.logger
		r = r.WithContext(logger.WithLogger(r.Context(), log))
	}

	var req PoemRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.DebugContext(r.Context(), "failed to decode poem request", slog.String("error", err.Error()))
		shared.RespondWithProblem(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithProblemAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	poem, err := h.poetryService.GeneratePoem(r.Context(), req.Genre, req.Theme)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, poemToResponse(poem))
}
