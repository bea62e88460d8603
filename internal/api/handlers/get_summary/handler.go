package get_summary

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/summaries"
)

const (
	msgMissingToken = "missing draft token"
	msgNotFound     = "booking summary not found"
)

type Handler struct {
	service SummaryService
	logger  Logger
}

func NewHandler(service SummaryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultations/summary/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("GET /consultations/summary/{token} - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	summary, err := h.service.Consume(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, summaries.ErrSummaryNotFound):
			h.logger.Warn("GET /consultations/summary/{token} - Summary not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /consultations/summary/{token} - Failed to consume summary: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations/summary/{token} - Summary consumed: token=%s", token)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSummary(summary))
}
