package get_draft

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts"
)

const (
	msgMissingToken = "missing draft token"
	msgNotFound     = "draft not found"
	msgExpired      = "draft has expired, please start over"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultations/drafts/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("GET /consultations/drafts/{token} - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	draft, err := h.service.Get(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("GET /consultations/drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrDraftExpired):
			h.logger.Warn("GET /consultations/drafts/{token} - Draft expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		default:
			h.logger.Error("GET /consultations/drafts/{token} - Failed to get draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, draft)
}
