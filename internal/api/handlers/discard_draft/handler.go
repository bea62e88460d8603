package discard_draft

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts"
)

const msgMissingToken = "missing draft token"

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

// Handle DELETE /api/v1/consultations/drafts/{token}
// Идемпотентный: удаление несуществующего черновика тоже 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("DELETE /consultations/drafts/{token} - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	if err := h.service.Discard(r.Context(), token); err != nil {
		if !errors.Is(err, drafts.ErrDraftNotFound) {
			h.logger.Error("DELETE /consultations/drafts/{token} - Failed to discard draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
