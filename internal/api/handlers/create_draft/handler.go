package create_draft

import (
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
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

// Handle POST /api/v1/consultations/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Create(r.Context())
	if err != nil {
		h.logger.Error("POST /consultations/drafts - Failed to create draft: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /consultations/drafts - Draft created: token=%s", draft.Token)
	handlers.RespondJSON(w, http.StatusCreated, draft)
}
