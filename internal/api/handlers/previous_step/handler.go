package previous_step

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
	msgSubmitted    = "booking has already been submitted"
	msgFirstStep    = "this is the first step"
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

// Handle POST /api/v1/consultations/drafts/{token}/previous
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("POST /consultations/drafts/{token}/previous - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	draft, err := h.service.Previous(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /consultations/drafts/{token}/previous - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrDraftExpired):
			h.logger.Warn("POST /consultations/drafts/{token}/previous - Draft expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, drafts.ErrAlreadySubmitted):
			h.logger.Warn("POST /consultations/drafts/{token}/previous - Draft already submitted: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgSubmitted})

		case errors.Is(err, drafts.ErrNoPreviousStep):
			h.logger.Warn("POST /consultations/drafts/{token}/previous - Already at first step: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgFirstStep})

		default:
			h.logger.Error("POST /consultations/drafts/{token}/previous - Failed to move back: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, draft)
}
