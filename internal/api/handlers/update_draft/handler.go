package update_draft

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts/models"
)

const (
	msgMissingToken    = "missing draft token"
	msgInvalidBody     = "invalid request body"
	msgNotFound        = "draft not found"
	msgExpired         = "draft has expired, please start over"
	msgSubmitted       = "booking has already been submitted"
	msgWrongStep       = "these fields do not belong to the current step"
	msgInvalidInput    = "invalid input data"
	msgSlotUnavailable = "slot availability is not known yet, please re-select the date"
	msgSlotTaken       = "this time slot has just been booked, please pick another one"
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

// Handle PATCH /api/v1/consultations/drafts/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("PATCH /consultations/drafts/{token} - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	var req models.UpdateStepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /consultations/drafts/{token} - Invalid request body: token=%s, error=%v", token, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	draft, err := h.service.UpdateStep(r.Context(), token, &req)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrDraftExpired):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Draft expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, drafts.ErrAlreadySubmitted):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Draft already submitted: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgSubmitted})

		case errors.Is(err, drafts.ErrWrongStep):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Wrong step fields: token=%s", token)
			handlers.RespondBadRequest(w, msgWrongStep)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Invalid input: token=%s, error=%v", token, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, drafts.ErrSlotUnavailable):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Slot availability unknown: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgSlotUnavailable})

		case errors.Is(err, drafts.ErrSlotTaken):
			h.logger.Warn("PATCH /consultations/drafts/{token} - Slot already booked: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgSlotTaken})

		default:
			h.logger.Error("PATCH /consultations/drafts/{token} - Failed to update draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, draft)
}
