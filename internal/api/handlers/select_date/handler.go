package select_date

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	selectDate "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/select_date"
)

const (
	msgMissingToken  = "missing draft token"
	msgInvalidBody   = "invalid request body"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgNotFound      = "draft not found"
	msgExpired       = "draft has expired, please start over"
	msgWrongState    = "date can only be selected at the schedule step"
	msgWeekend       = "consultations are not available on weekends"
	msgNotFuture     = "please pick a date after today"
	msgUpstreamError = "could not load booked slots, please try again"
)

type Handler struct {
	useCase SelectDateUseCase
	logger  Logger
}

func NewHandler(useCase SelectDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/consultations/drafts/{token}/date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("PUT /consultations/drafts/{token}/date - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultations/drafts/{token}/date - Invalid request body: token=%s, error=%v", token, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(token)
	if err != nil {
		h.logger.Warn("PUT /consultations/drafts/{token}/date - Invalid date=%q: token=%s", req.Date, token)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, selectDate.ErrDraftNotFound):
			h.logger.Warn("PUT /consultations/drafts/{token}/date - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, selectDate.ErrDraftExpired):
			h.logger.Warn("PUT /consultations/drafts/{token}/date - Draft expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, selectDate.ErrWrongState):
			h.logger.Warn("PUT /consultations/drafts/{token}/date - Wrong state: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgWrongState})

		case errors.Is(err, selectDate.ErrWeekendDate):
			h.logger.Warn("PUT /consultations/drafts/{token}/date - Weekend date=%s: token=%s", req.Date, token)
			handlers.RespondBadRequest(w, msgWeekend)

		case errors.Is(err, selectDate.ErrDateNotFuture):
			h.logger.Warn("PUT /consultations/drafts/{token}/date - Non-future date=%s: token=%s", req.Date, token)
			handlers.RespondBadRequest(w, msgNotFuture)

		case errors.Is(err, selectDate.ErrAvailabilityUnavailable):
			h.logger.Error("PUT /consultations/drafts/{token}/date - Upstream failure: token=%s, error=%v", token, err)
			handlers.RespondBadGateway(w, msgUpstreamError)

		default:
			h.logger.Error("PUT /consultations/drafts/{token}/date - Failed to select date: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultations/drafts/{token}/date - Date selected: token=%s, date=%s, booked=%d",
		token, result.Date, len(result.BookedSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
