package submit_booking

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	submitBooking "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/submit_booking"
)

const (
	msgMissingToken     = "missing draft token"
	msgNotFound         = "draft not found"
	msgExpired          = "draft has expired, please start over"
	msgSubmitted        = "booking has already been submitted"
	msgWrongState       = "please complete all steps before submitting"
	msgValidationFailed = "please correct the highlighted fields"
	msgSlotConflict     = "this time slot has just been booked, please pick another one"
	msgUpstreamError    = "could not verify slot availability, please try again"
	msgPaymentRejected  = "payment could not be initiated"
	msgPaymentDown      = "payment service is unavailable, please try again"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations/drafts/{token}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("POST /consultations/drafts/{token}/submit - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{Token: token})
	if err != nil {
		var verr *submitBooking.ValidationError
		var cerr *submitBooking.ConflictError

		switch {
		case errors.Is(err, submitBooking.ErrDraftNotFound):
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, submitBooking.ErrDraftExpired):
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Draft expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, submitBooking.ErrAlreadySubmitted):
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Already submitted: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgSubmitted})

		case errors.Is(err, submitBooking.ErrWrongState):
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Wrong state: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgWrongState})

		case errors.As(err, &verr):
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Validation failed: token=%s, fields=%d", token, len(verr.Fields))
			handlers.RespondValidationError(w, msgValidationFailed, verr.Fields)

		case errors.As(err, &cerr):
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Slot conflict: token=%s", token)
			handlers.RespondConflict(w, FromConflictError(msgSlotConflict, cerr))

		case errors.Is(err, submitBooking.ErrAvailabilityUnavailable):
			h.logger.Error("POST /consultations/drafts/{token}/submit - Upstream failure: token=%s, error=%v", token, err)
			handlers.RespondBadGateway(w, msgUpstreamError)

		case errors.Is(err, submitBooking.ErrPaymentUnavailable):
			h.logger.Error("POST /consultations/drafts/{token}/submit - Payment service unreachable: token=%s, error=%v", token, err)
			handlers.RespondBadGateway(w, msgPaymentDown)

		case errors.Is(err, submitBooking.ErrPaymentRejected):
			// Внешний API отказал по бизнес-причине, чаще всего слот только что заняли
			h.logger.Warn("POST /consultations/drafts/{token}/submit - Payment rejected: token=%s, error=%v", token, err)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgPaymentRejected})

		default:
			h.logger.Error("POST /consultations/drafts/{token}/submit - Failed to submit: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultations/drafts/{token}/submit - Submitted: token=%s, amount=%.2f", token, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
