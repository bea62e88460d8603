package advance_step

import (
	"errors"
	"net/http"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	advanceStep "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/advance_step"
)

const (
	msgMissingToken = "missing draft token"
	msgNotFound     = "draft not found"
	msgExpired      = "draft has expired, please start over"
	msgSubmitted    = "booking has already been submitted"
	msgNoForward    = "the final step is completed by submitting the booking"
)

type Handler struct {
	useCase AdvanceStepUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceStepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations/drafts/{token}/next
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetDraftToken(r.Context())
	if !ok {
		h.logger.Warn("POST /consultations/drafts/{token}/next - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &advanceStep.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, advanceStep.ErrDraftNotFound):
			h.logger.Warn("POST /consultations/drafts/{token}/next - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, advanceStep.ErrDraftExpired):
			h.logger.Warn("POST /consultations/drafts/{token}/next - Draft expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, advanceStep.ErrAlreadySubmitted):
			h.logger.Warn("POST /consultations/drafts/{token}/next - Draft already submitted: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgSubmitted})

		case errors.Is(err, advanceStep.ErrNoForwardTransition):
			h.logger.Warn("POST /consultations/drafts/{token}/next - No forward transition: token=%s", token)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgNoForward})

		default:
			h.logger.Error("POST /consultations/drafts/{token}/next - Failed to advance: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
