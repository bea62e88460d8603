package advance_step

import (
	advanceStep "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/advance_step"
)

// AdvanceStepResponse HTTP response model
// Advanced == false означает, что гейт шага не пройден: состояние не изменилось,
// stepError содержит сообщение для баннера шага
type AdvanceStepResponse struct {
	State       string `json:"state"`
	StepOrdinal int    `json:"stepOrdinal"`
	Advanced    bool   `json:"advanced"`
	StepError   string `json:"stepError,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *advanceStep.Response) *AdvanceStepResponse {
	return &AdvanceStepResponse{
		State:       string(resp.State),
		StepOrdinal: resp.StepOrdinal,
		Advanced:    resp.Advanced,
		StepError:   resp.StepError,
	}
}
