package advance_step

import "github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"

// Request модель запроса на переход к следующему шагу анкеты
type Request struct {
	Token string // токен сессии анкеты
}

// Response результат попытки перехода
// Advanced == false означает, что шаг не пройден: состояние не изменилось,
// StepError содержит единственное грубое сообщение для баннера шага
type Response struct {
	State       domain.WizardState
	StepOrdinal int
	Advanced    bool
	StepError   string
}
