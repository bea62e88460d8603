package domain

// WizardState represents a step of the consultation booking wizard
type WizardState string

const (
	StatePersonalInfo WizardState = "personal_info"
	StateSkinProfile  WizardState = "skin_profile"
	StateSchedule     WizardState = "schedule"
	StateSubmitted    WizardState = "submitted" // терминальное состояние
)

// Ordinal возвращает номер шага для витрины (1..3), 0 для submitted
func (s WizardState) Ordinal() int {
	switch s {
	case StatePersonalInfo:
		return 1
	case StateSkinProfile:
		return 2
	case StateSchedule:
		return 3
	default:
		return 0
	}
}

// IsTerminal returns true for the submitted state
func (s WizardState) IsTerminal() bool {
	return s == StateSubmitted
}

// WizardEvent событие, двигающее анкету между шагами
type WizardEvent string

const (
	EventNext            WizardEvent = "next"
	EventPrevious        WizardEvent = "previous"
	EventSubmitSucceeded WizardEvent = "submit_succeeded"
)

// wizardTransition одно допустимое ребро машины состояний анкеты
type wizardTransition struct {
	From  WizardState
	Event WizardEvent
	To    WizardState
}

// wizardTransitions явная таблица переходов
// Недопустимые переходы (например, submit с первого шага) непредставимы:
// их просто нет в таблице
var wizardTransitions = []wizardTransition{
	{From: StatePersonalInfo, Event: EventNext, To: StateSkinProfile},
	{From: StateSkinProfile, Event: EventNext, To: StateSchedule},
	{From: StateSkinProfile, Event: EventPrevious, To: StatePersonalInfo},
	{From: StateSchedule, Event: EventPrevious, To: StateSkinProfile},
	{From: StateSchedule, Event: EventSubmitSucceeded, To: StateSubmitted},
}

// NextWizardState возвращает состояние после события
// Второе значение false, если переход не разрешён таблицей
func NextWizardState(from WizardState, event WizardEvent) (WizardState, bool) {
	for _, t := range wizardTransitions {
		if t.From == from && t.Event == event {
			return t.To, true
		}
	}
	return from, false
}

// CanTransition проверяет, разрешён ли переход
func CanTransition(from WizardState, event WizardEvent) bool {
	_, ok := NextWizardState(from, event)
	return ok
}
