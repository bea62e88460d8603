package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("draft not found")

	// ErrDraftExpired возвращается, когда срок жизни черновика истёк
	ErrDraftExpired = errors.New("draft expired")

	// ErrAlreadySubmitted возвращается при попытке изменить отправленную анкету
	ErrAlreadySubmitted = errors.New("draft already submitted")

	// ErrWrongStep возвращается, когда поле не относится к текущему шагу мастера
	ErrWrongStep = errors.New("field does not belong to the current step")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotUnavailable возвращается при выборе слота без свежего списка занятых слотов
	ErrSlotUnavailable = errors.New("slot availability is not known")

	// ErrSlotTaken возвращается при выборе занятого слота
	ErrSlotTaken = errors.New("time slot is already booked")

	// ErrNoPreviousStep возвращается при попытке шагнуть назад с первого шага
	ErrNoPreviousStep = errors.New("no previous step")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
