package select_date

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("select_date: draft not found")

	// ErrDraftExpired возвращается, когда срок жизни черновика истёк
	ErrDraftExpired = errors.New("select_date: draft expired")

	// ErrWrongState возвращается, когда анкета не на шаге расписания
	ErrWrongState = errors.New("select_date: draft is not at the schedule step")

	// ErrWeekendDate возвращается при выборе субботы или воскресенья
	// Дата и выбранный слот при этом сбрасываются, запрос занятых слотов не делается
	ErrWeekendDate = errors.New("select_date: weekends are not bookable")

	// ErrDateNotFuture возвращается, когда дата не строго в будущем
	ErrDateNotFuture = errors.New("select_date: date must be a future weekday")

	// ErrAvailabilityUnavailable возвращается, когда запрос занятых слотов упал
	// Выбор слота блокируется до успешного повтора (fail-closed)
	ErrAvailabilityUnavailable = errors.New("select_date: booked slots are unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_date: internal error")
)
