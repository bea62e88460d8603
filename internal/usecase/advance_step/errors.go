package advance_step

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("advance_step: draft not found")

	// ErrDraftExpired возвращается, когда срок жизни черновика истёк
	ErrDraftExpired = errors.New("advance_step: draft expired")

	// ErrAlreadySubmitted возвращается при попытке двигать уже отправленную анкету
	ErrAlreadySubmitted = errors.New("advance_step: draft already submitted")

	// ErrNoForwardTransition возвращается, когда из текущего состояния нет перехода вперёд
	ErrNoForwardTransition = errors.New("advance_step: no forward transition from this state")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("advance_step: internal error")
)
