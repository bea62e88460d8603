package summaries

import "errors"

var (
	// ErrSummaryNotFound возвращается, когда сводка не найдена,
	// уже прочитана или просрочена
	ErrSummaryNotFound = errors.New("booking summary not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
