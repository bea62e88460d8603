package summary

import "errors"

var (
	// ErrSummaryNotFound возвращается, когда сводка не найдена или уже прочитана
	ErrSummaryNotFound = errors.New("summary.repository: summary not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("summary.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("summary.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("summary.repository: failed to scan row")
)
