package get_summary

import (
	"context"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

type SummaryService interface {
	Consume(ctx context.Context, token string) (*domain.BookingSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
