package summaries

import (
	"context"
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// SummaryRepository интерфейс репозитория сводок брони
type SummaryRepository interface {
	Consume(ctx context.Context, token string, now time.Time) (*domain.BookingSummary, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс провайдера времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
