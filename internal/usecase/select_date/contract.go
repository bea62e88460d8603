package select_date

import (
	"context"
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// DraftRepository интерфейс репозитория черновиков
type DraftRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error)
	Update(ctx context.Context, d *domain.BookingDraft) error
	BeginAvailabilityFetch(ctx context.Context, token string) (int64, error)
	CompleteAvailabilityFetch(ctx context.Context, token string, seq int64, slots []domain.BookedSlot, status domain.AvailabilityStatus) (bool, error)
}

// ConsultationAPIClient интерфейс клиента внешнего consultation API
type ConsultationAPIClient interface {
	FetchBookedTimes(ctx context.Context, date string) ([]domain.BookedSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
