package submit_booking

import (
	"context"
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/integrations/consultationapi"
)

// DraftRepository интерфейс репозитория черновиков
type DraftRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error)
	Update(ctx context.Context, d *domain.BookingDraft) error
	RefreshBookedSlots(ctx context.Context, token string, slots []domain.BookedSlot) error
}

// SummaryRepository интерфейс репозитория сводок брони
type SummaryRepository interface {
	Create(ctx context.Context, s *domain.BookingSummary) error
}

// ConsultationAPIClient интерфейс клиента внешнего API консультаций
type ConsultationAPIClient interface {
	FetchBookedTimes(ctx context.Context, date string) ([]domain.BookedSlot, error)
	Initiate(ctx context.Context, apiToken string, req *consultationapi.InitiateRequest) (*consultationapi.InitiateResponse, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
