package drafts

import (
	"context"
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// DraftRepository интерфейс репозитория черновиков
type DraftRepository interface {
	Create(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error)
	GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error)
	Update(ctx context.Context, d *domain.BookingDraft) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenGenerator интерфейс генератора токенов сессии черновика
type TokenGenerator interface {
	NewToken() string
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
