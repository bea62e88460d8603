package summaries

import (
	"context"
	"errors"
	"fmt"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	summaryRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/summary"
)

// Service сервис сводок брони для страницы успеха
// Сводка читается ровно один раз: повторный запрос вернёт "не найдено"
type Service struct {
	summaryRepo  SummaryRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сводок
func NewService(summaryRepo SummaryRepository, logger Logger) *Service {
	return &Service{
		summaryRepo:  summaryRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Consume читает и удаляет сводку брони (read-once)
func (s *Service) Consume(ctx context.Context, token string) (*domain.BookingSummary, error) {
	summary, err := s.summaryRepo.Consume(ctx, token, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, summaryRepo.ErrSummaryNotFound) {
			s.logger.Warn("Consume: summary token=%s not found", token)
			return nil, ErrSummaryNotFound
		}
		s.logger.Error("Consume: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: Consume - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Consume: summary token=%s consumed", token)
	return summary, nil
}

// PurgeExpired удаляет просроченные сводки, возвращает количество удалённых
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.summaryRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - repository error: %v", ErrInternal, err)
	}
	return count, nil
}
