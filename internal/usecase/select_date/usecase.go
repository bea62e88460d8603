package select_date

import (
	"context"
	"errors"
	"fmt"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
)

// UseCase use case выбора даты консультации
// Выходные отсекаются без обращения к внешнему API, для будних дней
// подтягивается список занятых слотов
type UseCase struct {
	draftRepo    DraftRepository
	apiClient    ConsultationAPIClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(draftRepo DraftRepository, apiClient ConsultationAPIClient, logger Logger) *UseCase {
	return &UseCase{
		draftRepo:    draftRepo,
		apiClient:    apiClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет выбор даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("SelectDate: token=%s, date=%s", req.Token, dateStr)

	// 1. Получаем черновик
	d, err := uc.draftRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			uc.logger.Warn("SelectDate: draft token=%s not found", req.Token)
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("SelectDate: failed to get draft token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем срок жизни и шаг
	if d.IsExpired(now) {
		uc.logger.Warn("SelectDate: draft token=%s expired", req.Token)
		return nil, ErrDraftExpired
	}
	if d.State != domain.StateSchedule {
		uc.logger.Warn("SelectDate: draft token=%s is at state=%s", req.Token, d.State)
		return nil, ErrWrongState
	}

	// 3. Выходной: сбрасываем дату и слот, запрос занятых слотов не делаем
	if domain.IsWeekend(req.Date) {
		uc.logger.Info("SelectDate: weekend date=%s rejected for token=%s", dateStr, req.Token)

		d.Schedule.Clear()
		if err := uc.draftRepo.Update(ctx, d); err != nil {
			uc.logger.Error("SelectDate: failed to clear schedule for token=%s: %v", req.Token, err)
			return nil, fmt.Errorf("%w: failed to update draft: %v", ErrInternal, err)
		}

		return nil, ErrWeekendDate
	}

	// 4. Дата обязана быть строго будущей
	if !domain.IsBookableDate(req.Date, now) {
		uc.logger.Info("SelectDate: non-future date=%s rejected for token=%s", dateStr, req.Token)
		return nil, ErrDateNotFuture
	}

	// 5. Фиксируем дату в черновике
	date := req.Date
	d.Schedule.Date = &date
	if err := uc.draftRepo.Update(ctx, d); err != nil {
		uc.logger.Error("SelectDate: failed to update draft token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to update draft: %v", ErrInternal, err)
	}

	// 6. Помечаем начало запроса занятых слотов
	// Номер запроса защищает от гонки: если дата сменится ещё раз,
	// пока этот запрос в пути, устаревший ответ будет отброшен
	seq, err := uc.draftRepo.BeginAvailabilityFetch(ctx, req.Token)
	if err != nil {
		uc.logger.Error("SelectDate: failed to begin availability fetch for token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to begin availability fetch: %v", ErrInternal, err)
	}

	// 7. Запрашиваем занятые слоты у внешнего API
	booked, fetchErr := uc.apiClient.FetchBookedTimes(ctx, dateStr)
	if fetchErr != nil {
		// Fail-closed: упавший запрос не означает "всё свободно"
		// Статус failed блокирует выбор слота до успешного повтора
		uc.logger.Error("SelectDate: booked slots fetch failed for token=%s date=%s: %v", req.Token, dateStr, fetchErr)

		if _, completeErr := uc.draftRepo.CompleteAvailabilityFetch(ctx, req.Token, seq, nil, domain.AvailabilityFailed); completeErr != nil {
			uc.logger.Error("SelectDate: failed to mark availability failed for token=%s: %v", req.Token, completeErr)
		}

		return nil, fmt.Errorf("%w: %v", ErrAvailabilityUnavailable, fetchErr)
	}

	// 8. Применяем результат, если он не устарел
	applied, err := uc.draftRepo.CompleteAvailabilityFetch(ctx, req.Token, seq, booked, domain.AvailabilityReady)
	if err != nil {
		uc.logger.Error("SelectDate: failed to complete availability fetch for token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to complete availability fetch: %v", ErrInternal, err)
	}

	if !applied {
		uc.logger.Info("SelectDate: stale availability response discarded for token=%s date=%s seq=%d", req.Token, dateStr, seq)
		return &Response{
			Date:  dateStr,
			Stale: true,
		}, nil
	}

	uc.logger.Info("SelectDate: token=%s date=%s booked=%d", req.Token, dateStr, len(booked))

	return &Response{
		Date:               dateStr,
		BookedSlots:        booked,
		AvailabilityStatus: domain.AvailabilityReady,
	}, nil
}
