package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/integrations/consultationapi"
)

// UseCase use case сабмита анкеты: перепроверка, свежая проверка слота,
// инициация оплаты во внешнем API и фиксация сводки брони
type UseCase struct {
	draftRepo    DraftRepository
	summaryRepo  SummaryRepository
	apiClient    ConsultationAPIClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	draftRepo DraftRepository,
	summaryRepo SummaryRepository,
	apiClient ConsultationAPIClient,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		draftRepo:    draftRepo,
		summaryRepo:  summaryRepo,
		apiClient:    apiClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// Execute выполняет сабмит анкеты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: token=%s", req.Token)

	// 1. Получаем черновик
	d, err := uc.draftRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			uc.logger.Warn("SubmitBooking: draft token=%s not found", req.Token)
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get draft token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем срок жизни и шаг
	if d.IsExpired(now) {
		uc.logger.Warn("SubmitBooking: draft token=%s expired", req.Token)
		return nil, ErrDraftExpired
	}
	if d.State == domain.StateSubmitted {
		uc.logger.Warn("SubmitBooking: draft token=%s already submitted", req.Token)
		return nil, ErrAlreadySubmitted
	}
	if d.State != domain.StateSchedule {
		uc.logger.Warn("SubmitBooking: draft token=%s is at state=%s", req.Token, d.State)
		return nil, ErrWrongState
	}

	// 3. Локальная перепроверка всей анкеты, без сетевых запросов
	// Состоянию мастера не доверяем: каждое поле проверяется заново
	if fields := validateDraft(d, now); fields != nil {
		uc.logger.Warn("SubmitBooking: draft token=%s failed validation: %d fields", req.Token, len(fields))
		return nil, &ValidationError{Fields: fields}
	}

	dateStr := d.Schedule.DateString()
	timeRange, ok := domain.SlotRange(d.Schedule.TimeSlot)
	if !ok {
		// validateDraft уже проверил лейбл, сюда попадать не должны
		uc.logger.Error("SubmitBooking: draft token=%s has unknown slot label=%q", req.Token, d.Schedule.TimeSlot)
		return nil, fmt.Errorf("%w: unknown time slot %q", ErrInternal, d.Schedule.TimeSlot)
	}

	// 4. Свежая проверка занятости слота непосредственно перед оплатой
	// Кэшу занятых слотов не доверяем: между выбором и сабмитом слот мог уйти
	booked, err := uc.apiClient.FetchBookedTimes(ctx, dateStr)
	if err != nil {
		// Fail-closed: без свежих данных оплату не начинаем
		uc.logger.Error("SubmitBooking: booked slots fetch failed for token=%s date=%s: %v", req.Token, dateStr, err)
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityUnavailable, err)
	}

	if !domain.IsSlotFree(dateStr, d.Schedule.TimeSlot, booked) {
		uc.logger.Warn("SubmitBooking: slot conflict for token=%s date=%s slot=%s", req.Token, dateStr, d.Schedule.TimeSlot)

		// Обновляем кэш свежим списком, чтобы пользователь выбрал другой слот
		if refreshErr := uc.draftRepo.RefreshBookedSlots(ctx, req.Token, booked); refreshErr != nil {
			uc.logger.Error("SubmitBooking: failed to refresh booked slots for token=%s: %v", req.Token, refreshErr)
		}

		return nil, &ConflictError{BookedSlots: booked}
	}

	// 5. Инициируем оплату во внешнем API
	initReq := uc.buildInitiateRequest(d, dateStr, timeRange)

	initResp, err := uc.apiClient.Initiate(ctx, uc.cfg.APIToken, initReq)
	if err != nil {
		var remoteErr *consultationapi.RemoteError
		if errors.As(err, &remoteErr) {
			uc.logger.Warn("SubmitBooking: payment initiation rejected for token=%s: code=%d message=%q", req.Token, remoteErr.Code, remoteErr.Message)
			return nil, fmt.Errorf("%w: %s", ErrPaymentRejected, remoteErr.Message)
		}
		if errors.Is(err, consultationapi.ErrTransport) {
			// Сетевая недоступность внешнего API, а не отказ по бизнес-причине
			uc.logger.Error("SubmitBooking: payment initiation unreachable for token=%s: %v", req.Token, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
		}
		uc.logger.Error("SubmitBooking: payment initiation failed for token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: payment initiation failed: %v", ErrInternal, err)
	}

	// 6. В одной транзакции: сводка для страницы успеха + перевод мастера в submitted
	summary := &domain.BookingSummary{
		Token:     d.Token,
		Name:      d.Personal.FullName(),
		Email:     d.Personal.Email,
		Date:      dateStr,
		TimeRange: timeRange,
		Channel:   d.Schedule.Format.Channel(),
		Amount:    initResp.AmountCalculated,
		ExpiresAt: now.Add(uc.cfg.SummaryTTL),
	}

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Перечитываем черновик уже под блокировкой (GetByToken в транзакции
		// берет FOR UPDATE): параллельный сабмит мог успеть первым
		fresh, err := uc.draftRepo.GetByToken(ctx, req.Token)
		if err != nil {
			return fmt.Errorf("reload draft: %w", err)
		}
		if fresh.State == domain.StateSubmitted {
			return ErrAlreadySubmitted
		}

		if err := uc.summaryRepo.Create(ctx, summary); err != nil {
			return fmt.Errorf("create summary: %w", err)
		}

		next, ok := domain.NextWizardState(fresh.State, domain.EventSubmitSucceeded)
		if !ok {
			return fmt.Errorf("no transition from state %s on successful submit", fresh.State)
		}
		fresh.State = next
		fresh.StepError = ""

		if err := uc.draftRepo.Update(ctx, fresh); err != nil {
			return fmt.Errorf("update draft: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			uc.logger.Warn("SubmitBooking: draft token=%s was submitted concurrently", req.Token)
			return nil, ErrAlreadySubmitted
		}
		uc.logger.Error("SubmitBooking: failed to persist submission for token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to persist submission: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitBooking: token=%s submitted, amount=%.2f", req.Token, initResp.AmountCalculated)

	return &Response{
		AuthorizationURL: initResp.AuthorizationURL,
		Amount:           initResp.AmountCalculated,
	}, nil
}

// buildInitiateRequest собирает параметры инициации
// Список проблем кожи склеивается в строку только здесь, на границе с внешним API
func (uc *UseCase) buildInitiateRequest(d *domain.BookingDraft, dateStr, timeRange string) *consultationapi.InitiateRequest {
	concerns := make([]string, len(d.Skin.Concerns))
	for i, c := range d.Skin.Concerns {
		concerns[i] = string(c)
	}

	return &consultationapi.InitiateRequest{
		Name:              d.Personal.FullName(),
		Email:             d.Personal.Email,
		Phone:             d.Personal.Phone,
		AgeRange:          d.Personal.AgeRange,
		Gender:            d.Personal.Gender,
		SkinType:          string(d.Skin.SkinType),
		SkinConcerns:      strings.Join(concerns, ","),
		Channel:           d.Schedule.Format.Channel(),
		Date:              dateStr,
		TimeRange:         timeRange,
		SuccessRedirect:   strings.TrimRight(uc.cfg.PublicBaseURL, "/") + uc.cfg.SuccessPath,
		CurrentProducts:   d.Skin.CurrentProducts,
		AdditionalDetails: d.Skin.AdditionalDetails,
	}
}
