package advance_step

import (
	"context"
	"errors"
	"fmt"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
)

// UseCase use case перехода анкеты к следующему шагу
// Реализует гейты мастера: шаг открывается, только если предыдущий заполнен корректно
type UseCase struct {
	draftRepo    DraftRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(draftRepo DraftRepository, logger Logger) *UseCase {
	return &UseCase{
		draftRepo:    draftRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет попытку перехода к следующему шагу
// Непройденный гейт — не ошибка, а штатный результат: состояние не меняется,
// в ответе остаётся единственное грубое сообщение шага
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdvanceStep: token=%s", req.Token)

	// 1. Получаем черновик
	d, err := uc.draftRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			uc.logger.Warn("AdvanceStep: draft token=%s not found", req.Token)
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("AdvanceStep: failed to get draft token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}

	// 2. Проверяем срок жизни
	if d.IsExpired(uc.timeProvider.Now()) {
		uc.logger.Warn("AdvanceStep: draft token=%s expired", req.Token)
		return nil, ErrDraftExpired
	}

	// 3. Из терминального состояния переходов нет
	if d.State.IsTerminal() {
		uc.logger.Warn("AdvanceStep: draft token=%s already submitted", req.Token)
		return nil, ErrAlreadySubmitted
	}

	// 4. Переход вперёд должен существовать в таблице переходов
	// С третьего шага вперёд уводит только успешный сабмит, не этот usecase
	next, ok := domain.NextWizardState(d.State, domain.EventNext)
	if !ok {
		uc.logger.Warn("AdvanceStep: no forward transition from state=%s", d.State)
		return nil, ErrNoForwardTransition
	}

	// 5. Проверяем гейт текущего шага
	if stepErr := uc.gateError(d); stepErr != "" {
		uc.logger.Info("AdvanceStep: gate failed for token=%s at state=%s", req.Token, d.State)

		d.StepError = stepErr
		if err := uc.draftRepo.Update(ctx, d); err != nil {
			uc.logger.Error("AdvanceStep: failed to persist step error for token=%s: %v", req.Token, err)
			return nil, fmt.Errorf("%w: failed to update draft: %v", ErrInternal, err)
		}

		return &Response{
			State:       d.State,
			StepOrdinal: d.State.Ordinal(),
			Advanced:    false,
			StepError:   stepErr,
		}, nil
	}

	// 6. Гейт пройден: двигаем состояние и снимаем шаговую ошибку
	d.State = next
	d.StepError = ""
	if err := uc.draftRepo.Update(ctx, d); err != nil {
		uc.logger.Error("AdvanceStep: failed to update draft token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to update draft: %v", ErrInternal, err)
	}

	uc.logger.Info("AdvanceStep: token=%s advanced to state=%s", req.Token, d.State)

	return &Response{
		State:       d.State,
		StepOrdinal: d.State.Ordinal(),
		Advanced:    true,
	}, nil
}

// gateError возвращает грубое сообщение шага, если гейт не пройден, иначе пустую строку
func (uc *UseCase) gateError(d *domain.BookingDraft) string {
	switch d.State {
	case domain.StatePersonalInfo:
		if !personalGatePassed(&d.Personal) {
			return stepErrPersonalInfo
		}
	case domain.StateSkinProfile:
		if !skinGatePassed(&d.Skin) {
			return stepErrSkinProfile
		}
	}
	return ""
}
