package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts/models"
)

// Service сервис жизненного цикла черновиков анкеты
// Создание, чтение состояния мастера, правка полей текущего шага,
// шаг назад и удаление
type Service struct {
	draftRepo    DraftRepository
	tokens       TokenGenerator
	timeProvider TimeProvider
	draftTTL     time.Duration
	logger       Logger
}

// UUIDTokenGenerator генератор токенов на базе UUIDv4
type UUIDTokenGenerator struct{}

func (UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(draftRepo DraftRepository, draftTTL time.Duration, logger Logger) *Service {
	return &Service{
		draftRepo:    draftRepo,
		tokens:       UUIDTokenGenerator{},
		timeProvider: &RealTimeProvider{},
		draftTTL:     draftTTL,
		logger:       logger,
	}
}

// Create создает пустой черновик на первом шаге мастера
func (s *Service) Create(ctx context.Context) (*models.DraftResponse, error) {
	now := s.timeProvider.Now()

	draft := &domain.BookingDraft{
		Token:              s.tokens.NewToken(),
		State:              domain.StatePersonalInfo,
		AvailabilityStatus: domain.AvailabilityNone,
		CreatedAt:          now,
		UpdatedAt:          now,
		ExpiresAt:          now.Add(s.draftTTL),
	}

	created, err := s.draftRepo.Create(ctx, draft)
	if err != nil {
		s.logger.Error("Create: failed to create draft: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: draft token=%s created, expires=%s", created.Token, created.ExpiresAt.Format(time.RFC3339))
	return models.FromDomainDraft(created), nil
}

// Get возвращает полное состояние черновика для рендеринга мастера
func (s *Service) Get(ctx context.Context, token string) (*models.DraftResponse, error) {
	draft, err := s.getAlive(ctx, token)
	if err != nil {
		return nil, err
	}
	return models.FromDomainDraft(draft), nil
}

// UpdateStep применяет правки полей текущего шага мастера
// Поля чужого шага отклоняются: мастер правит только то, что на экране
func (s *Service) UpdateStep(ctx context.Context, token string, req *models.UpdateStepRequest) (*models.DraftResponse, error) {
	draft, err := s.getAlive(ctx, token)
	if err != nil {
		return nil, err
	}

	if draft.State.IsTerminal() {
		s.logger.Warn("UpdateStep: draft token=%s already submitted", token)
		return nil, ErrAlreadySubmitted
	}

	switch draft.State {
	case domain.StatePersonalInfo:
		if req.TouchesSkin() || req.TouchesSchedule() {
			return nil, ErrWrongStep
		}
		s.applyPersonal(draft, req)
	case domain.StateSkinProfile:
		if req.TouchesPersonal() || req.TouchesSchedule() {
			return nil, ErrWrongStep
		}
		if err := s.applySkin(draft, req); err != nil {
			return nil, err
		}
	case domain.StateSchedule:
		if req.TouchesPersonal() || req.TouchesSkin() {
			return nil, ErrWrongStep
		}
		if err := s.applySchedule(draft, req); err != nil {
			return nil, err
		}
	default:
		return nil, ErrWrongStep
	}

	if err := s.draftRepo.Update(ctx, draft); err != nil {
		s.logger.Error("UpdateStep: failed to update draft token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: UpdateStep - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDraft(draft), nil
}

// Previous переводит мастер на шаг назад
// Введённые данные сохраняются, баннер ошибки шага снимается
func (s *Service) Previous(ctx context.Context, token string) (*models.DraftResponse, error) {
	draft, err := s.getAlive(ctx, token)
	if err != nil {
		return nil, err
	}

	if draft.State.IsTerminal() {
		s.logger.Warn("Previous: draft token=%s already submitted", token)
		return nil, ErrAlreadySubmitted
	}

	prev, ok := domain.NextWizardState(draft.State, domain.EventPrevious)
	if !ok {
		s.logger.Warn("Previous: draft token=%s is at the first step", token)
		return nil, ErrNoPreviousStep
	}

	draft.State = prev
	draft.StepError = ""

	if err := s.draftRepo.Update(ctx, draft); err != nil {
		s.logger.Error("Previous: failed to update draft token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: Previous - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Previous: draft token=%s moved back to state=%s", token, prev)
	return models.FromDomainDraft(draft), nil
}

// Discard удаляет черновик: пользователь ушёл со страницы или начал заново
func (s *Service) Discard(ctx context.Context, token string) error {
	if err := s.draftRepo.Delete(ctx, token); err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			s.logger.Warn("Discard: draft token=%s not found", token)
			return ErrDraftNotFound
		}
		s.logger.Error("Discard: failed to delete draft token=%s: %v", token, err)
		return fmt.Errorf("%w: Discard - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Discard: draft token=%s deleted", token)
	return nil
}

// PurgeExpired удаляет просроченные черновики, возвращает количество удалённых
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.draftRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - repository error: %v", ErrInternal, err)
	}
	return count, nil
}

// getAlive возвращает существующий и не просроченный черновик
func (s *Service) getAlive(ctx context.Context, token string) (*domain.BookingDraft, error) {
	draft, err := s.draftRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			s.logger.Warn("getAlive: draft token=%s not found", token)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("getAlive: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: getAlive - repository error: %v", ErrInternal, err)
	}

	if draft.IsExpired(s.timeProvider.Now()) {
		s.logger.Warn("getAlive: draft token=%s expired", token)
		return nil, ErrDraftExpired
	}

	return draft, nil
}

func (s *Service) applyPersonal(d *domain.BookingDraft, req *models.UpdateStepRequest) {
	if req.FirstName != nil {
		d.Personal.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		d.Personal.LastName = *req.LastName
	}
	if req.Email != nil {
		d.Personal.Email = *req.Email
	}
	if req.Phone != nil {
		d.Personal.Phone = *req.Phone
	}
	if req.AgeRange != nil {
		d.Personal.AgeRange = *req.AgeRange
	}
	if req.Gender != nil {
		d.Personal.Gender = *req.Gender
	}
}

func (s *Service) applySkin(d *domain.BookingDraft, req *models.UpdateStepRequest) error {
	if req.SkinType != nil {
		skinType := domain.SkinType(*req.SkinType)
		if !skinType.IsValid() {
			s.logger.Warn("applySkin: invalid skin type=%q for token=%s", *req.SkinType, d.Token)
			return fmt.Errorf("%w: unknown skin type %q", ErrInvalidInput, *req.SkinType)
		}
		d.Skin.SkinType = skinType
	}

	if req.SkinConcerns != nil {
		// Список применяется через AddConcern: лимит в 3 срабатывает как no-op,
		// лишние значения молча не добавляются
		d.Skin.Concerns = nil
		for _, raw := range *req.SkinConcerns {
			concern := domain.SkinConcern(raw)
			if !concern.IsValid() {
				s.logger.Warn("applySkin: invalid concern=%q for token=%s", raw, d.Token)
				return fmt.Errorf("%w: unknown skin concern %q", ErrInvalidInput, raw)
			}
			d.Skin.AddConcern(concern)
		}
	}

	if req.CurrentProducts != nil {
		d.Skin.CurrentProducts = *req.CurrentProducts
	}
	if req.AdditionalDetails != nil {
		d.Skin.AdditionalDetails = *req.AdditionalDetails
	}

	return nil
}

func (s *Service) applySchedule(d *domain.BookingDraft, req *models.UpdateStepRequest) error {
	if req.TimeSlot != nil {
		if *req.TimeSlot == "" {
			d.Schedule.TimeSlot = ""
		} else {
			if _, ok := domain.SlotRange(*req.TimeSlot); !ok {
				s.logger.Warn("applySchedule: unknown slot label=%q for token=%s", *req.TimeSlot, d.Token)
				return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, *req.TimeSlot)
			}
			// Fail-closed: слот можно выбирать только при свежем списке занятых слотов
			if !d.SlotSelectable() {
				s.logger.Warn("applySchedule: slot selection blocked for token=%s, availability=%s", d.Token, d.AvailabilityStatus)
				return ErrSlotUnavailable
			}
			if !domain.IsSlotFree(d.Schedule.DateString(), *req.TimeSlot, d.BookedSlots) {
				s.logger.Warn("applySchedule: slot=%q already booked for token=%s date=%s", *req.TimeSlot, d.Token, d.Schedule.DateString())
				return ErrSlotTaken
			}
			d.Schedule.TimeSlot = *req.TimeSlot
		}
	}

	if req.Format != nil {
		format := domain.ConsultationFormat(*req.Format)
		if !format.IsValid() {
			s.logger.Warn("applySchedule: invalid format=%q for token=%s", *req.Format, d.Token)
			return fmt.Errorf("%w: unknown consultation format %q", ErrInvalidInput, *req.Format)
		}
		d.Schedule.Format = format
	}

	if req.TermsAgreed != nil {
		d.TermsAgreed = *req.TermsAgreed
	}

	return nil
}
