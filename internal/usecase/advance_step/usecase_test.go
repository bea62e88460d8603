package advance_step

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeDraftRepo struct {
	draft   *domain.BookingDraft
	updated int
}

func (f *fakeDraftRepo) GetByToken(_ context.Context, token string) (*domain.BookingDraft, error) {
	if f.draft == nil || f.draft.Token != token {
		return nil, draftRepo.ErrDraftNotFound
	}
	copied := *f.draft
	return &copied, nil
}

func (f *fakeDraftRepo) Update(_ context.Context, d *domain.BookingDraft) error {
	copied := *d
	f.draft = &copied
	f.updated++
	return nil
}

func newDraft(state domain.WizardState) *domain.BookingDraft {
	return &domain.BookingDraft{
		Token:     "tok-1",
		State:     state,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func validPersonal() domain.PersonalInfo {
	return domain.PersonalInfo{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Phone:     "08012345678",
		AgeRange:  "25-34",
		Gender:    "female",
	}
}

func TestExecute_PersonalInfoGate(t *testing.T) {
	t.Run("Empty Email Does Not Advance", func(t *testing.T) {
		d := newDraft(domain.StatePersonalInfo)
		d.Personal = validPersonal()
		d.Personal.Email = ""
		repo := &fakeDraftRepo{draft: d}
		uc := NewUseCase(repo, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		require.NoError(t, err)

		assert.False(t, resp.Advanced)
		assert.Equal(t, domain.StatePersonalInfo, resp.State)
		assert.Equal(t, stepErrPersonalInfo, resp.StepError, "single coarse message, not per-field")
		assert.Equal(t, domain.StatePersonalInfo, repo.draft.State)
		assert.Equal(t, stepErrPersonalInfo, repo.draft.StepError)
	})

	t.Run("Malformed Email Does Not Advance", func(t *testing.T) {
		d := newDraft(domain.StatePersonalInfo)
		d.Personal = validPersonal()
		d.Personal.Email = "not-an-email"
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		require.NoError(t, err)
		assert.False(t, resp.Advanced)
	})

	t.Run("Phone Must Be Eleven Digits", func(t *testing.T) {
		// Знак и десятичная точка тоже не цифры, хотя длина подходит
		for _, phone := range []string{"0801234567", "080123456789", "0801234567a", "+2348012345", "080.1234567"} {
			d := newDraft(domain.StatePersonalInfo)
			d.Personal = validPersonal()
			d.Personal.Phone = phone
			uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
			require.NoError(t, err)
			assert.False(t, resp.Advanced, "phone %q must be rejected", phone)
		}
	})

	t.Run("Valid Personal Info Advances", func(t *testing.T) {
		d := newDraft(domain.StatePersonalInfo)
		d.Personal = validPersonal()
		d.StepError = stepErrPersonalInfo // осталась от прошлой неудачной попытки
		repo := &fakeDraftRepo{draft: d}
		uc := NewUseCase(repo, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		require.NoError(t, err)

		assert.True(t, resp.Advanced)
		assert.Equal(t, domain.StateSkinProfile, resp.State)
		assert.Equal(t, 2, resp.StepOrdinal)
		assert.Empty(t, repo.draft.StepError, "advancing clears the step banner")
	})
}

func TestExecute_SkinProfileGate(t *testing.T) {
	t.Run("No Concerns Does Not Advance", func(t *testing.T) {
		d := newDraft(domain.StateSkinProfile)
		d.Skin.SkinType = domain.SkinTypeOily
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		require.NoError(t, err)
		assert.False(t, resp.Advanced)
		assert.Equal(t, stepErrSkinProfile, resp.StepError)
	})

	t.Run("No Skin Type Does Not Advance", func(t *testing.T) {
		d := newDraft(domain.StateSkinProfile)
		d.Skin.Concerns = []domain.SkinConcern{domain.ConcernAcne}
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		require.NoError(t, err)
		assert.False(t, resp.Advanced)
	})

	t.Run("Valid Skin Profile Advances", func(t *testing.T) {
		d := newDraft(domain.StateSkinProfile)
		d.Skin.SkinType = domain.SkinTypeOily
		d.Skin.Concerns = []domain.SkinConcern{domain.ConcernAcne}
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		require.NoError(t, err)
		assert.True(t, resp.Advanced)
		assert.Equal(t, domain.StateSchedule, resp.State)
	})
}

func TestExecute_EdgeCases(t *testing.T) {
	t.Run("Draft Not Found", func(t *testing.T) {
		uc := NewUseCase(&fakeDraftRepo{}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{Token: "missing"})
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("Expired Draft", func(t *testing.T) {
		d := newDraft(domain.StatePersonalInfo)
		d.ExpiresAt = time.Now().Add(-time.Minute)
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		assert.ErrorIs(t, err, ErrDraftExpired)
	})

	t.Run("Submitted Draft", func(t *testing.T) {
		d := newDraft(domain.StateSubmitted)
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})

	t.Run("No Forward Transition From Schedule", func(t *testing.T) {
		// С третьего шага вперёд уводит только успешный сабмит
		d := newDraft(domain.StateSchedule)
		uc := NewUseCase(&fakeDraftRepo{draft: d}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{Token: "tok-1"})
		assert.ErrorIs(t, err, ErrNoForwardTransition)
	})
}
