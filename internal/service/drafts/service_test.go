package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts/models"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeDraftRepo struct {
	drafts map[string]*domain.BookingDraft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: map[string]*domain.BookingDraft{}}
}

func (f *fakeDraftRepo) Create(_ context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error) {
	copied := *d
	f.drafts[d.Token] = &copied
	return &copied, nil
}

func (f *fakeDraftRepo) GetByToken(_ context.Context, token string) (*domain.BookingDraft, error) {
	d, ok := f.drafts[token]
	if !ok {
		return nil, draftRepo.ErrDraftNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDraftRepo) Update(_ context.Context, d *domain.BookingDraft) error {
	if _, ok := f.drafts[d.Token]; !ok {
		return draftRepo.ErrDraftNotFound
	}
	copied := *d
	f.drafts[d.Token] = &copied
	return nil
}

func (f *fakeDraftRepo) Delete(_ context.Context, token string) error {
	if _, ok := f.drafts[token]; !ok {
		return draftRepo.ErrDraftNotFound
	}
	delete(f.drafts, token)
	return nil
}

func (f *fakeDraftRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for token, d := range f.drafts {
		if d.IsExpired(now) {
			delete(f.drafts, token)
			count++
		}
	}
	return count, nil
}

func newTestService(repo *fakeDraftRepo) *Service {
	return NewService(repo, time.Hour, nopLogger{})
}

func seedDraft(repo *fakeDraftRepo, state domain.WizardState) *domain.BookingDraft {
	d := &domain.BookingDraft{
		Token:              "tok-1",
		State:              state,
		AvailabilityStatus: domain.AvailabilityNone,
		ExpiresAt:          time.Now().Add(time.Hour),
	}
	repo.drafts[d.Token] = d
	return d
}

func TestCreate(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, string(domain.StatePersonalInfo), resp.State)
	assert.Equal(t, 1, resp.StepOrdinal)
	assert.Equal(t, string(domain.AvailabilityNone), resp.AvailabilityStatus)
	assert.Len(t, resp.Schedule.Slots, 4)

	// Пока дата не выбрана, ни один слот не доступен
	for _, slot := range resp.Schedule.Slots {
		assert.False(t, slot.Available)
	}
}

func TestUpdateStep_Personal(t *testing.T) {
	t.Run("Updates Current Step Fields", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StatePersonalInfo)
		svc := newTestService(repo)

		resp, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			FirstName: ptr.Ptr("Ada"),
			Email:     ptr.Ptr("ada@example.com"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Ada", resp.Personal.FirstName)
		assert.Equal(t, "ada@example.com", resp.Personal.Email)
	})

	t.Run("Rejects Fields From Another Step", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StatePersonalInfo)
		svc := newTestService(repo)

		_, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			SkinType: ptr.Ptr("oily"),
		})
		assert.ErrorIs(t, err, ErrWrongStep)
	})
}

func TestUpdateStep_Skin(t *testing.T) {
	t.Run("Concern Cap Is A Silent No-Op", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StateSkinProfile)
		svc := newTestService(repo)

		resp, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			SkinConcerns: ptr.Ptr([]string{"acne", "aging", "dryness", "sensitivity"}),
		})
		require.NoError(t, err)

		// Четвёртая проблема не добавлена, первые три сохранены
		assert.Equal(t, []string{"acne", "aging", "dryness"}, resp.Skin.SkinConcerns)
	})

	t.Run("Unknown Concern Rejected", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StateSkinProfile)
		svc := newTestService(repo)

		_, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			SkinConcerns: ptr.Ptr([]string{"wrinkles"}),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Unknown Skin Type Rejected", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StateSkinProfile)
		svc := newTestService(repo)

		_, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			SkinType: ptr.Ptr("alien"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStep_Schedule(t *testing.T) {
	monday := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	readyDraft := func(repo *fakeDraftRepo) *domain.BookingDraft {
		d := seedDraft(repo, domain.StateSchedule)
		d.Schedule.Date = &monday
		d.AvailabilityStatus = domain.AvailabilityReady
		return d
	}

	t.Run("Selects Free Slot", func(t *testing.T) {
		repo := newFakeDraftRepo()
		readyDraft(repo)
		svc := newTestService(repo)

		resp, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			TimeSlot: ptr.Ptr("2:00 PM"),
			Format:   ptr.Ptr("video-call"),
		})
		require.NoError(t, err)

		assert.Equal(t, "2:00 PM", resp.Schedule.TimeSlot)
		assert.Equal(t, "video-call", resp.Schedule.Format)
		assert.Equal(t, float64(15000), resp.Schedule.Price)
	})

	t.Run("Rejects Booked Slot", func(t *testing.T) {
		repo := newFakeDraftRepo()
		d := readyDraft(repo)
		d.BookedSlots = []domain.BookedSlot{
			{Date: "2030-06-03", TimeRange: "2:00 PM - 3:00 PM"},
		}
		svc := newTestService(repo)

		_, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			TimeSlot: ptr.Ptr("2:00 PM"),
		})
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("Blocks Selection After Failed Availability Fetch", func(t *testing.T) {
		repo := newFakeDraftRepo()
		d := readyDraft(repo)
		d.AvailabilityStatus = domain.AvailabilityFailed
		svc := newTestService(repo)

		_, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			TimeSlot: ptr.Ptr("2:00 PM"),
		})
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("WhatsApp Format Price", func(t *testing.T) {
		repo := newFakeDraftRepo()
		readyDraft(repo)
		svc := newTestService(repo)

		resp, err := svc.UpdateStep(context.Background(), "tok-1", &models.UpdateStepRequest{
			Format: ptr.Ptr("whatsapp"),
		})
		require.NoError(t, err)
		assert.Equal(t, float64(10000), resp.Schedule.Price)
	})
}

func TestPrevious(t *testing.T) {
	t.Run("Moves Back And Clears Step Error", func(t *testing.T) {
		repo := newFakeDraftRepo()
		d := seedDraft(repo, domain.StateSkinProfile)
		d.StepError = "Please fill in all required fields correctly"
		svc := newTestService(repo)

		resp, err := svc.Previous(context.Background(), "tok-1")
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatePersonalInfo), resp.State)
		assert.Empty(t, resp.StepError)
	})

	t.Run("First Step Has No Previous", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StatePersonalInfo)
		svc := newTestService(repo)

		_, err := svc.Previous(context.Background(), "tok-1")
		assert.ErrorIs(t, err, ErrNoPreviousStep)
	})

	t.Run("Submitted Draft Is Frozen", func(t *testing.T) {
		repo := newFakeDraftRepo()
		seedDraft(repo, domain.StateSubmitted)
		svc := newTestService(repo)

		_, err := svc.Previous(context.Background(), "tok-1")
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestDiscard(t *testing.T) {
	repo := newFakeDraftRepo()
	seedDraft(repo, domain.StateSchedule)
	svc := newTestService(repo)

	require.NoError(t, svc.Discard(context.Background(), "tok-1"))
	assert.Empty(t, repo.drafts)

	assert.ErrorIs(t, svc.Discard(context.Background(), "tok-1"), ErrDraftNotFound)
}

func TestGet_Expired(t *testing.T) {
	repo := newFakeDraftRepo()
	d := seedDraft(repo, domain.StatePersonalInfo)
	d.ExpiresAt = time.Now().Add(-time.Minute)
	svc := newTestService(repo)

	_, err := svc.Get(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrDraftExpired)
}

func TestPurgeExpired(t *testing.T) {
	repo := newFakeDraftRepo()
	alive := seedDraft(repo, domain.StatePersonalInfo)
	expired := &domain.BookingDraft{
		Token:     "tok-2",
		State:     domain.StatePersonalInfo,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	repo.drafts[expired.Token] = expired
	svc := newTestService(repo)

	count, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Contains(t, repo.drafts, alive.Token)
}
