package select_date

import (
	"context"
	"errors"
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
	draft *domain.BookingDraft

	// имитация гонки: номер, который повысили "конкурирующим" запросом
	currentSeq int64
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
	copied.AvailabilityStatus = f.draft.AvailabilityStatus
	copied.AvailabilitySeq = f.draft.AvailabilitySeq
	copied.BookedSlots = f.draft.BookedSlots
	f.draft = &copied
	return nil
}

func (f *fakeDraftRepo) BeginAvailabilityFetch(_ context.Context, token string) (int64, error) {
	if f.draft == nil || f.draft.Token != token {
		return 0, draftRepo.ErrDraftNotFound
	}
	f.currentSeq++
	f.draft.AvailabilitySeq = f.currentSeq
	f.draft.AvailabilityStatus = domain.AvailabilityPending
	return f.currentSeq, nil
}

func (f *fakeDraftRepo) CompleteAvailabilityFetch(_ context.Context, token string, seq int64, booked []domain.BookedSlot, status domain.AvailabilityStatus) (bool, error) {
	if f.draft == nil || f.draft.Token != token {
		return false, draftRepo.ErrDraftNotFound
	}
	if f.draft.AvailabilitySeq != seq {
		return false, nil
	}
	f.draft.BookedSlots = booked
	f.draft.AvailabilityStatus = status
	return true, nil
}

type fakeAPIClient struct {
	booked []domain.BookedSlot
	err    error
	calls  int

	// вызывается перед возвратом ответа, чтобы воспроизвести гонку
	beforeReturn func()
}

func (f *fakeAPIClient) FetchBookedTimes(_ context.Context, _ string) ([]domain.BookedSlot, error) {
	f.calls++
	if f.beforeReturn != nil {
		f.beforeReturn()
	}
	return f.booked, f.err
}

func newScheduleDraft() *domain.BookingDraft {
	return &domain.BookingDraft{
		Token:     "tok-1",
		State:     domain.StateSchedule,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// Фиксированные даты далеко в будущем, чтобы тест не зависел от дня запуска
var (
	saturday = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)
)

func TestExecute_WeekendDate(t *testing.T) {
	slot := domain.SlotLabels()[0]
	d := newScheduleDraft()
	prev := monday
	d.Schedule.Date = &prev
	d.Schedule.TimeSlot = slot
	d.AvailabilityStatus = domain.AvailabilityReady

	repo := &fakeDraftRepo{draft: d}
	client := &fakeAPIClient{}
	uc := NewUseCase(repo, client, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: saturday})
	assert.ErrorIs(t, err, ErrWeekendDate)

	// Дата и слот сброшены, внешний API не дергался
	assert.Nil(t, repo.draft.Schedule.Date)
	assert.Empty(t, repo.draft.Schedule.TimeSlot)
	assert.Zero(t, client.calls)

	// Без даты слот выбрать нельзя, каким бы ни был статус кэша
	assert.False(t, repo.draft.SlotSelectable())
}

func TestExecute_NonFutureDate(t *testing.T) {
	// Прошедший будний день
	past := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	client := &fakeAPIClient{}
	uc := NewUseCase(&fakeDraftRepo{draft: newScheduleDraft()}, client, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: past})
	assert.ErrorIs(t, err, ErrDateNotFuture)
	assert.Zero(t, client.calls)
}

func TestExecute_FetchSuccess(t *testing.T) {
	booked := []domain.BookedSlot{
		{Date: "2030-06-03", TimeRange: domain.SlotRanges()[0]},
	}
	repo := &fakeDraftRepo{draft: newScheduleDraft()}
	client := &fakeAPIClient{booked: booked}
	uc := NewUseCase(repo, client, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: monday})
	require.NoError(t, err)

	assert.Equal(t, "2030-06-03", resp.Date)
	assert.Equal(t, booked, resp.BookedSlots)
	assert.Equal(t, domain.AvailabilityReady, resp.AvailabilityStatus)
	assert.False(t, resp.Stale)

	require.NotNil(t, repo.draft.Schedule.Date)
	assert.Equal(t, "2030-06-03", repo.draft.Schedule.DateString())
	assert.Equal(t, domain.AvailabilityReady, repo.draft.AvailabilityStatus)
	assert.Equal(t, booked, repo.draft.BookedSlots)
}

func TestExecute_FetchFailureFailsClosed(t *testing.T) {
	repo := &fakeDraftRepo{draft: newScheduleDraft()}
	client := &fakeAPIClient{err: errors.New("connection refused")}
	uc := NewUseCase(repo, client, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: monday})
	assert.ErrorIs(t, err, ErrAvailabilityUnavailable)

	// Статус failed: выбор слота заблокирован до успешного повтора
	assert.Equal(t, domain.AvailabilityFailed, repo.draft.AvailabilityStatus)
	assert.False(t, repo.draft.SlotSelectable())
}

func TestExecute_StaleResponseDiscarded(t *testing.T) {
	repo := &fakeDraftRepo{draft: newScheduleDraft()}
	client := &fakeAPIClient{
		booked: []domain.BookedSlot{{Date: "2030-06-03", TimeRange: domain.SlotRanges()[0]}},
	}
	// Пока ответ в пути, пользователь успел выбрать другую дату
	client.beforeReturn = func() {
		repo.currentSeq++
		repo.draft.AvailabilitySeq = repo.currentSeq
	}
	uc := NewUseCase(repo, client, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: monday})
	require.NoError(t, err)

	assert.True(t, resp.Stale)
	assert.Empty(t, repo.draft.BookedSlots)
	assert.Equal(t, domain.AvailabilityPending, repo.draft.AvailabilityStatus)
}

func TestExecute_EdgeCases(t *testing.T) {
	t.Run("Draft Not Found", func(t *testing.T) {
		uc := NewUseCase(&fakeDraftRepo{}, &fakeAPIClient{}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{Token: "missing", Date: monday})
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("Expired Draft", func(t *testing.T) {
		d := newScheduleDraft()
		d.ExpiresAt = time.Now().Add(-time.Minute)
		uc := NewUseCase(&fakeDraftRepo{draft: d}, &fakeAPIClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: monday})
		assert.ErrorIs(t, err, ErrDraftExpired)
	})

	t.Run("Wrong State", func(t *testing.T) {
		d := newScheduleDraft()
		d.State = domain.StatePersonalInfo
		uc := NewUseCase(&fakeDraftRepo{draft: d}, &fakeAPIClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{Token: "tok-1", Date: monday})
		assert.ErrorIs(t, err, ErrWrongState)
	})
}
