package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/dbmetrics"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/psqlbuilder"
)

// draftColumns колонки таблицы consultation_drafts в порядке сканирования
var draftColumns = []string{
	"token",
	"state",
	"first_name",
	"last_name",
	"email",
	"phone",
	"age_range",
	"gender",
	"skin_type",
	"skin_concerns",
	"current_products",
	"additional_details",
	"schedule_date",
	"time_slot",
	"format",
	"terms_agreed",
	"step_error",
	"booked_slots",
	"availability_status",
	"availability_seq",
	"created_at",
	"updated_at",
	"expires_at",
}

// Repository репозиторий черновиков анкеты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черновиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый пустой черновик
func (r *Repository) Create(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consultation_drafts").
		Columns(
			"token",
			"state",
			"availability_status",
			"booked_slots",
			"expires_at",
		).
		Values(
			d.Token,
			d.State,
			domain.AvailabilityNone,
			[]byte("[]"),
			d.ExpiresAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.AvailabilityStatus = domain.AvailabilityNone
	d.BookedSlots = []domain.BookedSlot{}
	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return d, nil
}

// GetByToken получает черновик по токену сессии
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(draftColumns...).
		From("consultation_drafts").
		Where(squirrel.Eq{"token": token})

	// Внутри транзакции сабмита черновик блокируется от параллельных изменений
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	d, err := scanDraft(row)
	if err == sql.ErrNoRows {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan draft: %v", ErrScanRow, err)
	}

	return d, nil
}

// Update сохраняет изменяемые поля черновика
// Кэш занятых слотов этим методом не трогается, у него свой протокол
// (BeginAvailabilityFetch / CompleteAvailabilityFetch / RefreshBookedSlots)
func (r *Repository) Update(ctx context.Context, d *domain.BookingDraft) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var scheduleDate interface{}
	if d.Schedule.Date != nil {
		scheduleDate = *d.Schedule.Date
	}

	query, args, err := psqlbuilder.Update("consultation_drafts").
		Set("state", d.State).
		Set("first_name", d.Personal.FirstName).
		Set("last_name", d.Personal.LastName).
		Set("email", d.Personal.Email).
		Set("phone", d.Personal.Phone).
		Set("age_range", d.Personal.AgeRange).
		Set("gender", d.Personal.Gender).
		Set("skin_type", string(d.Skin.SkinType)).
		Set("skin_concerns", pq.Array(concernsToStrings(d.Skin.Concerns))).
		Set("current_products", d.Skin.CurrentProducts).
		Set("additional_details", d.Skin.AdditionalDetails).
		Set("schedule_date", scheduleDate).
		Set("time_slot", d.Schedule.TimeSlot).
		Set("format", string(d.Schedule.Format)).
		Set("terms_agreed", d.TermsAgreed).
		Set("step_error", d.StepError).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"token": d.Token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// BeginAvailabilityFetch помечает начало запроса занятых слотов
// Инкрементирует номер запроса и возвращает его: ответ применится,
// только если к тому моменту номер не изменился
func (r *Repository) BeginAvailabilityFetch(ctx context.Context, token string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultation_drafts").
		Set("availability_seq", squirrel.Expr("availability_seq + 1")).
		Set("availability_status", domain.AvailabilityPending).
		Set("booked_slots", []byte("[]")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"token": token}).
		Suffix("RETURNING availability_seq").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: BeginAvailabilityFetch - build update query: %v", ErrBuildQuery, err)
	}

	var seq int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&seq)
	if err == sql.ErrNoRows {
		return 0, ErrDraftNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: BeginAvailabilityFetch - execute update: %v", ErrExecQuery, err)
	}

	return seq, nil
}

// CompleteAvailabilityFetch применяет результат запроса занятых слотов
// Возвращает false, если ответ устарел: за время запроса была выбрана другая дата
// и availability_seq уже другой
func (r *Repository) CompleteAvailabilityFetch(
	ctx context.Context,
	token string,
	seq int64,
	slots []domain.BookedSlot,
	status domain.AvailabilityStatus,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := encodeSlots(slots)
	if err != nil {
		return false, err
	}

	query, args, err := psqlbuilder.Update("consultation_drafts").
		Set("booked_slots", encoded).
		Set("availability_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"token": token, "availability_seq": seq}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CompleteAvailabilityFetch - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CompleteAvailabilityFetch - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CompleteAvailabilityFetch - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// RefreshBookedSlots безусловно обновляет кэш занятых слотов
// Используется при проигранной гонке на сабмите: ответ повторного запроса
// отражается в черновике без второго обращения к внешнему API
func (r *Repository) RefreshBookedSlots(ctx context.Context, token string, slots []domain.BookedSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := encodeSlots(slots)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("consultation_drafts").
		Set("booked_slots", encoded).
		Set("availability_status", domain.AvailabilityReady).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RefreshBookedSlots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RefreshBookedSlots - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RefreshBookedSlots - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// Delete удаляет черновик (уход пользователя со страницы анкеты)
func (r *Repository) Delete(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("consultation_drafts").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// DeleteExpired удаляет все черновики с истёкшим сроком жизни
// Возвращает количество удалённых строк
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("consultation_drafts").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDraft(row scanner) (*domain.BookingDraft, error) {
	var (
		d            domain.BookingDraft
		skinType     string
		concerns     pq.StringArray
		scheduleDate sql.NullTime
		format       string
		bookedRaw    []byte
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
		expiresAt    sql.NullTime
	)

	err := row.Scan(
		&d.Token,
		&d.State,
		&d.Personal.FirstName,
		&d.Personal.LastName,
		&d.Personal.Email,
		&d.Personal.Phone,
		&d.Personal.AgeRange,
		&d.Personal.Gender,
		&skinType,
		&concerns,
		&d.Skin.CurrentProducts,
		&d.Skin.AdditionalDetails,
		&scheduleDate,
		&d.Schedule.TimeSlot,
		&format,
		&d.TermsAgreed,
		&d.StepError,
		&bookedRaw,
		&d.AvailabilityStatus,
		&d.AvailabilitySeq,
		&createdAt,
		&updatedAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	d.Skin.SkinType = domain.SkinType(skinType)
	d.Skin.Concerns = stringsToConcerns(concerns)
	if scheduleDate.Valid {
		date := scheduleDate.Time
		d.Schedule.Date = &date
	}
	d.Schedule.Format = domain.ConsultationFormat(format)

	d.BookedSlots = []domain.BookedSlot{}
	if len(bookedRaw) > 0 {
		if err := json.Unmarshal(bookedRaw, &d.BookedSlots); err != nil {
			return nil, err
		}
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time
	d.ExpiresAt = expiresAt.Time

	return &d, nil
}

func encodeSlots(slots []domain.BookedSlot) ([]byte, error) {
	if slots == nil {
		slots = []domain.BookedSlot{}
	}
	encoded, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeCache, err)
	}
	return encoded, nil
}

func concernsToStrings(concerns []domain.SkinConcern) []string {
	out := make([]string, len(concerns))
	for i, c := range concerns {
		out[i] = string(c)
	}
	return out
}

func stringsToConcerns(values []string) []domain.SkinConcern {
	out := make([]domain.SkinConcern, len(values))
	for i, v := range values {
		out[i] = domain.SkinConcern(v)
	}
	return out
}
