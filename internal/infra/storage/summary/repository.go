package summary

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/dbmetrics"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/psqlbuilder"
)

// Repository репозиторий сводок брони для страницы успеха
// Аналог короткоживущего session storage: запись живёт до первого чтения
// или до истечения TTL
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сводок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет сводку перед редиректом на оплату
// Повторный сабмит того же черновика перезаписывает сводку
func (r *Repository) Create(ctx context.Context, s *domain.BookingSummary) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_summaries").
		Columns(
			"token",
			"name",
			"email",
			"consultation_date",
			"time_range",
			"channel",
			"amount",
			"expires_at",
		).
		Values(
			s.Token,
			s.Name,
			s.Email,
			s.Date,
			s.TimeRange,
			s.Channel,
			s.Amount,
			s.ExpiresAt,
		).
		Suffix(`ON CONFLICT (token) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			consultation_date = EXCLUDED.consultation_date,
			time_range = EXCLUDED.time_range,
			channel = EXCLUDED.channel,
			amount = EXCLUDED.amount,
			expires_at = EXCLUDED.expires_at,
			created_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Consume читает сводку и сразу удаляет её (read-once)
// Страница успеха читает сводку ровно один раз после возврата с оплаты
func (r *Repository) Consume(ctx context.Context, token string, now time.Time) (*domain.BookingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_summaries").
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Gt{"expires_at": now}).
		Suffix("RETURNING token, name, email, consultation_date, time_range, channel, amount, created_at, expires_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Consume - build delete query: %v", ErrBuildQuery, err)
	}

	var (
		s         domain.BookingSummary
		createdAt sql.NullTime
		expiresAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.Token,
		&s.Name,
		&s.Email,
		&s.Date,
		&s.TimeRange,
		&s.Channel,
		&s.Amount,
		&createdAt,
		&expiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Consume - scan summary: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.ExpiresAt = expiresAt.Time

	return &s, nil
}

// DeleteExpired удаляет просроченные сводки, возвращает количество удалённых строк
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_summaries").
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
