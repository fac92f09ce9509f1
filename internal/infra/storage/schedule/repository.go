package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	"github.com/inkline/INK-AvailabilityService/pkg/dbmetrics"
	"github.com/inkline/INK-AvailabilityService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с расписаниями провайдеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает расписание провайдера
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"provider_id",
		"timezone",
		"work_schedule",
		"created_at",
		"updated_at",
	).
		From("provider_schedules").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.ProviderSchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ProviderID,
		&schedule.Timezone,
		&schedule.WorkSchedule,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// Upsert создает или обновляет расписание провайдера
// work_schedule хранится как jsonb в той же слабо типизированной форме,
// которую терпит domain.NormalizeWorkSchedule
func (r *Repository) Upsert(ctx context.Context, schedule *domain.ProviderSchedule) (*domain.ProviderSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_schedules").
		Columns(
			"provider_id",
			"timezone",
			"work_schedule",
		).
		Values(
			schedule.ProviderID,
			schedule.Timezone,
			[]byte(schedule.WorkSchedule),
		).
		Suffix(`ON CONFLICT (provider_id) DO UPDATE
			SET timezone = EXCLUDED.timezone,
			    work_schedule = EXCLUDED.work_schedule,
			    updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}
