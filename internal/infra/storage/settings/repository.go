package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClassroomService/pkg/psqlbuilder"
)

// DBExecutor минимальный интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Глобальные настройки хранятся единственной строкой с фиксированным ID
const settingsRowID = 1

var settingsColumns = []string{
	"operating_start",
	"operating_end",
	"default_max_time_per_day",
	"slot_duration_minutes",
	"updated_at",
	"updated_by",
}

// Repository репозиторий глобальных настроек расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetGlobal получает глобальные настройки расписания
func (r *Repository) GetGlobal(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.Settings
	var updatedAt sql.NullTime
	var updatedBy sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.OperatingStart,
		&settings.OperatingEnd,
		&settings.DefaultMaxTimePerDay,
		&settings.SlotDurationMinutes,
		&updatedAt,
		&updatedBy,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - scan settings: %v", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time
	if updatedBy.Valid {
		settings.UpdatedBy = updatedBy.Int64
	}

	return &settings, nil
}

// Update обновляет глобальные настройки расписания
func (r *Repository) Update(ctx context.Context, settings *domain.Settings, updatedBy int64) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("settings").
		Set("operating_start", settings.OperatingStart).
		Set("operating_end", settings.OperatingEnd).
		Set("default_max_time_per_day", settings.DefaultMaxTimePerDay).
		Set("slot_duration_minutes", settings.SlotDurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", updatedBy).
		Where(squirrel.Eq{"id": settingsRowID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time
	settings.UpdatedBy = updatedBy

	return settings, nil
}
