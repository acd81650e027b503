package classroom

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClassroomService/pkg/psqlbuilder"
)

// DBExecutor минимальный интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

var classroomColumns = []string{
	"id",
	"name",
	"description",
	"active",
	"permission",
	"requires_approval",
	"max_time_per_day",
	"assigned_admins",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с аудиториями
// Движок бронирования читает конфигурацию аудитории, изменяет её
// только административный API
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудиторий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает аудиторию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(classroomColumns...).
		From("classrooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	classroom, err := r.scanClassroom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClassroomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan classroom: %v", ErrScanRow, err)
	}

	return classroom, nil
}

// GetAll получает все аудитории, активные первыми
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Classroom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(classroomColumns...).
		From("classrooms").
		OrderBy("active DESC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	classrooms := make([]*domain.Classroom, 0)
	for rows.Next() {
		classroom, err := r.scanClassroom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		classrooms = append(classrooms, classroom)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return classrooms, nil
}

// UpdateConfig обновляет политику бронирования аудитории
func (r *Repository) UpdateConfig(ctx context.Context, id int64, classroom *domain.Classroom) (*domain.Classroom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("classrooms").
		Set("active", classroom.Active).
		Set("permission", classroom.Permission).
		Set("requires_approval", classroom.RequiresApproval).
		Set("max_time_per_day", classroom.MaxTimePerDay).
		Set("assigned_admins", pq.Array(classroom.AssignedAdmins)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrClassroomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - execute update: %v", ErrExecQuery, err)
	}

	classroom.ID = id
	classroom.CreatedAt = createdAt.Time
	classroom.UpdatedAt = updatedAt.Time

	return classroom, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanClassroom(row rowScanner) (*domain.Classroom, error) {
	var classroom domain.Classroom
	var createdAt, updatedAt sql.NullTime
	var admins pq.Int64Array

	err := row.Scan(
		&classroom.ID,
		&classroom.Name,
		&classroom.Description,
		&classroom.Active,
		&classroom.Permission,
		&classroom.RequiresApproval,
		&classroom.MaxTimePerDay,
		&admins,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	classroom.AssignedAdmins = []int64(admins)
	classroom.CreatedAt = createdAt.Time
	classroom.UpdatedAt = updatedAt.Time

	return &classroom, nil
}
