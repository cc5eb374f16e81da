package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityService/pkg/psqlbuilder"
)

var templateColumns = []string{
	"id",
	"business_id",
	"name",
	"status",
	"slot_duration_minutes",
	"capacity_per_slot",
	"weekly_schedule",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый шаблон доступности
func (r *Repository) Create(ctx context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := json.Marshal(tmpl.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - weekly schedule: %v", ErrEncodeSchedule, err)
	}

	query, args, err := psqlbuilder.Insert("availability_templates").
		Columns(
			"business_id",
			"name",
			"status",
			"slot_duration_minutes",
			"capacity_per_slot",
			"weekly_schedule",
		).
		Values(
			tmpl.BusinessID,
			tmpl.Name,
			tmpl.Status,
			tmpl.SlotDurationMinutes,
			tmpl.CapacityPerSlot,
			schedule,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tmpl.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time

	return tmpl, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("availability_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates, err := r.scanTemplates(rows)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrTemplateNotFound
	}

	return templates[0], nil
}

// GetActiveTemplate получает активный шаблон бизнеса для указанной
// длительности слота. Резолвер доступности всегда ищет шаблон по паре
// (бизнес, длительность) - активный шаблон на пару не более одного
func (r *Repository) GetActiveTemplate(ctx context.Context, businessID int64, slotDurationMinutes int) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("availability_templates").
		Where(squirrel.Eq{
			"business_id":           businessID,
			"status":                domain.TemplateStatusActive,
			"slot_duration_minutes": slotDurationMinutes,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates, err := r.scanTemplates(rows)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrTemplateNotFound
	}

	return templates[0], nil
}

// ListByBusiness получает все шаблоны бизнеса
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("availability_templates").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTemplates(rows)
}

// Update частично обновляет шаблон: nil-поля не трогаются
func (r *Repository) Update(ctx context.Context, id int64, update domain.TemplateUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("availability_templates").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
	}
	if update.SlotDurationMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_duration_minutes", *update.SlotDurationMinutes)
	}
	if update.CapacityPerSlot != nil {
		updateBuilder = updateBuilder.Set("capacity_per_slot", *update.CapacityPerSlot)
	}
	if update.WeeklySchedule != nil {
		schedule, err := json.Marshal(*update.WeeklySchedule)
		if err != nil {
			return fmt.Errorf("%w: Update - weekly schedule: %v", ErrEncodeSchedule, err)
		}
		updateBuilder = updateBuilder.Set("weekly_schedule", schedule)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrTemplateNotFound
	}

	return nil
}

// DeactivateActive переводит в inactive активные шаблоны бизнеса с той же
// длительностью слота, кроме указанного. Вызывается перед активацией
// нового шаблона, чтобы не нарушить уникальность активного шаблона
func (r *Repository) DeactivateActive(ctx context.Context, businessID int64, slotDurationMinutes int, exceptID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_templates").
		Set("status", domain.TemplateStatusInactive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"business_id":           businessID,
			"status":                domain.TemplateStatusActive,
			"slot_duration_minutes": slotDurationMinutes,
		}).
		Where(squirrel.NotEq{"id": exceptID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateActive - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeactivateActive - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func (r *Repository) scanTemplates(rows *sql.Rows) ([]*domain.AvailabilityTemplate, error) {
	templates := make([]*domain.AvailabilityTemplate, 0)

	for rows.Next() {
		var tmpl domain.AvailabilityTemplate
		var createdAt, updatedAt sql.NullTime
		var schedule []byte

		err := rows.Scan(
			&tmpl.ID,
			&tmpl.BusinessID,
			&tmpl.Name,
			&tmpl.Status,
			&tmpl.SlotDurationMinutes,
			&tmpl.CapacityPerSlot,
			&schedule,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(schedule, &tmpl.WeeklySchedule); err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - weekly schedule: %v", ErrDecodeSchedule, err)
		}

		tmpl.CreatedAt = createdAt.Time
		tmpl.UpdatedAt = updatedAt.Time

		templates = append(templates, &tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}
