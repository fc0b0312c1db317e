package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCase finds tasks attached to a case
func (r *GormTaskRepository) FindByCase(ctx context.Context, caseID uuid.UUID, filter shared.Filter) ([]casework.Task, error) {
	var taskModels []models.TaskModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TaskModel{}).Where("case_id = ?", caseID),
		filter,
	)

	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return tasksToDomain(taskModels), nil
}

// FindOverdue returns live tasks past due that have not been reminded yet
func (r *GormTaskRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]casework.Task, error) {
	var taskModels []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status IN ? AND reminder_sent = ?",
			asOf, []casework.TaskStatus{casework.TaskStatusTodo, casework.TaskStatusInProgress}, false).
		Order("due_date ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return tasksToDomain(taskModels), nil
}

// FindAll finds all tasks matching the filter
func (r *GormTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]casework.Task, error) {
	var taskModels []models.TaskModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TaskModel{}), filter)

	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return tasksToDomain(taskModels), nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, task *casework.Task) error {
	model := models.TaskModelFromDomain(task)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TaskModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tasks matching the filter
func (r *GormTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.TaskModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, TaskSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTaskRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR details ILIKE ? OR assignee ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "case_id":
			query = query.Where("case_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "assignee":
			query = query.Where("assignee = ?", value)
		case "overdue":
			if fmt.Sprint(value) == "true" {
				query = query.Where("due_date IS NOT NULL AND due_date < ? AND status IN ?",
					time.Now(), []casework.TaskStatus{casework.TaskStatusTodo, casework.TaskStatusInProgress})
			}
		}
	}

	return query
}

func tasksToDomain(taskModels []models.TaskModel) []casework.Task {
	tasks := make([]casework.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks
}

// Ensure GormTaskRepository implements TaskRepository
var _ casework.TaskRepository = (*GormTaskRepository)(nil)
