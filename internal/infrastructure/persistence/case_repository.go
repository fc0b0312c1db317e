package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCaseRepository implements CaseRepository using GORM
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GormCaseRepository
func NewGormCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{db: db}
}

// FindByID finds a case by its ID
func (r *GormCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.Case, error) {
	var model models.CaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCaseNumber finds a case by its case number
func (r *GormCaseRepository) FindByCaseNumber(ctx context.Context, caseNumber string) (*casework.Case, error) {
	var model models.CaseModel
	if err := r.db.WithContext(ctx).First(&model, "case_number = ?", caseNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus finds cases in a given lifecycle state
func (r *GormCaseRepository) FindByStatus(ctx context.Context, status casework.CaseStatus, filter shared.Filter) ([]casework.Case, error) {
	var caseModels []models.CaseModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CaseModel{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&caseModels).Error; err != nil {
		return nil, err
	}

	return casesToDomain(caseModels), nil
}

// FindWithHearingsBetween finds cases with a hearing scheduled in [from, to)
func (r *GormCaseRepository) FindWithHearingsBetween(ctx context.Context, from, to time.Time) ([]casework.Case, error) {
	var caseModels []models.CaseModel
	if err := r.db.WithContext(ctx).
		Where("next_hearing_date >= ? AND next_hearing_date < ?", from, to).
		Order("next_hearing_date ASC").
		Find(&caseModels).Error; err != nil {
		return nil, err
	}

	return casesToDomain(caseModels), nil
}

// FindAll finds all cases matching the filter
func (r *GormCaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]casework.Case, error) {
	var caseModels []models.CaseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CaseModel{}), filter)

	if err := query.Find(&caseModels).Error; err != nil {
		return nil, err
	}

	return casesToDomain(caseModels), nil
}

// Save creates or updates a case
func (r *GormCaseRepository) Save(ctx context.Context, c *casework.Case) error {
	model := models.CaseModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a case
func (r *GormCaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CaseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts cases matching the filter
func (r *GormCaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CaseModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, CaseSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("case_number ILIKE ? OR client_name ILIKE ? OR opposing_party ILIKE ? OR court ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "assigned_lawyer":
			query = query.Where("assigned_lawyer = ?", value)
		}
	}

	return query
}

func casesToDomain(caseModels []models.CaseModel) []casework.Case {
	cases := make([]casework.Case, len(caseModels))
	for i, model := range caseModels {
		cases[i] = *model.ToDomain()
	}
	return cases
}

// Ensure GormCaseRepository implements CaseRepository
var _ casework.CaseRepository = (*GormCaseRepository)(nil)
