package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/clubgate/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVisitRepository implements VisitRepository using GORM
type GormVisitRepository struct {
	db *gorm.DB
}

// NewGormVisitRepository creates a new GormVisitRepository
func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// FindByID finds a visit by its ID
func (r *GormVisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Visit, error) {
	var model models.VisitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all visits matching the filter
func (r *GormVisitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]visitor.Visit, error) {
	var visitModels []models.VisitModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VisitModel{}), filter)

	if err := query.Find(&visitModels).Error; err != nil {
		return nil, err
	}

	return visitsToDomain(visitModels), nil
}

// FindByGuest finds a guest's visit history
func (r *GormVisitRepository) FindByGuest(ctx context.Context, guestID uuid.UUID, filter shared.Filter) ([]visitor.Visit, error) {
	var visitModels []models.VisitModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.VisitModel{}).Where("guest_id = ?", guestID),
		filter,
	)

	if err := query.Find(&visitModels).Error; err != nil {
		return nil, err
	}

	return visitsToDomain(visitModels), nil
}

// FindOpenVisits returns visits not yet signed out that started before the cutoff
func (r *GormVisitRepository) FindOpenVisits(ctx context.Context, before time.Time) ([]visitor.Visit, error) {
	var visitModels []models.VisitModel
	if err := r.db.WithContext(ctx).
		Where("signed_out_at IS NULL AND signed_in_at < ?", before).
		Order("signed_in_at ASC").
		Find(&visitModels).Error; err != nil {
		return nil, err
	}

	return visitsToDomain(visitModels), nil
}

// CountByHostOnDate counts visits hosted by a member on a given day
func (r *GormVisitRepository) CountByHostOnDate(ctx context.Context, hostMemberNumber string, date time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VisitModel{}).
		Where("host_member_number = ? AND visit_date = ?", hostMemberNumber, visitor.DayOf(date)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByGuestInRange counts a guest's visits with visit_date in [from, to)
func (r *GormVisitRepository) CountByGuestInRange(ctx context.Context, guestID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VisitModel{}).
		Where("guest_id = ? AND visit_date >= ? AND visit_date < ?", guestID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByGuest counts all visits ever recorded for a guest
func (r *GormVisitRepository) CountByGuest(ctx context.Context, guestID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VisitModel{}).
		Where("guest_id = ?", guestID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a visit
func (r *GormVisitRepository) Save(ctx context.Context, visit *visitor.Visit) error {
	model := models.VisitModelFromDomain(visit)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a visit
func (r *GormVisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VisitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts visits matching the filter
func (r *GormVisitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VisitModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormVisitRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, VisitSortFields, "signed_in_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVisitRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("host_member_name ILIKE ? OR host_member_number ILIKE ? OR purpose ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "guest_id":
			query = query.Where("guest_id = ?", value)
		case "host_member_number":
			query = query.Where("host_member_number = ?", value)
		case "visit_date":
			query = query.Where("visit_date = ?", value)
		case "open":
			if fmt.Sprint(value) == "true" {
				query = query.Where("signed_out_at IS NULL")
			} else {
				query = query.Where("signed_out_at IS NOT NULL")
			}
		}
	}

	return query
}

func visitsToDomain(visitModels []models.VisitModel) []visitor.Visit {
	visits := make([]visitor.Visit, len(visitModels))
	for i, model := range visitModels {
		visits[i] = *model.ToDomain()
	}
	return visits
}

// Ensure GormVisitRepository implements VisitRepository
var _ visitor.VisitRepository = (*GormVisitRepository)(nil)
