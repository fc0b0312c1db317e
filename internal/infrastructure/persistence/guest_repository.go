package persistence

import (
	"context"
	"errors"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/clubgate/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGuestRepository implements GuestRepository using GORM
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// FindByID finds a guest by its ID
func (r *GormGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Guest, error) {
	var model models.GuestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a guest by its gate code
func (r *GormGuestRepository) FindByCode(ctx context.Context, code string) (*visitor.Guest, error) {
	var model models.GuestModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a guest by phone number
func (r *GormGuestRepository) FindByPhone(ctx context.Context, phone string) (*visitor.Guest, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Phone cannot be empty")
	}
	var model models.GuestModel
	if err := r.db.WithContext(ctx).First(&model, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus finds guests in a given standing
func (r *GormGuestRepository) FindByStatus(ctx context.Context, status visitor.GuestStatus, filter shared.Filter) ([]visitor.Guest, error) {
	var guestModels []models.GuestModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.GuestModel{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&guestModels).Error; err != nil {
		return nil, err
	}

	return guestsToDomain(guestModels), nil
}

// FindAll finds all guests matching the filter
func (r *GormGuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]visitor.Guest, error) {
	var guestModels []models.GuestModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.GuestModel{}), filter)

	if err := query.Find(&guestModels).Error; err != nil {
		return nil, err
	}

	return guestsToDomain(guestModels), nil
}

// Save creates or updates a guest
func (r *GormGuestRepository) Save(ctx context.Context, guest *visitor.Guest) error {
	model := models.GuestModelFromDomain(guest)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a guest
func (r *GormGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GuestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts guests matching the filter
func (r *GormGuestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.GuestModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormGuestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, GuestSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormGuestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR code ILIKE ? OR phone ILIKE ? OR id_number ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

func guestsToDomain(guestModels []models.GuestModel) []visitor.Guest {
	guests := make([]visitor.Guest, len(guestModels))
	for i, model := range guestModels {
		guests[i] = *model.ToDomain()
	}
	return guests
}

// Ensure GormGuestRepository implements GuestRepository
var _ visitor.GuestRepository = (*GormGuestRepository)(nil)
