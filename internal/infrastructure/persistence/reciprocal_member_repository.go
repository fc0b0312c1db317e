package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/clubgate/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReciprocalMemberRepository implements ReciprocalMemberRepository using GORM
type GormReciprocalMemberRepository struct {
	db *gorm.DB
}

// NewGormReciprocalMemberRepository creates a new GormReciprocalMemberRepository
func NewGormReciprocalMemberRepository(db *gorm.DB) *GormReciprocalMemberRepository {
	return &GormReciprocalMemberRepository{db: db}
}

// FindByID finds a reciprocal member by ID
func (r *GormReciprocalMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.ReciprocalMember, error) {
	var model models.ReciprocalMemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMembershipNumber finds a member by partner club and membership number
func (r *GormReciprocalMemberRepository) FindByMembershipNumber(ctx context.Context, partnerClub, membershipNumber string) (*visitor.ReciprocalMember, error) {
	var model models.ReciprocalMemberModel
	if err := r.db.WithContext(ctx).
		Where("partner_club = ? AND membership_number = ?", partnerClub, membershipNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLapsed returns active memberships whose validity has passed
func (r *GormReciprocalMemberRepository) FindLapsed(ctx context.Context, asOf time.Time) ([]visitor.ReciprocalMember, error) {
	var memberModels []models.ReciprocalMemberModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND valid_until < ?", visitor.ReciprocalStatusActive, asOf).
		Order("valid_until ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}

	return reciprocalMembersToDomain(memberModels), nil
}

// FindAll finds all reciprocal members matching the filter
func (r *GormReciprocalMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]visitor.ReciprocalMember, error) {
	var memberModels []models.ReciprocalMemberModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReciprocalMemberModel{}), filter)

	if err := query.Find(&memberModels).Error; err != nil {
		return nil, err
	}

	return reciprocalMembersToDomain(memberModels), nil
}

// Save creates or updates a reciprocal member
func (r *GormReciprocalMemberRepository) Save(ctx context.Context, member *visitor.ReciprocalMember) error {
	model := models.ReciprocalMemberModelFromDomain(member)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a reciprocal member
func (r *GormReciprocalMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReciprocalMemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reciprocal members matching the filter
func (r *GormReciprocalMemberRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReciprocalMemberModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReciprocalMemberRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, ReciprocalMemberSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReciprocalMemberRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR partner_club ILIKE ? OR membership_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "partner_club":
			query = query.Where("partner_club = ?", value)
		}
	}

	return query
}

func reciprocalMembersToDomain(memberModels []models.ReciprocalMemberModel) []visitor.ReciprocalMember {
	members := make([]visitor.ReciprocalMember, len(memberModels))
	for i, model := range memberModels {
		members[i] = *model.ToDomain()
	}
	return members
}

// Ensure GormReciprocalMemberRepository implements ReciprocalMemberRepository
var _ visitor.ReciprocalMemberRepository = (*GormReciprocalMemberRepository)(nil)
