package persistence

import (
	"context"
	"errors"

	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindByID finds a message by its ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIdempotencyKey finds the message originally recorded under a client key
func (r *GormMessageRepository) FindByIdempotencyKey(ctx context.Context, key string) (*messaging.Message, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Idempotency key cannot be empty")
	}
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus finds messages in a given dispatch state
func (r *GormMessageRepository) FindByStatus(ctx context.Context, status messaging.MessageStatus, filter shared.Filter) ([]messaging.Message, error) {
	var messageModels []models.MessageModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.MessageModel{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	return messagesToDomain(messageModels), nil
}

// FindAwaitingDelivery returns sent messages with a provider message ID,
// oldest first, for the delivery-report poll
func (r *GormMessageRepository) FindAwaitingDelivery(ctx context.Context, limit int) ([]messaging.Message, error) {
	var messageModels []models.MessageModel
	query := r.db.WithContext(ctx).
		Where("status = ? AND provider_message_id <> ''", messaging.MessageStatusSent).
		Order("sent_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	return messagesToDomain(messageModels), nil
}

// FindAll finds all messages matching the filter
func (r *GormMessageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]messaging.Message, error) {
	var messageModels []models.MessageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MessageModel{}), filter)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	return messagesToDomain(messageModels), nil
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, message *messaging.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a message
func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts messages matching the filter
func (r *GormMessageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.MessageModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormMessageRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, MessageSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMessageRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("recipient ILIKE ? OR body ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "provider":
			query = query.Where("provider = ?", value)
		case "guest_id":
			query = query.Where("guest_id = ?", value)
		case "case_id":
			query = query.Where("case_id = ?", value)
		}
	}

	return query
}

func messagesToDomain(messageModels []models.MessageModel) []messaging.Message {
	messages := make([]messaging.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages
}

// Ensure GormMessageRepository implements MessageRepository
var _ messaging.MessageRepository = (*GormMessageRepository)(nil)
