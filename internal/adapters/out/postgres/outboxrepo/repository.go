// Package outboxrepo persists outbox messages. Add runs inside the business
// transaction; FetchPending and MarkSent run on the dispatcher's connection
// outside of it.
package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/outbox"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageDTO represents the database row of an outbox message.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"index"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index"`
	Payload     []byte     `gorm:"type:jsonb"`
	CreatedAt   time.Time  `gorm:"index"`
	SentAt      *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add queues a message within the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceErrorWithCause("add outbox message", err)
	}

	return nil
}

// FetchPending retrieves up to limit undelivered messages, oldest first.
// Creation order per aggregate is preserved, so events for the same order
// leave in the order they happened.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("fetch pending outbox messages", err)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkSent records the delivery of the message with the given id.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id = ? AND sent_at IS NULL", id.Bytes()).
		Update("sent_at", time.Now().UTC())
	if result.Error != nil {
		return errs.NewPersistenceErrorWithCause("mark outbox message sent", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}

	return nil
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		EventType:   message.EventType(),
		AggregateID: message.AggregateID().Bytes(),
		Payload:     message.Payload(),
		CreatedAt:   message.CreatedAt(),
		SentAt:      message.SentAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(id, dto.EventType, aggregateID, dto.Payload, dto.CreatedAt, dto.SentAt)
}
