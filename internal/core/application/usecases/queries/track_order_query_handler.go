package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// failureMessagesDelimiter separates messages in the flattened text column.
const failureMessagesDelimiter = ","

// TrackOrderQueryHandler resolves tracking ids against the orders table.
// It reads the projection directly and never rehydrates the aggregate.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for order tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle looks up the order behind the tracking id.
// Returns errs.ObjectNotFoundError when the tracking id is unknown.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			status,
			price,
			failure_messages
		FROM orders
		WHERE tracking_id = ?
	`, query.TrackingID().Bytes()).Row()

	var (
		trackingID      uuid.UUID
		status          int
		price           decimal.Decimal
		failureMessages string
	)
	if err := row.Scan(&trackingID, &status, &price, &failureMessages); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError(
				"trackingID", query.TrackingID().String())
		}
		return TrackOrderQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(trackingID[:])
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return TrackOrderQueryResponse{
		TrackingID:      id,
		Status:          order.Status(status).String(),
		Price:           price.StringFixed(2),
		FailureMessages: splitFailureMessages(failureMessages),
	}, nil
}

func splitFailureMessages(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, failureMessagesDelimiter)
	messages := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			messages = append(messages, part)
		}
	}
	return messages
}
