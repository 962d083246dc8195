package queries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type GetEventsByOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetEventsByOrderQueryHandler(db *gorm.DB) GetEventsByOrderQueryHandler {
	return GetEventsByOrderQueryHandler{db: db}
}

// Handle returns the order's events newest first, terminal ones included.
func (h GetEventsByOrderQueryHandler) Handle(ctx context.Context, query GetEventsByOrderQuery) ([]EventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(eventViewSelect+`
		WHERE e.order_id = ?
		ORDER BY e.off_route_start_time DESC
	`, query.OrderID().Google()).Rows()
	if err != nil {
		return nil, fmt.Errorf("query events of order %s: %w", query.OrderID(), err)
	}
	defer rows.Close()

	return scanEventViews(rows)
}
