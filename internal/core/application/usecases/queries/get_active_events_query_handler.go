package queries

import (
	"context"
	"fmt"

	"offroute/internal/core/domain/model/offroute"

	"gorm.io/gorm"
)

// GetActiveEventsQueryHandler reads the staff dashboard list, oldest
// deviation first.
type GetActiveEventsQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveEventsQueryHandler(db *gorm.DB) GetActiveEventsQueryHandler {
	return GetActiveEventsQueryHandler{db: db}
}

func (h GetActiveEventsQueryHandler) Handle(ctx context.Context, query GetActiveEventsQuery) ([]EventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(offroute.ActiveStatuses()))
	for _, s := range offroute.ActiveStatuses() {
		statuses = append(statuses, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(eventViewSelect+`
		WHERE e.warning_status IN ?
		ORDER BY e.off_route_start_time DESC
	`, statuses).Rows()
	if err != nil {
		return nil, fmt.Errorf("query active events: %w", err)
	}
	defer rows.Close()

	return scanEventViews(rows)
}
