package eventrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	uniqueViolation = "23505"

	// ActiveTripIndex allows at most one open event per trip.
	ActiveTripIndex = "ux_off_route_events_active_trip"
)

// ActiveTripIndexSQL creates ActiveTripIndex. AutoMigrate cannot express
// partial indexes, so it is executed separately by the migration.
func ActiveTripIndexSQL() string {
	names := make([]string, 0, len(offroute.ActiveStatuses()))
	for _, s := range offroute.ActiveStatuses() {
		names = append(names, "'"+s.String()+"'")
	}
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON off_route_events (trip_id) WHERE warning_status IN (%s)",
		ActiveTripIndex, strings.Join(names, ", "),
	)
}

// GormEventRepository implements ports.OffRouteEventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Add(ctx context.Context, event *offroute.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewVersionIsInvalidError("off-route event", fmt.Errorf(
				"trip %s already has an active event", event.TripID().String()))
		}
		return errors.Wrap(err, "insert off-route event")
	}
	return nil
}

// Update writes every column when the stored version still equals the
// event's version, then advances the event's version.
func (r *GormEventRepository) Update(ctx context.Context, event *offroute.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewVersionIsInvalidError("off-route event", pgErr)
		}
		return errors.Wrap(result.Error, "update off-route event")
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("off-route event", fmt.Errorf(
			"event %s is no longer at version %d", event.ID().String(), expected))
	}

	event.AdvanceVersion()
	return nil
}

func (r *GormEventRepository) Get(ctx context.Context, id kernel.UUID) (*offroute.Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EventDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("off-route event", id.String())
		}
		return nil, errors.Wrap(err, "select off-route event")
	}

	return toDomain(dto)
}

func (r *GormEventRepository) GetActiveByTrip(ctx context.Context, tripID kernel.UUID) (*offroute.Event, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	var dto EventDTO
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND warning_status IN ?", tripID.Google(), activeStatusNames()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select active off-route event")
	}

	return toDomain(dto)
}

func (r *GormEventRepository) GetAllActive(ctx context.Context) ([]*offroute.Event, error) {
	return r.find(ctx, "off_route_start_time ASC", "warning_status IN ?", activeStatusNames())
}

func (r *GormEventRepository) GetByStatusAndGraceExpiredBefore(
	ctx context.Context,
	status offroute.Status,
	now time.Time,
) ([]*offroute.Event, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "grace_period_expires_at ASC",
		"warning_status = ? AND grace_period_expires_at < ?", status.String(), now)
}

func (r *GormEventRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*offroute.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "off_route_start_time DESC", "order_id = ?", orderID.Google())
}

func (r *GormEventRepository) find(ctx context.Context, order string, query string, args ...any) ([]*offroute.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order(order).Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "select off-route events")
	}

	events := make([]*offroute.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func activeStatusNames() []string {
	active := offroute.ActiveStatuses()
	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.String())
	}
	return names
}
