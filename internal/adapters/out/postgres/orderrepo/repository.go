package orderrepo

import (
	"context"
	"errors"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// The *If* methods implement the guarded transitions: each one is a single
// conditional UPDATE whose WHERE clause encodes the required current state.
// Zero rows affected with an existing row means another writer got there
// first, reported as errs.ErrObjectConflict; zero rows with no row at all
// is errs.ErrObjectNotFound. This is what makes concurrent claims on the
// same order resolve to exactly one winner without explicit locking.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Uses Select("*") so that
// fields reset to nil, like a cleared cancellation timestamp, are written
// too rather than skipped as zero values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its public tracking number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllReceived retrieves every order still waiting for a driver,
// oldest first.
func (r *GormOrderRepository) GetAllReceived(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", order.Received.String()).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetInTransitByDriver retrieves the orders the driver is currently delivering.
func (r *GormOrderRepository) GetInTransitByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND assigned_driver_id = ?",
			order.InTransit.String(), driverID.Bytes()).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// HasActiveForPhone reports whether the phone number already has an order
// that is neither delivered nor cancelled.
func (r *GormOrderRepository) HasActiveForPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("customer_phone = ? AND status IN ?", phone,
			[]string{order.Received.String(), order.InTransit.String()}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// AssignIfReceived atomically claims the order for the driver while it is
// still in Received status.
func (r *GormOrderRepository) AssignIfReceived(ctx context.Context, number string, driverID kernel.UUID) (*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	raw := driverID.Bytes()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND status = ?", number, order.Received.String()).
		Updates(map[string]any{
			"status":             order.InTransit.String(),
			"assigned_driver_id": raw,
		})

	return r.afterGuardedWrite(ctx, number, result)
}

// CancelIfActive atomically cancels the order while it has not reached a
// terminal state, stamping the cancellation time.
func (r *GormOrderRepository) CancelIfActive(ctx context.Context, number string, at time.Time) (*order.Order, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND status IN ?", number,
			[]string{order.Received.String(), order.InTransit.String()}).
		Updates(map[string]any{
			"status":       order.Cancelled.String(),
			"cancelled_at": at,
		})

	return r.afterGuardedWrite(ctx, number, result)
}

// DeliverIfInTransit atomically completes the order while it is in
// transit, stamping the delivery time and clearing the tracked location.
func (r *GormOrderRepository) DeliverIfInTransit(ctx context.Context, number string, at time.Time) (*order.Order, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND status = ?", number, order.InTransit.String()).
		Updates(map[string]any{
			"status":       order.Delivered.String(),
			"delivered_at": at,
			"tracked_lat":  nil,
			"tracked_lng":  nil,
			"tracked_at":   nil,
		})

	return r.afterGuardedWrite(ctx, number, result)
}

// RateIfDelivered atomically records the rating while the order is
// delivered and not yet rated.
func (r *GormOrderRepository) RateIfDelivered(ctx context.Context, number string, rating int) (*order.Order, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND status = ? AND rating IS NULL", number, order.Delivered.String()).
		Update("rating", rating)

	return r.afterGuardedWrite(ctx, number, result)
}

// SetTrackedLocation stores the driver's latest fix, but only while the
// order is in transit; fixes arriving after completion are dropped.
func (r *GormOrderRepository) SetTrackedLocation(ctx context.Context, number string, coords kernel.Coordinates, at time.Time) error {
	if err := coords.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND status = ?", number, order.InTransit.String()).
		Updates(map[string]any{
			"tracked_lat": coords.Lat(),
			"tracked_lng": coords.Lng(),
			"tracked_at":  at,
		}).Error
}

// Delete removes an order record entirely.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// afterGuardedWrite turns the outcome of a conditional UPDATE into the
// repository contract: the refreshed aggregate on success, conflict when
// the row exists but the guard did not match, not-found otherwise.
func (r *GormOrderRepository) afterGuardedWrite(ctx context.Context, number string, result *gorm.DB) (*order.Order, error) {
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("number = ?", number).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, errs.NewObjectConflictError("order", number)
	}

	updated, err := r.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(updated.ID(), updated)
	return updated, nil
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
