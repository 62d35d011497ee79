// Package orders owns the order lifecycle and the ownership rules around it.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-storefront/apperr"
	"food-storefront/models"
	"food-storefront/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// placedLayout is the time-of-day format stamped on the first step at checkout.
const placedLayout = "03:04 PM"

// NewOrder is the engine-level input for placing an order.
type NewOrder struct {
	UserID          uint
	RestaurantID    uint
	RestaurantName  string
	Items           []models.OrderItem
	Total           float64
	DeliveryAddress string
}

// Engine applies status transitions and derives tracking steps.
// It performs no ownership checks of its own beyond Cancel.
type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// Create persists a new pending order with the first step completed.
func (e *Engine) Create(ctx context.Context, in NewOrder) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, apperr.Validation("item %q: quantity must be at least 1", it.Name)
		}
		if it.Price < 0 {
			return nil, apperr.Validation("item %q: price must not be negative", it.Name)
		}
	}
	if in.Total < 0 {
		return nil, apperr.Validation("total must not be negative")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, apperr.Validation("delivery address is required")
	}

	db := e.db.WithContext(ctx)

	var user models.User
	if err := db.Select("id").First(&user, in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("user %d does not exist", in.UserID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, in.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("restaurant %d does not exist", in.RestaurantID)
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	if !restaurant.IsOpen {
		return nil, apperr.Conflict("restaurant %q is currently closed", restaurant.Name)
	}

	name := in.RestaurantName
	if name == "" {
		name = restaurant.Name
	}

	now := e.now()
	order := models.Order{
		OrderID:           uuid.NewString(),
		UserID:            in.UserID,
		RestaurantID:      restaurant.ID,
		RestaurantName:    name,
		Items:             in.Items,
		Total:             in.Total,
		DeliveryAddress:   in.DeliveryAddress,
		EstimatedDelivery: restaurant.DeliveryTime,
		Status:            models.StatusPending,
		TrackingSteps:     statemachine.TrackingSteps(models.StatusPending, now.Format(placedLayout)),
		CreatedAt:         now,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// Get fetches an order by its caller-visible id.
func (e *Engine) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return e.findOne(ctx, e.db.Where("order_id = ?", orderID))
}

func (e *Engine) getOwned(ctx context.Context, orderID string, owner uint) (*models.Order, error) {
	return e.findOne(ctx, e.db.Where("order_id = ? AND user_id = ?", orderID, owner))
}

func (e *Engine) findOne(ctx context.Context, q *gorm.DB) (*models.Order, error) {
	var order models.Order
	if err := q.WithContext(ctx).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

// ListByOwner returns every order placed by owner, newest first.
func (e *Engine) ListByOwner(ctx context.Context, owner uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := e.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// TransitionStatus moves the order to target and rebuilds its tracking steps
// from scratch. Any canonical status is accepted, including earlier ones;
// concurrent calls resolve last-write-wins.
func (e *Engine) TransitionStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	if !statemachine.IsValid(target) {
		return nil, apperr.Validation("invalid status %q", target)
	}
	order, err := e.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	order.Status = target
	order.TrackingSteps = statemachine.TrackingSteps(target, now.UTC().Format(time.RFC3339))
	order.UpdatedAt = now

	err = e.db.WithContext(ctx).
		Model(order).
		Select("Status", "TrackingSteps", "UpdatedAt").
		Updates(order).Error
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}

// ProgressToNext advances the order one rank. A delivered order is returned unchanged.
func (e *Engine) ProgressToNext(ctx context.Context, order *models.Order) (*models.Order, error) {
	next, ok := statemachine.Next(order.Status)
	if !ok {
		return order, nil
	}
	return e.TransitionStatus(ctx, order.OrderID, next)
}

// IsCancellable reports whether order can still be withdrawn by its owner.
func IsCancellable(order *models.Order) bool {
	return statemachine.IsCancellable(order.Status)
}

// Cancel permanently deletes an owner's order while it is still cancellable.
func (e *Engine) Cancel(ctx context.Context, orderID string, owner uint) error {
	order, err := e.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != owner {
		return apperr.Forbidden("order does not belong to you")
	}
	if !IsCancellable(order) {
		return errNotCancellable
	}

	// The status guard makes the delete fail if the order moved on since the read.
	res := e.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID, statemachine.CancellableStatuses()).
		Delete(&models.Order{})
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errNotCancellable
	}
	return nil
}

var errNotCancellable = apperr.Conflict("order cannot be canceled as it is already being prepared, out for delivery, or delivered")
