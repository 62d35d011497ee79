package orders

import (
	"context"
	"strings"

	"food-storefront/apperr"
	"food-storefront/models"
	"food-storefront/statemachine"
)

// CreateInput is an order request as received from a caller. Total is a
// pointer so an absent field can be told apart from zero.
type CreateInput struct {
	RestaurantID    uint
	RestaurantName  string
	Items           []models.OrderItem
	Total           *float64
	DeliveryAddress string
}

// Access gates every engine call behind the caller's identity. A caller id of
// zero means no session. Lookups are scoped to (orderID, caller) so another
// user's order is indistinguishable from a missing one.
type Access struct {
	engine *Engine
}

func NewAccess(engine *Engine) *Access {
	return &Access{engine: engine}
}

func requireCaller(caller uint) error {
	if caller == 0 {
		return apperr.Unauthorized("unauthorized")
	}
	return nil
}

func (a *Access) List(ctx context.Context, caller uint) ([]models.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return a.engine.ListByOwner(ctx, caller)
}

// Create places an order owned by caller; ownership never comes from the payload.
func (a *Access) Create(ctx context.Context, caller uint, in CreateInput) (*models.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	var missing []string
	if in.RestaurantID == 0 {
		missing = append(missing, "restaurantId")
	}
	if strings.TrimSpace(in.RestaurantName) == "" {
		missing = append(missing, "restaurantName")
	}
	if len(in.Items) == 0 {
		missing = append(missing, "items")
	}
	if in.Total == nil {
		missing = append(missing, "total")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		missing = append(missing, "deliveryAddress")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	return a.engine.Create(ctx, NewOrder{
		UserID:          caller,
		RestaurantID:    in.RestaurantID,
		RestaurantName:  in.RestaurantName,
		Items:           in.Items,
		Total:           *in.Total,
		DeliveryAddress: in.DeliveryAddress,
	})
}

func (a *Access) Get(ctx context.Context, caller uint, orderID string) (*models.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	return a.engine.getOwned(ctx, orderID, caller)
}

// UpdateStatus transitions one of caller's orders to status.
func (a *Access) UpdateStatus(ctx context.Context, caller uint, orderID string, status models.OrderStatus) (*models.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if orderID == "" || status == "" {
		return nil, apperr.Validation("orderId and status are required")
	}
	if !statemachine.IsValid(status) {
		return nil, apperr.Validation("invalid status %q", status)
	}
	order, err := a.engine.getOwned(ctx, orderID, caller)
	if err != nil {
		return nil, err
	}
	return a.engine.TransitionStatus(ctx, order.OrderID, status)
}

// Advance moves one of caller's orders to the next status.
func (a *Access) Advance(ctx context.Context, caller uint, orderID string) (*models.Order, error) {
	order, err := a.Get(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	return a.engine.ProgressToNext(ctx, order)
}

func (a *Access) Cancel(ctx context.Context, caller uint, orderID string) error {
	if _, err := a.Get(ctx, caller, orderID); err != nil {
		return err
	}
	return a.engine.Cancel(ctx, orderID, caller)
}
