package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-storefront/apperr"
	"food-storefront/models"
	"food-storefront/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	engine     *Engine
	access     *Access
	user       *models.User
	other      *models.User
	restaurant *models.Restaurant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storetest.Open(t)
	engine := NewEngine(db)
	engine.now = func() time.Time { return time.Date(2026, 3, 14, 19, 5, 0, 0, time.Local) }
	return &fixture{
		db:         db,
		engine:     engine,
		access:     NewAccess(engine),
		user:       storetest.SeedUser(t, db, "asha@example.com"),
		other:      storetest.SeedUser(t, db, "ravi@example.com"),
		restaurant: storetest.SeedRestaurant(t, db, "spice-route"),
	}
}

func (f *fixture) newOrder() NewOrder {
	return NewOrder{
		UserID:         f.user.ID,
		RestaurantID:   f.restaurant.ID,
		RestaurantName: f.restaurant.Name,
		Items: []models.OrderItem{
			{ID: "m1", Name: "Paneer Tikka", Price: 100, Quantity: 1},
			{ID: "m2", Name: "Butter Naan", Price: 50, Quantity: 2},
		},
		Total:           249,
		DeliveryAddress: "12 MG Road, Bengaluru",
	}
}

func (f *fixture) create(t *testing.T) *models.Order {
	t.Helper()
	order, err := f.engine.Create(context.Background(), f.newOrder())
	require.NoError(t, err)
	return order
}

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)

	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, f.user.ID, order.UserID)
	assert.Equal(t, "30-40 min", order.EstimatedDelivery)
	assert.Equal(t, 200.0, order.Subtotal())

	require.Len(t, order.TrackingSteps, 5)
	assert.Equal(t, "Order Placed", order.TrackingSteps[0].Step)
	assert.True(t, order.TrackingSteps[0].Completed)
	assert.Equal(t, "07:05 PM", order.TrackingSteps[0].Time)
	for _, s := range order.TrackingSteps[1:] {
		assert.False(t, s.Completed)
		assert.Empty(t, s.Time)
	}

	stored, err := f.engine.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.TrackingSteps, stored.TrackingSteps)
	assert.Equal(t, order.Items, stored.Items)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		mutate func(*NewOrder)
		kind   apperr.Kind
	}{
		{"no items", func(n *NewOrder) { n.Items = nil }, apperr.KindValidation},
		{"zero quantity", func(n *NewOrder) { n.Items[0].Quantity = 0 }, apperr.KindValidation},
		{"negative price", func(n *NewOrder) { n.Items[1].Price = -1 }, apperr.KindValidation},
		{"negative total", func(n *NewOrder) { n.Total = -5 }, apperr.KindValidation},
		{"blank address", func(n *NewOrder) { n.DeliveryAddress = "  " }, apperr.KindValidation},
		{"unknown user", func(n *NewOrder) { n.UserID = 9999 }, apperr.KindValidation},
		{"unknown restaurant", func(n *NewOrder) { n.RestaurantID = 9999 }, apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.newOrder()
			tt.mutate(&in)
			_, err := f.engine.Create(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestCreateRejectsClosedRestaurant(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(f.restaurant).Update("is_open", false).Error)

	_, err := f.engine.Create(context.Background(), f.newOrder())
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestCreateRejectsRestaurantStoredClosed(t *testing.T) {
	f := newFixture(t)
	closed := &models.Restaurant{SlugID: "shut-kitchen", Name: "Shut Kitchen", IsOpen: false}
	require.NoError(t, f.db.Create(closed).Error)

	var stored models.Restaurant
	require.NoError(t, f.db.First(&stored, closed.ID).Error)
	require.False(t, stored.IsOpen)

	in := f.newOrder()
	in.RestaurantID = closed.ID
	in.RestaurantName = closed.Name
	_, err := f.engine.Create(context.Background(), in)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateAllowsZeroTotal(t *testing.T) {
	f := newFixture(t)
	in := f.newOrder()
	in.Total = 0
	_, err := f.engine.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestTransitionStatusDerivesSteps(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)
	statuses := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOnTheWay,
		models.StatusDelivered,
	}
	for rank, s := range statuses {
		got, err := f.engine.TransitionStatus(context.Background(), order.OrderID, s)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)

		stored, err := f.engine.Get(context.Background(), order.OrderID)
		require.NoError(t, err)
		assert.Equal(t, s, stored.Status)
		for i, step := range stored.TrackingSteps {
			assert.Equal(t, i <= rank, step.Completed, "status %s step %d", s, i)
			assert.Equal(t, i <= rank, step.Time != "", "status %s step %d", s, i)
		}
	}
}

func TestTransitionStatusIsIdempotentOnFlags(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)

	first, err := f.engine.TransitionStatus(context.Background(), order.OrderID, models.StatusPreparing)
	require.NoError(t, err)
	second, err := f.engine.TransitionStatus(context.Background(), order.OrderID, models.StatusPreparing)
	require.NoError(t, err)

	for i := range first.TrackingSteps {
		assert.Equal(t, first.TrackingSteps[i].Completed, second.TrackingSteps[i].Completed)
	}
}

func TestTransitionStatusAcceptsBackwardMove(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)

	_, err := f.engine.TransitionStatus(context.Background(), order.OrderID, models.StatusOnTheWay)
	require.NoError(t, err)
	got, err := f.engine.TransitionStatus(context.Background(), order.OrderID, models.StatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.False(t, got.TrackingSteps[2].Completed)
	assert.Empty(t, got.TrackingSteps[3].Time)
}

func TestTransitionStatusErrors(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)

	_, err := f.engine.TransitionStatus(context.Background(), order.OrderID, "shipped")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.engine.TransitionStatus(context.Background(), "missing", models.StatusConfirmed)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProgressToNextWalksLifecycle(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 249.0, order.Total)

	want := []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOnTheWay,
		models.StatusDelivered,
	}
	var err error
	for _, s := range want {
		order, err = f.engine.ProgressToNext(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, s, order.Status)
	}
	for _, step := range order.TrackingSteps {
		assert.True(t, step.Completed)
	}

	again, err := f.engine.ProgressToNext(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, again.Status)
	assert.Same(t, order, again)
}

func TestIsCancellable(t *testing.T) {
	for s, want := range map[models.OrderStatus]bool{
		models.StatusPending:   true,
		models.StatusConfirmed: true,
		models.StatusPreparing: false,
		models.StatusOnTheWay:  false,
		models.StatusDelivered: false,
	} {
		assert.Equal(t, want, IsCancellable(&models.Order{Status: s}), s)
	}
}

func TestCancelDeletesOrder(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)

	require.NoError(t, f.engine.Cancel(context.Background(), order.OrderID, f.user.ID))

	_, err := f.engine.Get(context.Background(), order.OrderID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCancelConfirmedOrder(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)
	_, err := f.engine.TransitionStatus(context.Background(), order.OrderID, models.StatusConfirmed)
	require.NoError(t, err)

	assert.NoError(t, f.engine.Cancel(context.Background(), order.OrderID, f.user.ID))
}

func TestCancelErrors(t *testing.T) {
	f := newFixture(t)
	order := f.create(t)

	err := f.engine.Cancel(context.Background(), "missing", f.user.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = f.engine.Cancel(context.Background(), order.OrderID, f.other.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.engine.TransitionStatus(context.Background(), order.OrderID, models.StatusPreparing)
	require.NoError(t, err)
	err = f.engine.Cancel(context.Background(), order.OrderID, f.user.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = f.engine.Get(context.Background(), order.OrderID)
	assert.NoError(t, err)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		f.engine.now = func() time.Time { return at }
		ids = append(ids, f.create(t).OrderID)
	}
	otherIn := f.newOrder()
	otherIn.UserID = f.other.ID
	_, err := f.engine.Create(context.Background(), otherIn)
	require.NoError(t, err)

	list, err := f.engine.ListByOwner(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].OrderID)
	assert.Equal(t, ids[1], list[1].OrderID)
	assert.Equal(t, ids[0], list[2].OrderID)
}
