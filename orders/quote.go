package orders

import (
	"context"
	"errors"
	"fmt"
	"math"

	"food-storefront/apperr"
	"food-storefront/models"

	"gorm.io/gorm"
)

// Pricing holds the checkout fee rules.
type Pricing struct {
	DeliveryFee float64
	GSTPercent  float64
}

type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	GST         float64 `json:"gst"`
	Total       float64 `json:"total"`
}

// ComputeQuote prices items with a flat delivery fee and GST rounded to the
// nearest whole unit.
func ComputeQuote(items []models.OrderItem, deliveryFee, gstPercent float64) Quote {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	gst := math.Round(subtotal * gstPercent / 100)
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		GST:         gst,
		Total:       subtotal + deliveryFee + gst,
	}
}

// Quoter produces advisory checkout totals. Create never recomputes the
// caller's total from it.
type Quoter struct {
	db      *gorm.DB
	pricing Pricing
}

func NewQuoter(db *gorm.DB, pricing Pricing) *Quoter {
	return &Quoter{db: db, pricing: pricing}
}

func (q *Quoter) Quote(ctx context.Context, restaurantID uint, items []models.OrderItem) (*Quote, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("items are required")
	}
	var restaurant models.Restaurant
	if err := q.db.WithContext(ctx).First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}

	fee := q.pricing.DeliveryFee
	if restaurant.DeliveryFee > 0 {
		fee = restaurant.DeliveryFee
	}
	quote := ComputeQuote(items, fee, q.pricing.GSTPercent)
	return &quote, nil
}
