package models

import "time"

// OrderStatus is one of the five lifecycle states of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on-the-way"
	StatusDelivered OrderStatus = "delivered"
)

// OrderItem is a snapshot of a menu line at the time the order was placed.
type OrderItem struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

// TrackingStep is a customer-facing milestone derived from the order status.
type TrackingStep struct {
	Step      string `json:"step"`
	Completed bool   `json:"completed"`
	Time      string `json:"time,omitempty"`
}

// Order is stored as a single row; items and tracking steps live in JSON
// columns so every lifecycle write touches exactly one record.
type Order struct {
	ID                uint           `json:"-" gorm:"primaryKey"`
	OrderID           string         `json:"id" gorm:"uniqueIndex;not null"`
	UserID            uint           `json:"userId" gorm:"not null;index:idx_orders_user_created,priority:1"`
	RestaurantID      uint           `json:"restaurantId" gorm:"not null;index"`
	RestaurantName    string         `json:"restaurantName" gorm:"not null"`
	Items             []OrderItem    `json:"items" gorm:"serializer:json;not null"`
	Total             float64        `json:"total" gorm:"not null"`
	DeliveryAddress   string         `json:"deliveryAddress" gorm:"not null"`
	EstimatedDelivery string         `json:"estimatedDelivery,omitempty"`
	Status            OrderStatus    `json:"status" gorm:"not null;default:'pending'"`
	TrackingSteps     []TrackingStep `json:"trackingSteps" gorm:"serializer:json"`
	CreatedAt         time.Time      `json:"createdAt" gorm:"index:idx_orders_user_created,priority:2,sort:desc"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Subtotal is the sum of price × quantity over all lines.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
