package models

import "time"

type Restaurant struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	SlugID       string     `json:"slugId" gorm:"uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"not null;index"`
	Image        string     `json:"image"`
	Cuisine      string     `json:"cuisine" gorm:"index"`
	Rating       float64    `json:"rating" gorm:"default:0"`
	DeliveryTime string     `json:"deliveryTime"`
	DeliveryFee  float64    `json:"deliveryFee" gorm:"default:0"`
	MinOrder     float64    `json:"minOrder" gorm:"default:0"`
	IsOpen       bool       `json:"isOpen"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	IsVeg        bool       `json:"isVeg" gorm:"default:false"`
	MenuItems    []MenuItem `json:"menuItems,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// MenuItem refers back to its restaurant for lookup only.
type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SlugID       string    `json:"slugId" gorm:"uniqueIndex;not null"`
	RestaurantID uint      `json:"restaurantId" gorm:"not null;index:idx_menu_restaurant_category,priority:1"`
	Name         string    `json:"name" gorm:"not null;index"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Image        string    `json:"image"`
	Category     string    `json:"category" gorm:"index:idx_menu_restaurant_category,priority:2"`
	IsVegetarian bool      `json:"isVegetarian" gorm:"default:false"`
	IsSpicy      bool      `json:"isSpicy" gorm:"default:false"`
	Allergens    []string  `json:"allergens,omitempty" gorm:"serializer:json"`
	Popular      bool      `json:"popular" gorm:"default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
