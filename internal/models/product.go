package models

import "time"

// Product is a stock item stored in the warehouse.
// Code is the external identifier users search by.
type Product struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Code      string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	Location  string    `json:"location" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// All returns every model managed by the service, in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Product{}}
}
