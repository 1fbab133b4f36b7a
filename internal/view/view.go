// Package view builds plain response records from store entities.
//
// Handlers serialize these records only. They are copied while the store
// scope that loaded the entity is still open, so nothing downstream holds a
// store-bound value.
package view

import "github.com/GunarsK-portfolio/inventory-service/internal/models"

// Product is the detached representation of a product.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

// FromProduct copies the renderable fields of p.
func FromProduct(p *models.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Code:     p.Code,
		Quantity: p.Quantity,
		Location: p.Location,
	}
}

// FromProducts copies a list of products. The result is never nil.
func FromProducts(products []models.Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}

// User is the public representation of an account.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// FromUser copies the public fields of u. The password hash is never included.
func FromUser(u *models.User) User {
	return User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}
