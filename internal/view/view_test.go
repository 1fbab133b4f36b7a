package view

import (
	"testing"

	"github.com/GunarsK-portfolio/inventory-service/internal/models"
)

func TestFromProduct_IsDetached(t *testing.T) {
	p := &models.Product{ID: 3, Name: "Tornillo", Code: "T-1", Quantity: 10, Location: "A1"}

	v := FromProduct(p)
	p.Quantity = 99
	p.Location = "Z9"

	want := Product{ID: 3, Name: "Tornillo", Code: "T-1", Quantity: 10, Location: "A1"}
	if v != want {
		t.Errorf("FromProduct() = %+v, want %+v", v, want)
	}
}

func TestFromProducts(t *testing.T) {
	if got := FromProducts(nil); got == nil || len(got) != 0 {
		t.Errorf("FromProducts(nil) = %#v, want empty non-nil slice", got)
	}

	got := FromProducts([]models.Product{{ID: 1, Code: "A"}, {ID: 2, Code: "B"}})
	if len(got) != 2 || got[0].Code != "A" || got[1].Code != "B" {
		t.Errorf("FromProducts() = %+v", got)
	}
}

func TestFromUser_OmitsHash(t *testing.T) {
	u := &models.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: "secret", IsAdmin: true}

	got := FromUser(u)
	want := User{ID: 1, Name: "Ana", Email: "ana@x.com", IsAdmin: true}
	if got != want {
		t.Errorf("FromUser() = %+v, want %+v", got, want)
	}
}
