package repository

import (
	"context"
	"fmt"

	"github.com/GunarsK-portfolio/inventory-service/internal/models"
	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	// Transaction runs fn against a repository bound to a single database
	// transaction. The transaction commits when fn returns nil and rolls
	// back on error or panic.
	Transaction(ctx context.Context, fn func(repo ProductRepository) error) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&product).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product by code %s: %w", code, translate(err))
	}
	return &product, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product by id %d: %w", id, translate(err))
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product %s: %w", product.Code, translate(err))
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Select("name", "code", "quantity", "location", "updated_at").
		Updates(product)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update product id %d: %w", product.ID, translate(err))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update product id %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete product id %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete product id %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *productRepository) Transaction(ctx context.Context, fn func(repo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&productRepository{db: tx})
	})
}
