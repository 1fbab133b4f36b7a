package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/GunarsK-portfolio/inventory-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates a file-backed SQLite database in a temp dir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "inventory.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// =============================================================================
// UserRepository Tests
// =============================================================================

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	user := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash", IsAdmin: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.True(t, byEmail.IsAdmin)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}))

	err := repo.Create(ctx, &models.User{Name: "Other", Email: "ana@x.com", PasswordHash: "h"})
	assert.True(t, errors.Is(err, ErrConstraintViolation), "got %v", err)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.FindByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

// =============================================================================
// ProductRepository Tests
// =============================================================================

func TestProductRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	product := &models.Product{Name: "Tornillo", Code: "T-1", Quantity: 10, Location: "A1"}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotZero(t, product.ID)

	byCode, err := repo.FindByCode(ctx, "T-1")
	require.NoError(t, err)
	assert.Equal(t, product.ID, byCode.ID)
	assert.Equal(t, 10, byCode.Quantity)
	assert.Equal(t, "A1", byCode.Location)

	byID, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", byID.Name)
}

func TestProductRepository_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.Product{Name: "A", Code: "DUP"}))

	err := repo.Create(ctx, &models.Product{Name: "B", Code: "DUP"})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductRepository_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	for _, code := range []string{"C", "A", "B"} {
		require.NoError(t, repo.Create(ctx, &models.Product{Name: code, Code: code}))
	}

	products, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "C", products[0].Code)
	assert.Equal(t, "B", products[2].Code)
}

func TestProductRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	product := &models.Product{Name: "Tuerca", Code: "N-1", Quantity: 5, Location: "B2"}
	require.NoError(t, repo.Create(ctx, product))

	t.Run("zero values are written", func(t *testing.T) {
		product.Quantity = 0
		product.Location = ""
		require.NoError(t, repo.Update(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.Quantity)
		assert.Equal(t, "", found.Location)
	})

	t.Run("missing product", func(t *testing.T) {
		err := repo.Update(ctx, &models.Product{ID: 999, Name: "x", Code: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("code collision", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Product{Name: "Other", Code: "N-2"}))
		product.Code = "N-2"
		err := repo.Update(ctx, product)
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})
}

func TestProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	keep := &models.Product{Name: "Keep", Code: "K"}
	drop := &models.Product{Name: "Drop", Code: "D"}
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))

	require.NoError(t, repo.Delete(ctx, drop.ID))
	_, err := repo.FindByID(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestProductRepository_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	product := &models.Product{Name: "Arandela", Code: "W-1", Quantity: 3}
	require.NoError(t, repo.Create(ctx, product))

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx ProductRepository) error {
		p, err := tx.FindByID(ctx, product.ID)
		if err != nil {
			return err
		}
		p.Quantity = 100
		if err := tx.Update(ctx, p); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)
}
