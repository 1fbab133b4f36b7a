package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GunarsK-portfolio/inventory-service/internal/audit"
	"github.com/GunarsK-portfolio/inventory-service/internal/metrics"
	"github.com/GunarsK-portfolio/inventory-service/internal/models"
	"github.com/GunarsK-portfolio/inventory-service/internal/repository"
	"github.com/GunarsK-portfolio/inventory-service/internal/view"
)

// UpdateRequest is a self-service stock update. Nil fields are left as they are;
// an empty Quantity also leaves the quantity unchanged.
type UpdateRequest struct {
	Quantity *string
	Location *string
}

// ProductRequest carries every field of a product for admin create and edit.
// Quantity is the raw submitted text; blank means 0.
type ProductRequest struct {
	Name     string
	Code     string
	Quantity string
	Location string
}

// SearchResult is the outcome of a product search.
type SearchResult struct {
	Products []view.Product
	Count    int
}

// ProductService is the inventory use-case layer. Every successful lookup or
// change appends exactly one audit record; failures append none.
type ProductService interface {
	Search(ctx context.Context, code string) (*SearchResult, error)
	View(ctx context.Context, id int64) (*view.Product, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*view.Product, error)
	Create(ctx context.Context, session *Session, req ProductRequest) (*view.Product, error)
	Edit(ctx context.Context, session *Session, id int64, req ProductRequest) (*view.Product, error)
	Delete(ctx context.Context, session *Session, id int64) error
	List(ctx context.Context, session *Session) ([]view.Product, error)
	History(ctx context.Context) ([]audit.Record, error)
}

type productService struct {
	repo    repository.ProductRepository
	audit   audit.Store
	metrics *metrics.Metrics
}

// NewProductService creates a new ProductService instance.
func NewProductService(repo repository.ProductRepository, auditStore audit.Store, m *metrics.Metrics) ProductService {
	return &productService{
		repo:    repo,
		audit:   auditStore,
		metrics: m,
	}
}

func (s *productService) Search(ctx context.Context, code string) (result *SearchResult, err error) {
	defer func() { s.metrics.ObserveOperation("search", outcome(err)) }()

	code = strings.TrimSpace(code)

	var products []models.Product
	if code == "" {
		products, err = s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		product, err := s.repo.FindByCode(ctx, code)
		switch {
		case err == nil:
			products = []models.Product{*product}
		case storeIsNotFound(err):
		default:
			return nil, err
		}
	}

	result = &SearchResult{Products: view.FromProducts(products), Count: len(products)}

	logged := code
	if logged == "" {
		logged = audit.AllCodes
	}
	s.audit.Append(ctx, audit.Record{
		Action:       audit.ActionSearch,
		Code:         logged,
		ResultsCount: strconv.Itoa(result.Count),
	})
	return result, nil
}

func (s *productService) View(ctx context.Context, id int64) (_ *view.Product, err error) {
	defer func() { s.metrics.ObserveOperation("view", outcome(err)) }()

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	v := view.FromProduct(product)

	s.audit.Append(ctx, audit.Record{
		Action:    audit.ActionView,
		ProductID: formatID(v.ID),
		Code:      v.Code,
		Name:      v.Name,
	})
	return &v, nil
}

func (s *productService) Update(ctx context.Context, id int64, req UpdateRequest) (_ *view.Product, err error) {
	defer func() { s.metrics.ObserveOperation("update", outcome(err)) }()

	var before, after view.Product
	err = s.repo.Transaction(ctx, func(tx repository.ProductRepository) error {
		product, err := tx.FindByID(ctx, id)
		if err != nil {
			return storeError(err)
		}
		before = view.FromProduct(product)

		// Quantity is parsed before anything else is applied.
		if req.Quantity != nil && strings.TrimSpace(*req.Quantity) != "" {
			quantity, err := parseQuantity(*req.Quantity)
			if err != nil {
				return err
			}
			product.Quantity = quantity
		}
		if req.Location != nil {
			product.Location = *req.Location
		}

		if err := tx.Update(ctx, product); err != nil {
			return storeError(err)
		}
		after = view.FromProduct(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, changeRecord(audit.ActionUpdate, before, after))
	return &after, nil
}

func (s *productService) Create(ctx context.Context, session *Session, req ProductRequest) (_ *view.Product, err error) {
	defer func() { s.metrics.ObserveOperation("create", outcome(err)) }()

	if !RequireAdmin(session) {
		return nil, ErrAccessDenied
	}

	name, code, err := requiredFields(req)
	if err != nil {
		return nil, err
	}
	quantity, err := parseQuantityOrZero(req.Quantity)
	if err != nil {
		return nil, err
	}

	// The unique index still rejects a concurrent insert that slips
	// between this check and Create.
	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: product code %s", ErrConstraintViolation, code)
	} else if !storeIsNotFound(err) {
		return nil, err
	}

	product := &models.Product{
		Name:     name,
		Code:     code,
		Quantity: quantity,
		Location: req.Location,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, storeError(err)
	}
	v := view.FromProduct(product)

	s.audit.Append(ctx, audit.Record{
		Action:      audit.ActionCreate,
		ProductID:   formatID(v.ID),
		Code:        v.Code,
		Name:        v.Name,
		NewQuantity: strconv.Itoa(v.Quantity),
		NewLocation: v.Location,
	})
	return &v, nil
}

func (s *productService) Edit(ctx context.Context, session *Session, id int64, req ProductRequest) (_ *view.Product, err error) {
	defer func() { s.metrics.ObserveOperation("edit", outcome(err)) }()

	if !RequireAdmin(session) {
		return nil, ErrAccessDenied
	}

	var before, after view.Product
	err = s.repo.Transaction(ctx, func(tx repository.ProductRepository) error {
		product, err := tx.FindByID(ctx, id)
		if err != nil {
			return storeError(err)
		}
		before = view.FromProduct(product)

		name, code, err := requiredFields(req)
		if err != nil {
			return err
		}
		quantity, err := parseQuantityOrZero(req.Quantity)
		if err != nil {
			return err
		}

		product.Name = name
		product.Code = code
		product.Quantity = quantity
		product.Location = req.Location
		if err := tx.Update(ctx, product); err != nil {
			return storeError(err)
		}
		after = view.FromProduct(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, changeRecord(audit.ActionAdminUpdate, before, after))
	return &after, nil
}

func (s *productService) Delete(ctx context.Context, session *Session, id int64) (err error) {
	defer func() { s.metrics.ObserveOperation("delete", outcome(err)) }()

	if !RequireAdmin(session) {
		return ErrAccessDenied
	}

	var deleted view.Product
	err = s.repo.Transaction(ctx, func(tx repository.ProductRepository) error {
		product, err := tx.FindByID(ctx, id)
		if err != nil {
			return storeError(err)
		}
		deleted = view.FromProduct(product)
		return storeError(tx.Delete(ctx, id))
	})
	if err != nil {
		return err
	}

	s.audit.Append(ctx, audit.Record{
		Action:      audit.ActionDelete,
		ProductID:   formatID(deleted.ID),
		Code:        deleted.Code,
		Name:        deleted.Name,
		OldQuantity: strconv.Itoa(deleted.Quantity),
		OldLocation: deleted.Location,
	})
	return nil
}

func (s *productService) List(ctx context.Context, session *Session) ([]view.Product, error) {
	if !RequireAdmin(session) {
		return nil, ErrAccessDenied
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return view.FromProducts(products), nil
}

func (s *productService) History(ctx context.Context) ([]audit.Record, error) {
	records, err := s.audit.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return records, nil
}

func changeRecord(action audit.Action, before, after view.Product) audit.Record {
	return audit.Record{
		Action:      action,
		ProductID:   formatID(after.ID),
		Code:        after.Code,
		Name:        after.Name,
		OldQuantity: strconv.Itoa(before.Quantity),
		NewQuantity: strconv.Itoa(after.Quantity),
		OldLocation: before.Location,
		NewLocation: after.Location,
	}
}

func requiredFields(req ProductRequest) (name, code string, err error) {
	name = strings.TrimSpace(req.Name)
	code = strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return "", "", fmt.Errorf("%w: name and code are required", ErrValidation)
	}
	return name, code, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid quantity %q", ErrValidation, raw)
	}
	return quantity, nil
}

func parseQuantityOrZero(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseQuantity(raw)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func storeIsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
