package services

import (
	"context"
	"fmt"
	"time"

	"apparelstock/internal/domain"
)

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int, now string) (domain.Product, error)
	Update(ctx context.Context, id int64, p domain.ProductPatch, now string) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
	CategoryLists(ctx context.Context) ([]domain.StringList, error)
}

type ProductService struct {
	clock
	Store  ProductStore
	Policy TagPolicy
}

func NewProductService(store ProductStore, policy TagPolicy) *ProductService {
	return &ProductService{clock: clock{nowFunc: time.Now}, Store: store, Policy: policy}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	out, err := s.Store.List(ctx)
	if err != nil {
		return nil, storeErr("product.list", "product", 0, err)
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return domain.Product{}, storeErr("product.get", "product", id, err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := s.Policy.Check("categories", p.Categories); err != nil {
		return domain.Product{}, err
	}
	now := s.stamp()
	p.ID = 0
	p.CreatedAt, p.UpdatedAt = now, now
	out, err := s.Store.Create(ctx, p)
	if err != nil {
		return domain.Product{}, storeErr("product.create", "product", 0, err)
	}
	return out, nil
}

func (s *ProductService) UpdateStock(ctx context.Context, id int64, stock int) (domain.Product, error) {
	out, err := s.Store.UpdateStock(ctx, id, stock, s.stamp())
	if err != nil {
		return domain.Product{}, storeErr("product.stock", "product", id, err)
	}
	return out, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, p domain.ProductPatch) (domain.Product, error) {
	if p.Categories != nil {
		if err := s.Policy.Check("categories", *p.Categories); err != nil {
			return domain.Product{}, err
		}
	}
	out, err := s.Store.Update(ctx, id, p, s.stamp())
	if err != nil {
		return domain.Product{}, storeErr("product.update", "product", id, err)
	}
	return out, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	if err := s.Store.Delete(ctx, id); err != nil {
		return domain.DeleteResult{}, storeErr("product.delete", "product", id, err)
	}
	return domain.DeleteResult{Success: true, Message: fmt.Sprintf("Product %d deleted successfully", id)}, nil
}

// Categories returns the distinct categories across all products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	lists, err := s.Store.CategoryLists(ctx)
	if err != nil {
		return nil, storeErr("product.categories", "product", 0, err)
	}
	return distinct(lists), nil
}
