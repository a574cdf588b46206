package services

import (
	"context"
	"fmt"
	"time"

	"apparelstock/internal/domain"
)

type OrderStore interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, now string) (domain.Order, error)
	Update(ctx context.Context, id int64, p domain.OrderPatch, now string) (domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type OrderService struct {
	clock
	Store OrderStore
}

func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{clock: clock{nowFunc: time.Now}, Store: store}
}

// List returns all orders by id ascending, cancelled ones included.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	out, err := s.Store.List(ctx)
	if err != nil {
		return nil, storeErr("order.list", "order", 0, err)
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.Order, error) {
	o, err := s.Store.Get(ctx, id)
	if err != nil {
		return domain.Order{}, storeErr("order.get", "order", id, err)
	}
	return o, nil
}

func (s *OrderService) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.Status == "" {
		o.Status = domain.StatusCreated
	}
	now := s.stamp()
	o.ID = 0
	o.CreatedAt, o.UpdatedAt = now, now
	out, err := s.Store.Create(ctx, o)
	if err != nil {
		return domain.Order{}, storeErr("order.create", "order", 0, err)
	}
	return out, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	out, err := s.Store.UpdateStatus(ctx, id, status, s.stamp())
	if err != nil {
		return domain.Order{}, storeErr("order.status", "order", id, err)
	}
	return out, nil
}

func (s *OrderService) Update(ctx context.Context, id int64, p domain.OrderPatch) (domain.Order, error) {
	out, err := s.Store.Update(ctx, id, p, s.stamp())
	if err != nil {
		return domain.Order{}, storeErr("order.update", "order", id, err)
	}
	return out, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	if err := s.Store.Delete(ctx, id); err != nil {
		return domain.DeleteResult{}, storeErr("order.delete", "order", id, err)
	}
	return domain.DeleteResult{Success: true, Message: fmt.Sprintf("Order %d deleted successfully", id)}, nil
}
