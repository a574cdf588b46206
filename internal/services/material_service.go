package services

import (
	"context"
	"fmt"
	"time"

	"apparelstock/internal/domain"
)

// MaterialStore is the storage MaterialService needs. *repos.MaterialRepo
// implements it. Misses are reported as sql.ErrNoRows.
type MaterialStore interface {
	List(ctx context.Context) ([]domain.Material, error)
	Get(ctx context.Context, id int64) (domain.Material, error)
	Create(ctx context.Context, m domain.Material) (domain.Material, error)
	UpdateQuantity(ctx context.Context, id int64, qty int, now string) (domain.Material, error)
	Update(ctx context.Context, id int64, p domain.MaterialPatch, now string) (domain.Material, error)
	Delete(ctx context.Context, id int64) error
	TagLists(ctx context.Context) ([]domain.StringList, error)
}

// clock stamps createdAt/updatedAt. Tests swap nowFunc for a stepping clock.
type clock struct {
	nowFunc func() time.Time
}

// SetClock replaces the time source used for timestamps.
func (c *clock) SetClock(now func() time.Time) { c.nowFunc = now }

func (c *clock) stamp() string {
	now := c.nowFunc
	if now == nil {
		now = time.Now
	}
	return now().UTC().Format(time.RFC3339Nano)
}

type MaterialService struct {
	clock
	Store  MaterialStore
	Policy TagPolicy
}

func NewMaterialService(store MaterialStore, policy TagPolicy) *MaterialService {
	return &MaterialService{clock: clock{nowFunc: time.Now}, Store: store, Policy: policy}
}

func (s *MaterialService) List(ctx context.Context) ([]domain.Material, error) {
	out, err := s.Store.List(ctx)
	if err != nil {
		return nil, storeErr("material.list", "material", 0, err)
	}
	return out, nil
}

func (s *MaterialService) Get(ctx context.Context, id int64) (domain.Material, error) {
	m, err := s.Store.Get(ctx, id)
	if err != nil {
		return domain.Material{}, storeErr("material.get", "material", id, err)
	}
	return m, nil
}

// Create stores m with minQuantity forced to null and both timestamps set
// to the same instant.
func (s *MaterialService) Create(ctx context.Context, m domain.Material) (domain.Material, error) {
	if err := s.Policy.Check("tags", m.Tags); err != nil {
		return domain.Material{}, err
	}
	now := s.stamp()
	m.ID = 0
	m.MinQuantity = nil
	m.CreatedAt, m.UpdatedAt = now, now
	out, err := s.Store.Create(ctx, m)
	if err != nil {
		return domain.Material{}, storeErr("material.create", "material", 0, err)
	}
	return out, nil
}

// UpdateQuantity sets quantity as given. Negative values are stored as-is.
func (s *MaterialService) UpdateQuantity(ctx context.Context, id int64, qty int) (domain.Material, error) {
	out, err := s.Store.UpdateQuantity(ctx, id, qty, s.stamp())
	if err != nil {
		return domain.Material{}, storeErr("material.quantity", "material", id, err)
	}
	return out, nil
}

func (s *MaterialService) Update(ctx context.Context, id int64, p domain.MaterialPatch) (domain.Material, error) {
	if p.Tags != nil {
		if err := s.Policy.Check("tags", *p.Tags); err != nil {
			return domain.Material{}, err
		}
	}
	out, err := s.Store.Update(ctx, id, p, s.stamp())
	if err != nil {
		return domain.Material{}, storeErr("material.update", "material", id, err)
	}
	return out, nil
}

// Delete succeeds whether or not the id existed.
func (s *MaterialService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	if err := s.Store.Delete(ctx, id); err != nil {
		return domain.DeleteResult{}, storeErr("material.delete", "material", id, err)
	}
	return domain.DeleteResult{Success: true, Message: fmt.Sprintf("Material %d deleted successfully", id)}, nil
}

// Tags returns the distinct tags across all materials, recomputed per call.
func (s *MaterialService) Tags(ctx context.Context) ([]string, error) {
	lists, err := s.Store.TagLists(ctx)
	if err != nil {
		return nil, storeErr("material.tags", "material", 0, err)
	}
	return distinct(lists), nil
}

// LowStock reports whether m is below one pack.
func LowStock(m domain.Material) bool { return m.Quantity < m.PackSize }
