package client

import (
	"sync"

	"apparelstock/internal/domain"
	"apparelstock/internal/validate"
)

// MaterialList is a local copy of the material table. Rows change only after
// the server confirms a mutation, and then take the server's row verbatim.
type MaterialList struct {
	mu   sync.Mutex
	api  *Client
	rows []domain.Material
}

func NewMaterialList(api *Client) *MaterialList { return &MaterialList{api: api} }

// Rows returns a copy of the current rows.
func (l *MaterialList) Rows() []domain.Material {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Material(nil), l.rows...)
}

// Load replaces the rows with a fresh listing. On error the rows are kept.
func (l *MaterialList) Load() error {
	ms, err := l.api.ListMaterials()
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.rows = ms
	l.mu.Unlock()
	return nil
}

func (l *MaterialList) Add(req validate.CreateMaterialRequest) (domain.Material, error) {
	m, err := l.api.CreateMaterial(req)
	if err != nil {
		return domain.Material{}, err
	}
	l.mu.Lock()
	l.rows = append(l.rows, m)
	l.mu.Unlock()
	return m, nil
}

func (l *MaterialList) SetQuantity(id int64, qty int) (domain.Material, error) {
	m, err := l.api.UpdateMaterialQuantity(id, qty)
	if err != nil {
		return domain.Material{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.rows {
		if l.rows[i].ID == m.ID {
			l.rows[i] = m
			return m, nil
		}
	}
	l.rows = append(l.rows, m)
	return m, nil
}

// OrderList is the order queue counterpart of MaterialList.
type OrderList struct {
	mu   sync.Mutex
	api  *Client
	rows []domain.Order
}

func NewOrderList(api *Client) *OrderList { return &OrderList{api: api} }

func (l *OrderList) Rows() []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Order(nil), l.rows...)
}

func (l *OrderList) Load() error {
	orders, err := l.api.ListOrders()
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.rows = orders
	l.mu.Unlock()
	return nil
}

func (l *OrderList) Add(req validate.CreateOrderRequest) (domain.Order, error) {
	o, err := l.api.CreateOrder(req)
	if err != nil {
		return domain.Order{}, err
	}
	l.mu.Lock()
	l.rows = append(l.rows, o)
	l.mu.Unlock()
	return o, nil
}

func (l *OrderList) SetStatus(id int64, status domain.OrderStatus) (domain.Order, error) {
	o, err := l.api.UpdateOrderStatus(id, status)
	if err != nil {
		return domain.Order{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.rows {
		if l.rows[i].ID == o.ID {
			l.rows[i] = o
			return o, nil
		}
	}
	l.rows = append(l.rows, o)
	return o, nil
}

// Delete removes the order locally once the server acknowledges it.
func (l *OrderList) Delete(id int64) error {
	if _, err := l.api.DeleteOrder(id); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.rows[:0]
	for _, o := range l.rows {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	l.rows = kept
	return nil
}
