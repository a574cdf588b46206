package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"apparelstock/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, order_from, contact_info, description, quantity, scheduled_delivery, status, created_at, updated_at`

// List returns every order by id ascending.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+orderCols+` FROM orders ORDER BY id`)
	return out, err
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o, r.db.Rebind(`SELECT `+orderCols+` FROM orders WHERE id = ?`), id)
	return o, err
}

// Create inserts a new order; created_at and updated_at come from o.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	var out domain.Order
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`
	  INSERT INTO orders
	    (order_from, contact_info, description, quantity, scheduled_delivery, status, created_at, updated_at)
	  VALUES
	    (?,          ?,            ?,           ?,        ?,                  ?,      ?,          ?)
	  RETURNING `+orderCols),
		o.OrderFrom, o.ContactInfo, o.Description, o.Quantity, o.ScheduledDelivery, string(o.Status), o.CreatedAt, o.UpdatedAt)
	return out, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, now string) (domain.Order, error) {
	var out domain.Order
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`
		UPDATE orders SET status = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+orderCols), string(status), now, id)
	return out, err
}

func (r *OrderRepo) Update(ctx context.Context, id int64, p domain.OrderPatch, now string) (domain.Order, error) {
	var set assignments
	if p.OrderFrom != nil {
		set.add("order_from", *p.OrderFrom)
	}
	if p.ContactInfo != nil {
		set.add("contact_info", *p.ContactInfo)
	}
	if p.Description != nil {
		set.add("description", *p.Description)
	}
	if p.Quantity != nil {
		set.add("quantity", *p.Quantity)
	}
	if p.ScheduledDelivery != nil {
		set.add("scheduled_delivery", *p.ScheduledDelivery)
	}
	if p.Status != nil {
		set.add("status", string(*p.Status))
	}
	set.add("updated_at", now)

	var out domain.Order
	err := r.db.GetContext(ctx, &out,
		r.db.Rebind(`UPDATE orders SET `+set.sql()+` WHERE id = ? RETURNING `+orderCols),
		append(set.args, id)...)
	return out, err
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM orders WHERE id = ?`), id)
	return err
}
