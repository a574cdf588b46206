package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"apparelstock/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, stock, image, categories, sizes, colors, created_at, updated_at`

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+productCols+` FROM products WHERE id = ?`), id)
	return p, err
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`
		INSERT INTO products
		  (name, description, stock, image, categories, sizes, colors, created_at, updated_at)
		VALUES
		  (?,    ?,           ?,     ?,     ?,          ?,     ?,      ?,          ?)
		RETURNING `+productCols),
		p.Name, p.Description, p.Stock, p.Image, p.Categories, p.Sizes, p.Colors, p.CreatedAt, p.UpdatedAt)
	return out, err
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock int, now string) (domain.Product, error) {
	var out domain.Product
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`
		UPDATE products SET stock = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+productCols), stock, now, id)
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, id int64, p domain.ProductPatch, now string) (domain.Product, error) {
	var set assignments
	if p.Name != nil {
		set.add("name", *p.Name)
	}
	if p.Description != nil {
		set.add("description", *p.Description)
	}
	if p.Stock != nil {
		set.add("stock", *p.Stock)
	}
	if p.Image != nil {
		set.add("image", *p.Image)
	}
	if p.Categories != nil {
		set.add("categories", *p.Categories)
	}
	if p.Sizes != nil {
		set.add("sizes", *p.Sizes)
	}
	if p.Colors != nil {
		set.add("colors", *p.Colors)
	}
	set.add("updated_at", now)

	var out domain.Product
	err := r.db.GetContext(ctx, &out,
		r.db.Rebind(`UPDATE products SET `+set.sql()+` WHERE id = ? RETURNING `+productCols),
		append(set.args, id)...)
	return out, err
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	return err
}

// CategoryLists returns the categories column of every product.
func (r *ProductRepo) CategoryLists(ctx context.Context) ([]domain.StringList, error) {
	out := []domain.StringList{}
	err := r.db.SelectContext(ctx, &out, `SELECT categories FROM products`)
	return out, err
}
