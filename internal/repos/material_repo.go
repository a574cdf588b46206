package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"apparelstock/internal/domain"
)

type MaterialRepo struct{ db *sqlx.DB }

func NewMaterialRepo(db *sqlx.DB) *MaterialRepo { return &MaterialRepo{db: db} }

const materialCols = `id, name, color, size, quantity, pack_size, tags, image_url, min_quantity, created_at, updated_at`

func (r *MaterialRepo) List(ctx context.Context) ([]domain.Material, error) {
	out := []domain.Material{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+materialCols+` FROM materials ORDER BY id`)
	return out, err
}

// Get returns sql.ErrNoRows when no material has the id.
func (r *MaterialRepo) Get(ctx context.Context, id int64) (domain.Material, error) {
	var m domain.Material
	err := r.db.GetContext(ctx, &m, r.db.Rebind(`SELECT `+materialCols+` FROM materials WHERE id = ?`), id)
	return m, err
}

// Create inserts m and returns the stored row. min_quantity is always NULL.
func (r *MaterialRepo) Create(ctx context.Context, m domain.Material) (domain.Material, error) {
	var out domain.Material
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`
		INSERT INTO materials
		  (name, color, size, quantity, pack_size, tags, image_url, min_quantity, created_at, updated_at)
		VALUES
		  (?,    ?,     ?,    ?,        ?,         ?,    ?,         NULL,         ?,          ?)
		RETURNING `+materialCols),
		m.Name, m.Color, m.Size, m.Quantity, m.PackSize, m.Tags, m.ImageURL, m.CreatedAt, m.UpdatedAt)
	return out, err
}

func (r *MaterialRepo) UpdateQuantity(ctx context.Context, id int64, qty int, now string) (domain.Material, error) {
	var out domain.Material
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`
		UPDATE materials SET quantity = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+materialCols), qty, now, id)
	return out, err
}

// Update applies the non-nil fields of p and always re-stamps updated_at.
func (r *MaterialRepo) Update(ctx context.Context, id int64, p domain.MaterialPatch, now string) (domain.Material, error) {
	var set assignments
	if p.Name != nil {
		set.add("name", *p.Name)
	}
	if p.Color != nil {
		set.add("color", *p.Color)
	}
	if p.Size != nil {
		set.add("size", *p.Size)
	}
	if p.Quantity != nil {
		set.add("quantity", *p.Quantity)
	}
	if p.PackSize != nil {
		set.add("pack_size", *p.PackSize)
	}
	if p.Tags != nil {
		set.add("tags", *p.Tags)
	}
	if p.ImageURL != nil {
		set.add("image_url", *p.ImageURL)
	}
	set.add("updated_at", now)

	var out domain.Material
	err := r.db.GetContext(ctx, &out,
		r.db.Rebind(`UPDATE materials SET `+set.sql()+` WHERE id = ? RETURNING `+materialCols),
		append(set.args, id)...)
	return out, err
}

// Delete removes the row if present. A missing id is not an error.
func (r *MaterialRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM materials WHERE id = ?`), id)
	return err
}

// TagLists returns the tags column of every material.
func (r *MaterialRepo) TagLists(ctx context.Context) ([]domain.StringList, error) {
	out := []domain.StringList{}
	err := r.db.SelectContext(ctx, &out, `SELECT tags FROM materials`)
	return out, err
}
