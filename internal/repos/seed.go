package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	applog "apparelstock/internal/log"
)

// SeedIfEmpty loads demo materials, products and orders into empty tables.
// Tables that already hold rows are left alone. It reports how many rows it
// inserted per table.
func SeedIfEmpty(ctx context.Context, db *sqlx.DB, now string) (map[string]int, error) {
	inserted := map[string]int{}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	empty := func(table string) (bool, error) {
		var n int
		if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
			return false, err
		}
		return n == 0, nil
	}

	if ok, err := empty("materials"); err != nil {
		return nil, err
	} else if ok {
		rows := []struct {
			name, color, size string
			qty, pack         int
			tags              string
		}{
			{"Classic Crew Tee", "Black", "M", 24, 12, `["Blanks","Dark"]`},
			{"Classic Crew Tee", "White", "L", 6, 12, `["Blanks","Neutral"]`},
			{"Garden Hoodie", "Sage", "XL", 3, 6, `["Floral Designs"]`},
			{"Neon Tank", "Lime", "S", 0, 10, `["Bright"]`},
			{"Tote Bag", "Natural", "One Size", 40, 20, `["Blanks","Neutral"]`},
		}
		for _, m := range rows {
			if _, err := tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO materials(name, color, size, quantity, pack_size, tags, image_url, min_quantity, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, NULL, NULL, ?, ?)`),
				m.name, m.color, m.size, m.qty, m.pack, m.tags, now, now); err != nil {
				return nil, err
			}
		}
		inserted["materials"] = len(rows)
	}

	if ok, err := empty("products"); err != nil {
		return nil, err
	} else if ok {
		rows := []struct {
			name, desc, cats, sizes, colors string
			stock                           int
		}{
			{"Everyday Tee", "Heavyweight cotton tee", `["Tees","Blanks"]`, `["S","M","L","XL"]`, `["Black","White"]`, 48},
			{"Wildflower Hoodie", "Fleece hoodie with floral print", `["Hoodies","Floral Designs"]`, `["M","L"]`, `["Sage"]`, 9},
		}
		for _, p := range rows {
			if _, err := tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO products(name, description, stock, image, categories, sizes, colors, created_at, updated_at)
				VALUES (?, ?, ?, NULL, ?, ?, ?, ?, ?)`),
				p.name, p.desc, p.stock, p.cats, p.sizes, p.colors, now, now); err != nil {
				return nil, err
			}
		}
		inserted["products"] = len(rows)
	}

	if ok, err := empty("orders"); err != nil {
		return nil, err
	} else if ok {
		rows := []struct {
			from, contact, desc, when, status string
			qty                               int
		}{
			{"Riverside Cafe", "orders@riverside.example", "Staff tees, black, mixed sizes", "2026-11-02T15:00:00Z", "RECEIVED", 30},
			{"Hill Street Market", "555-0142", "Floral hoodies for the spring stall", "2026-11-20T10:00:00Z", "CREATED", 12},
			{"Lakeside Run Club", "club@lakeside.example", "Neon tanks with club logo", "2026-10-28T09:30:00Z", "PROCESSING", 50},
		}
		for _, o := range rows {
			if _, err := tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO orders(order_from, contact_info, description, quantity, scheduled_delivery, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
				o.from, o.contact, o.desc, o.qty, o.when, o.status, now, now); err != nil {
				return nil, err
			}
		}
		inserted["orders"] = len(rows)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	applog.Info(nil, "store.seed", map[string]any{"inserted": inserted})
	return inserted, nil
}
