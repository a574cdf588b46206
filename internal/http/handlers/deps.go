package handlers

import (
	"apparelstock/internal/config"
	"apparelstock/internal/repos"
	"apparelstock/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	MaterialHandler  *MaterialHandler
	ProductHandler   *ProductHandler
	OrderHandler     *OrderHandler
	DashboardHandler *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	materials := services.NewMaterialService(repos.NewMaterialRepo(db), services.NewTagPolicy(cfg.AllowedTags))
	products := services.NewProductService(repos.NewProductRepo(db), services.NewTagPolicy(cfg.AllowedCategories))
	orders := services.NewOrderService(repos.NewOrderRepo(db))
	return NewDepsFromServices(materials, products, orders)
}

// NewDepsFromServices wires handlers over already built services, so tests
// can swap in fake stores or a fixed clock.
func NewDepsFromServices(m *services.MaterialService, p *services.ProductService, o *services.OrderService) *Deps {
	return &Deps{
		MaterialHandler:  &MaterialHandler{Materials: m},
		ProductHandler:   &ProductHandler{Products: p},
		OrderHandler:     &OrderHandler{Orders: o},
		DashboardHandler: &DashboardHandler{Materials: m, Orders: o},
	}
}
