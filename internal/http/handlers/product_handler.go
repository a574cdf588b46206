package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "apparelstock/internal/log"
	"apparelstock/internal/services"
	"apparelstock/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Products.List(c.UserContext())
	if err != nil {
		return respondErr(c, "product.list", err)
	}
	return c.JSON(ps)
}

// GET /products/categories and the legacy /products/tags
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Products.Categories(c.UserContext())
	if err != nil {
		return respondErr(c, "product.categories", err)
	}
	return c.JSON(cats)
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "product.get", err)
	}
	return c.JSON(p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req validate.CreateProductRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "product.create", err)
	}
	p, err := h.Products.Create(c.UserContext(), req.Product())
	if err != nil {
		return respondErr(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /products/:id/stock and the legacy /products/:id/quantity
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req validate.StockRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "product.stock.update", err)
	}
	p, err := h.Products.UpdateStock(c.UserContext(), id, req.Value())
	if err != nil {
		return respondErr(c, "product.stock.update", err)
	}
	applog.Audit(c, "product.stock.update", map[string]any{"id": id, "stock": p.Stock})
	return c.JSON(p)
}

// PATCH /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req validate.UpdateProductRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "product.update", err)
	}
	p, err := h.Products.Update(c.UserContext(), id, req.Patch())
	if err != nil {
		return respondErr(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return c.JSON(p)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	res, err := h.Products.Delete(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.JSON(res)
}
