package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "apparelstock/internal/log"
	"apparelstock/internal/services"
	"apparelstock/internal/validate"
)

type MaterialHandler struct {
	Materials *services.MaterialService
}

// GET /materials
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	ms, err := h.Materials.List(c.UserContext())
	if err != nil {
		return respondErr(c, "material.list", err)
	}
	return c.JSON(ms)
}

// GET /materials/tags
func (h *MaterialHandler) Tags(c *fiber.Ctx) error {
	tags, err := h.Materials.Tags(c.UserContext())
	if err != nil {
		return respondErr(c, "material.tags", err)
	}
	return c.JSON(tags)
}

// GET /materials/:id
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	m, err := h.Materials.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "material.get", err)
	}
	return c.JSON(m)
}

// POST /materials
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var req validate.CreateMaterialRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "material.create", err)
	}
	m, err := h.Materials.Create(c.UserContext(), req.Material())
	if err != nil {
		return respondErr(c, "material.create", err)
	}
	applog.Audit(c, "material.create", map[string]any{"id": m.ID, "name": m.Name, "quantity": m.Quantity})
	return c.Status(fiber.StatusCreated).JSON(m)
}

// PATCH /materials/:id/quantity
func (h *MaterialHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req validate.QuantityRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "material.quantity.update", err)
	}
	m, err := h.Materials.UpdateQuantity(c.UserContext(), id, *req.Quantity)
	if err != nil {
		return respondErr(c, "material.quantity.update", err)
	}
	applog.Audit(c, "material.quantity.update", map[string]any{"id": id, "quantity": m.Quantity})
	return c.JSON(m)
}

// PATCH /materials/:id
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req validate.UpdateMaterialRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "material.update", err)
	}
	m, err := h.Materials.Update(c.UserContext(), id, req.Patch())
	if err != nil {
		return respondErr(c, "material.update", err)
	}
	applog.Audit(c, "material.update", map[string]any{"id": id})
	return c.JSON(m)
}

// DELETE /materials/:id
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	res, err := h.Materials.Delete(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "material.delete", err)
	}
	applog.Audit(c, "material.delete", map[string]any{"id": id})
	return c.JSON(res)
}
