package handlers

import (
	"github.com/gofiber/fiber/v2"

	"apparelstock/internal/domain"
	applog "apparelstock/internal/log"
	"apparelstock/internal/services"
	"apparelstock/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List(c.UserContext())
	if err != nil {
		return respondErr(c, "order.list", err)
	}
	return c.JSON(orders)
}

// GET /orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	o, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "order.get", err)
	}
	return c.JSON(o)
}

// POST /orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req validate.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "order.create", err)
	}
	o, err := h.Orders.Create(c.UserContext(), req.Order())
	if err != nil {
		return respondErr(c, "order.create", err)
	}
	applog.Audit(c, "order.create", map[string]any{
		"id":                 o.ID,
		"order_from":         o.OrderFrom,
		"quantity":           o.Quantity,
		"scheduled_delivery": o.ScheduledDelivery,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req validate.StatusRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "order.status.update", err)
	}
	o, err := h.Orders.UpdateStatus(c.UserContext(), id, domain.OrderStatus(req.Status))
	if err != nil {
		return respondErr(c, "order.status.update", err)
	}
	applog.Audit(c, "order.status.update", map[string]any{"id": id, "status": o.Status})
	return c.JSON(o)
}

// PATCH /orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req validate.UpdateOrderRequest
	if err := bind(c, &req); err != nil {
		return respondErr(c, "order.update", err)
	}
	o, err := h.Orders.Update(c.UserContext(), id, req.Patch())
	if err != nil {
		return respondErr(c, "order.update", err)
	}
	applog.Audit(c, "order.update", map[string]any{"id": id})
	return c.JSON(o)
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	res, err := h.Orders.Delete(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "order.delete", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"id": id})
	return c.JSON(res)
}
