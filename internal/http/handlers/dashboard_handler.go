package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"apparelstock/internal/dashboard"
	"apparelstock/internal/domain"
	applog "apparelstock/internal/log"
	"apparelstock/internal/services"
	"apparelstock/internal/validate"
)

// DashboardHandler serves the server-rendered stock and order pages.
type DashboardHandler struct {
	Materials *services.MaterialService
	Orders    *services.OrderService
}

// GET /dashboard/materials
func (h *DashboardHandler) MaterialsPage(c *fiber.Ctx) error {
	return h.materialsPage(c, fiber.StatusOK, nil)
}

func (h *DashboardHandler) materialsPage(c *fiber.Ctx, status int, formErrs map[string]string) error {
	ctx := c.UserContext()
	ms, err := h.Materials.List(ctx)
	if err != nil {
		applog.Error(c, "dashboard.materials.load.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Failed to load materials.")
	}
	inUse, err := h.Materials.Tags(ctx)
	if err != nil {
		applog.Error(c, "dashboard.materials.load.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Failed to load materials.")
	}

	q := dashboard.MaterialQuery{
		Search: strings.TrimSpace(c.Query("q")),
		Tags:   queryMulti(c, "tag"),
		Sort:   dashboard.MaterialSort(c.Query("sort")),
	}
	selected := make(map[string]bool, len(q.Tags))
	next := url.Values{}
	if q.Search != "" {
		next.Set("q", q.Search)
	}
	for _, t := range q.Tags {
		selected[t] = true
		next.Add("tag", t)
	}
	if s := dashboard.NextMaterialSort(q.Sort); s != dashboard.MaterialSortNone {
		next.Set("sort", string(s))
	}

	c.Status(status)
	return render(c, "materials", fiber.Map{
		"Title":        "Stock",
		"Query":        q,
		"Rows":         dashboard.FilterMaterials(ms, q),
		"FilterTags":   inUse,
		"SelectedTags": selected,
		"TagChoices":   dashboard.TagChoices(h.Materials.Policy, inUse),
		"SortNextURL":  "/dashboard/materials?" + next.Encode(),
		"Errors":       formErrs,
	})
}

// POST /dashboard/materials
func (h *DashboardHandler) CreateMaterial(c *fiber.Ctx) error {
	req := validate.CreateMaterialRequest{
		Name:  strings.TrimSpace(c.FormValue("name")),
		Color: strings.TrimSpace(c.FormValue("color")),
		Size:  strings.TrimSpace(c.FormValue("size")),
		Tags:  formMulti(c, "tags"),
	}
	formErrs := map[string]string{}
	if n, err := strconv.Atoi(strings.TrimSpace(c.FormValue("quantity"))); err == nil {
		req.Quantity = &n
	} else {
		formErrs["quantity"] = "must be a whole number"
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.FormValue("packSize"))); err == nil {
		req.PackSize = &n
	} else {
		formErrs["packSize"] = "must be a whole number"
	}
	if img := strings.TrimSpace(c.FormValue("imageUrl")); img != "" {
		req.ImageURL = &img
	}

	err := validate.Struct(req)
	if err == nil && len(formErrs) == 0 {
		var m domain.Material
		m, err = h.Materials.Create(c.UserContext(), req.Material())
		if err == nil {
			applog.Audit(c, "material.create", map[string]any{"id": m.ID, "name": m.Name, "via": "dashboard"})
			return c.Redirect("/dashboard/materials")
		}
	}

	var ve *validate.ValidationError
	if err != nil && !errors.As(err, &ve) {
		applog.Error(c, "dashboard.materials.create.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Could not save the material. Please try again.")
	}
	if ve != nil {
		for k, v := range ve.Fields {
			if _, dup := formErrs[k]; !dup {
				formErrs[k] = v
			}
		}
	}
	applog.Security(c, "validation.fail", map[string]any{"op": "dashboard.material.create", "fields": formErrs})
	return h.materialsPage(c, fiber.StatusBadRequest, formErrs)
}

// POST /dashboard/materials/:id/step
func (h *DashboardHandler) StepMaterial(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	delta, err := strconv.Atoi(strings.TrimSpace(c.FormValue("delta")))
	if !ok || err != nil {
		applog.Security(c, "validation.fail", map[string]any{"op": "dashboard.material.step"})
		return renderError(c, fiber.StatusBadRequest, "Invalid stock adjustment.")
	}
	ctx := c.UserContext()
	m, err := h.Materials.Get(ctx, id)
	if err == nil {
		m, err = h.Materials.UpdateQuantity(ctx, id, dashboard.StepQuantity(m.Quantity, delta))
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		return renderError(c, fiber.StatusNotFound, "That material no longer exists.")
	case err != nil:
		applog.Error(c, "dashboard.materials.step.fail", err, map[string]any{"id": id})
		return renderError(c, fiber.StatusInternalServerError, "Could not update the quantity. Please try again.")
	}
	applog.Audit(c, "material.quantity.update", map[string]any{"id": id, "quantity": m.Quantity, "via": "dashboard"})
	return c.Redirect("/dashboard/materials")
}

// GET /dashboard/orders
func (h *DashboardHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.List(c.UserContext())
	if err != nil {
		applog.Error(c, "dashboard.orders.load.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Failed to load orders.")
	}

	q := dashboard.OrderQuery{
		Search: strings.TrimSpace(c.Query("q")),
		Sort:   dashboard.OrderSort(c.Query("sort")),
	}
	selected := map[string]bool{}
	next := url.Values{}
	for _, s := range queryMulti(c, "status") {
		st := domain.OrderStatus(s)
		if !knownStatus(st) {
			continue
		}
		q.Statuses = append(q.Statuses, st)
		selected[s] = true
		next.Add("status", s)
	}
	from, to := strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to"))
	if t, ok := dashboard.ParseDay(from); ok {
		q.From = t
		next.Set("from", from)
	} else {
		from = ""
	}
	if t, ok := dashboard.ParseDay(to); ok {
		q.To = t
		next.Set("to", to)
	} else {
		to = ""
	}
	if q.Search != "" {
		next.Set("q", q.Search)
	}
	if s := dashboard.NextOrderSort(q.Sort); s != dashboard.OrderSortNone {
		next.Set("sort", string(s))
	}

	return render(c, "orders", fiber.Map{
		"Title":            "Order queue",
		"Rows":             dashboard.FilterOrders(orders, q),
		"Search":           q.Search,
		"Statuses":         domain.OrderStatuses,
		"SelectedStatuses": selected,
		"From":             from,
		"To":               to,
		"Sort":             string(q.Sort),
		"SortNextURL":      "/dashboard/orders?" + next.Encode(),
	})
}

// POST /dashboard/orders/:id/status
func (h *DashboardHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	req := validate.StatusRequest{Status: strings.TrimSpace(c.FormValue("status"))}
	if !ok || validate.Struct(req) != nil {
		applog.Security(c, "validation.fail", map[string]any{"op": "dashboard.order.status", "status": req.Status})
		return renderError(c, fiber.StatusBadRequest, "Invalid order status.")
	}
	o, err := h.Orders.UpdateStatus(c.UserContext(), id, domain.OrderStatus(req.Status))
	switch {
	case errors.Is(err, services.ErrNotFound):
		return renderError(c, fiber.StatusNotFound, "That order no longer exists.")
	case err != nil:
		applog.Error(c, "dashboard.orders.status.fail", err, map[string]any{"id": id})
		return renderError(c, fiber.StatusInternalServerError, "Could not update the order. Please try again.")
	}
	applog.Audit(c, "order.status.update", map[string]any{"id": id, "status": o.Status, "via": "dashboard"})
	return c.Redirect("/dashboard/orders")
}

// POST /dashboard/orders/:id/delete
func (h *DashboardHandler) DeleteOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Unknown order.")
	}
	if _, err := h.Orders.Delete(c.UserContext(), id); err != nil {
		applog.Error(c, "dashboard.orders.delete.fail", err, map[string]any{"id": id})
		return renderError(c, fiber.StatusInternalServerError, "Could not delete the order. Please try again.")
	}
	applog.Audit(c, "order.delete", map[string]any{"id": id, "via": "dashboard"})
	return c.Redirect("/dashboard/orders")
}

func knownStatus(s domain.OrderStatus) bool {
	for _, k := range domain.OrderStatuses {
		if k == s {
			return true
		}
	}
	return false
}
