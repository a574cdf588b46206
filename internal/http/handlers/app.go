package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"apparelstock/internal/dashboard"
	applog "apparelstock/internal/log"
	"apparelstock/internal/metrics"
)

const genericFailure = "Something went wrong. Please try again."

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(d *Deps, corsOrigins string) *fiber.App {
	if corsOrigins == "" {
		corsOrigins = "*"
	}
	app := fiber.New(fiber.Config{
		Views:        dashboard.Views(),
		ErrorHandler: errorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: applog.Output(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(metrics.Middleware())

	m := app.Group("/materials")
	m.Get("/", d.MaterialHandler.List)
	m.Get("/tags", d.MaterialHandler.Tags)
	m.Get("/:id", d.MaterialHandler.Get)
	m.Post("/", d.MaterialHandler.Create)
	m.Patch("/:id/quantity", d.MaterialHandler.UpdateQuantity)
	m.Patch("/:id", d.MaterialHandler.Update)
	m.Delete("/:id", d.MaterialHandler.Delete)

	p := app.Group("/products")
	p.Get("/", d.ProductHandler.List)
	p.Get("/categories", d.ProductHandler.Categories)
	p.Get("/tags", d.ProductHandler.Categories)
	p.Get("/:id", d.ProductHandler.Get)
	p.Post("/", d.ProductHandler.Create)
	p.Patch("/:id/stock", d.ProductHandler.UpdateStock)
	p.Patch("/:id/quantity", d.ProductHandler.UpdateStock)
	p.Patch("/:id", d.ProductHandler.Update)
	p.Delete("/:id", d.ProductHandler.Delete)

	o := app.Group("/orders")
	o.Get("/", d.OrderHandler.List)
	o.Get("/:id", d.OrderHandler.Get)
	o.Post("/", d.OrderHandler.Create)
	o.Patch("/:id/status", d.OrderHandler.UpdateStatus)
	o.Patch("/:id", d.OrderHandler.Update)
	o.Delete("/:id", d.OrderHandler.Delete)

	dash := app.Group("/dashboard")
	dash.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard/materials") })
	dash.Get("/materials", d.DashboardHandler.MaterialsPage)
	dash.Post("/materials", d.DashboardHandler.CreateMaterial)
	dash.Post("/materials/:id/step", d.DashboardHandler.StepMaterial)
	dash.Get("/orders", d.DashboardHandler.OrdersPage)
	dash.Post("/orders/:id/status", d.DashboardHandler.UpdateOrderStatus)
	dash.Post("/orders/:id/delete", d.DashboardHandler.DeleteOrder)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", metrics.Handler())

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "not found")
	})
	return app
}

// errorHandler passes client errors through and hides everything else behind
// a generic message.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := genericFailure
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	} else {
		applog.Error(c, "server.error", err, nil)
	}

	if strings.HasPrefix(c.Path(), "/dashboard") {
		c.Status(code)
		if rerr := render(c, "error", fiber.Map{"Title": "Something went wrong", "Message": msg, "Retry": c.OriginalURL()}); rerr != nil {
			return c.Status(code).SendString(msg)
		}
		return nil
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
