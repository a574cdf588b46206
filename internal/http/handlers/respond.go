package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "apparelstock/internal/log"
	"apparelstock/internal/services"
	"apparelstock/internal/validate"
)

var errBadBody = errors.New("invalid request body")

// bind decodes the JSON body into dst and runs its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errBadBody
	}
	return validate.Struct(dst)
}

// pathID reads :id. ok is false when the response has already been written.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id", "value": c.Params("id")})
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondErr maps an error kind to its HTTP status. Unknown errors go to the
// app ErrorHandler.
func respondErr(c *fiber.Ctx, action string, err error) error {
	var ve *validate.ValidationError
	switch {
	case errors.Is(err, errBadBody):
		applog.Security(c, "validation.fail", map[string]any{"op": action, "reason": "body"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request_body"})
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"op": action, "fields": ve.Fields})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "fields": ve.Fields})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrQueryFailed):
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return err
}
