package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Apparel Stock"
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

// renderError shows a failure page with a retry link back to the same URL.
func renderError(c *fiber.Ctx, status int, msg string) error {
	retry := c.OriginalURL()
	if c.Method() != fiber.MethodGet {
		retry = c.Get(fiber.HeaderReferer, "/dashboard/materials")
	}
	c.Status(status)
	return render(c, "error", fiber.Map{"Title": "Something went wrong", "Message": msg, "Retry": retry})
}

func queryMulti(c *fiber.Ctx, key string) []string {
	return nonEmpty(c.Context().QueryArgs().PeekMulti(key))
}

func formMulti(c *fiber.Ctx, key string) []string {
	return nonEmpty(c.Context().PostArgs().PeekMulti(key))
}

func nonEmpty(vals [][]byte) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(string(v)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
