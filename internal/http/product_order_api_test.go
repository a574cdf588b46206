package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparelstock/internal/domain"
	"apparelstock/internal/services"
)

var errReset = errors.New("connection reset by peer")

func servicesPolicy(values ...string) services.TagPolicy { return services.NewTagPolicy(values) }

const hoodie = `{"name":"Hoodie","description":"Fleece","stock":12,"categories":["Tops","Winter"],"sizes":["S","M"],"colors":["Grey"]}`

func TestProductRoutesAndAliases(t *testing.T) {
	ta := newTestApp(t)

	code, body := doJSON(t, ta.app, http.MethodPost, "/products", hoodie)
	require.Equal(t, http.StatusCreated, code, "body=%s", body)
	p := decode[domain.Product](t, body)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	code, body = doJSON(t, ta.app, http.MethodPatch, "/products/1/stock", `{"stock":3}`)
	require.Equal(t, http.StatusOK, code, "body=%s", body)
	assert.Equal(t, 3, decode[domain.Product](t, body).Stock)

	code, body = doJSON(t, ta.app, http.MethodPatch, "/products/1/quantity", `{"quantity":8}`)
	require.Equal(t, http.StatusOK, code, "body=%s", body)
	assert.Equal(t, 8, decode[domain.Product](t, body).Stock)

	code, body = doJSON(t, ta.app, http.MethodPatch, "/products/1/stock", `{}`)
	assert.Equal(t, http.StatusBadRequest, code, "body=%s", body)

	_, cats := doJSON(t, ta.app, http.MethodGet, "/products/categories", "")
	_, tags := doJSON(t, ta.app, http.MethodGet, "/products/tags", "")
	assert.JSONEq(t, `["Tops","Winter"]`, string(cats))
	assert.JSONEq(t, string(cats), string(tags))

	code, body = doJSON(t, ta.app, http.MethodPatch, "/products/1", `{"description":"Heavy fleece"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Heavy fleece", decode[domain.Product](t, body).Description)

	code, body = doJSON(t, ta.app, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Product 1 deleted successfully", decode[domain.DeleteResult](t, body).Message)

	code, _ = doJSON(t, ta.app, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateOrderScenario(t *testing.T) {
	ta := newTestApp(t)

	code, body := doJSON(t, ta.app, http.MethodPost, "/orders",
		`{"orderFrom":"Acme","contactInfo":"ops@acme.test","description":"50 tees","quantity":50,"scheduledDelivery":"2026-11-01T10:00:00+02:00"}`)
	require.Equal(t, http.StatusCreated, code, "body=%s", body)
	o := decode[domain.Order](t, body)
	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, domain.StatusCreated, o.Status)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
	assert.Equal(t, "2026-11-01T08:00:00Z", o.ScheduledDelivery)

	code, body = doJSON(t, ta.app, http.MethodPatch, "/orders/1/status", `{"status":"SHIPPED"}`)
	require.Equal(t, http.StatusOK, code, "body=%s", body)
	shipped := decode[domain.Order](t, body)
	assert.Equal(t, domain.StatusShipped, shipped.Status)
	assert.Greater(t, shipped.UpdatedAt, o.UpdatedAt)

	code, body = doJSON(t, ta.app, http.MethodPatch, "/orders/1/status", `{"status":"LOST"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "status")

	code, body = doJSON(t, ta.app, http.MethodPatch, "/orders/1", `{"quantity":60}`)
	require.Equal(t, http.StatusOK, code, "body=%s", body)
	assert.Equal(t, 60, decode[domain.Order](t, body).Quantity)

	code, body = doJSON(t, ta.app, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]domain.Order](t, body), 1)

	code, body = doJSON(t, ta.app, http.MethodDelete, "/orders/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order 1 deleted successfully", decode[domain.DeleteResult](t, body).Message)

	code, _ = doJSON(t, ta.app, http.MethodGet, "/orders/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOrderValidation(t *testing.T) {
	ta := newTestApp(t)
	cases := map[string]string{
		"zero quantity": `{"orderFrom":"a","contactInfo":"b","description":"c","quantity":0,"scheduledDelivery":"2026-11-01T10:00:00Z"}`,
		"bad date":      `{"orderFrom":"a","contactInfo":"b","description":"c","quantity":1,"scheduledDelivery":"next tuesday"}`,
		"bad status":    `{"orderFrom":"a","contactInfo":"b","description":"c","quantity":1,"scheduledDelivery":"2026-11-01T10:00:00Z","status":"LOST"}`,
		"missing from":  `{"contactInfo":"b","description":"c","quantity":1,"scheduledDelivery":"2026-11-01T10:00:00Z"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			code, resp := doJSON(t, ta.app, http.MethodPost, "/orders", body)
			assert.Equal(t, http.StatusBadRequest, code, "body=%s", resp)
		})
	}
	_, body := doJSON(t, ta.app, http.MethodGet, "/orders", "")
	assert.JSONEq(t, `[]`, string(body))
}
