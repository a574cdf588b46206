package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparelstock/internal/domain"
)

func seedMaterial(t *testing.T, ta *testApp, name string, qty, pack int, tags ...string) domain.Material {
	t.Helper()
	m, err := ta.materials.Create(context.Background(), domain.Material{
		Name: name, Color: "Navy", Size: "L", Quantity: qty, PackSize: pack, Tags: tags,
	})
	require.NoError(t, err)
	return m
}

func seedOrder(t *testing.T, ta *testApp, from, delivery string, status domain.OrderStatus) domain.Order {
	t.Helper()
	o, err := ta.orders.Create(context.Background(), domain.Order{
		OrderFrom: from, ContactInfo: from + "@shop.test", Description: "restock",
		Quantity: 5, ScheduledDelivery: delivery, Status: status,
	})
	require.NoError(t, err)
	return o
}

func TestDashboardRedirect(t *testing.T) {
	ta := newTestApp(t)
	code, _ := do(t, ta.app, http.MethodGet, "/dashboard", "", "")
	assert.Equal(t, http.StatusFound, code)
}

func TestMaterialsPageRendersAndEscapes(t *testing.T) {
	ta := newTestApp(t)
	seedMaterial(t, ta, "<script>alert(1)</script>", 20, 5, "Shirts")
	seedMaterial(t, ta, "Polo", 2, 10, "Shirts", "Summer")
	seedMaterial(t, ta, "Scarf", 9, 3, "Winter")

	code, body := do(t, ta.app, http.MethodGet, "/dashboard/materials", "", "")
	require.Equal(t, http.StatusOK, code)
	page := string(body)
	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.Contains(t, page, "2 (low)")
	assert.Equal(t, 1, strings.Count(page, "(low)"))
	assert.Contains(t, page, `href="/dashboard/materials?sort=name"`)

	code, body = do(t, ta.app, http.MethodGet, "/dashboard/materials?tag=Winter&tag=Summer", "", "")
	require.Equal(t, http.StatusOK, code)
	page = string(body)
	assert.Contains(t, page, "Polo")
	assert.Contains(t, page, "Scarf")
	assert.NotContains(t, page, "&lt;script&gt;")

	code, body = do(t, ta.app, http.MethodGet, "/dashboard/materials?q=sca", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Scarf")
	assert.NotContains(t, string(body), "Polo")
}

func TestMaterialsPageSortLinkCycles(t *testing.T) {
	ta := newTestApp(t)
	seedMaterial(t, ta, "Polo", 2, 10)

	_, body := do(t, ta.app, http.MethodGet, "/dashboard/materials?sort=name", "", "")
	assert.Contains(t, string(body), `href="/dashboard/materials?sort=quantity"`)

	_, body = do(t, ta.app, http.MethodGet, "/dashboard/materials?sort=quantity&q=po", "", "")
	assert.Contains(t, string(body), `href="/dashboard/materials?q=po"`)
}

func TestStepMaterialClampsAtZero(t *testing.T) {
	ta := newTestApp(t)
	m := seedMaterial(t, ta, "Polo", 2, 10)

	code, _ := doForm(t, ta.app, "/dashboard/materials/1/step", "delta=10")
	require.Equal(t, http.StatusFound, code)
	got, err := ta.materials.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	code, _ = doForm(t, ta.app, "/dashboard/materials/1/step", "delta=-50")
	require.Equal(t, http.StatusFound, code)
	got, err = ta.materials.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	code, _ = doForm(t, ta.app, "/dashboard/materials/7/step", "delta=1")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doForm(t, ta.app, "/dashboard/materials/1/step", "delta=lots")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCreateMaterialFromForm(t *testing.T) {
	ta := newTestApp(t)
	ta.materials.Policy = servicesPolicy("Shirts", "Winter")

	form := url.Values{
		"name": {"Cardigan"}, "color": {"Cream"}, "size": {"S"},
		"quantity": {"3"}, "packSize": {"6"}, "tags": {"Winter"},
	}
	code, _ := doForm(t, ta.app, "/dashboard/materials", form.Encode())
	require.Equal(t, http.StatusFound, code)

	ms, err := ta.materials.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, domain.StringList{"Winter"}, ms[0].Tags)
	assert.Nil(t, ms[0].MinQuantity)

	bad := url.Values{"name": {"Cardigan"}, "color": {"Cream"}, "size": {"S"}, "quantity": {"-1"}, "packSize": {"x"}, "tags": {"Silk"}}
	code, body := doForm(t, ta.app, "/dashboard/materials", bad.Encode())
	require.Equal(t, http.StatusBadRequest, code)
	page := string(body)
	assert.Contains(t, page, "packSize must be a whole number")
	assert.Contains(t, page, `class="errors"`)
	// policy choices are offered on the form
	assert.Contains(t, page, `name="tags" value="Shirts"`)
}

func TestOrdersPageFilters(t *testing.T) {
	ta := newTestApp(t)
	seedOrder(t, ta, "Acme", "2026-11-01T08:00:00Z", domain.StatusCreated)
	seedOrder(t, ta, "Birch", "2026-11-03T23:30:00Z", domain.StatusShipped)
	seedOrder(t, ta, "Cobalt", "2026-11-02T12:00:00Z", domain.StatusCancelled)

	code, body := do(t, ta.app, http.MethodGet, "/dashboard/orders", "", "")
	require.Equal(t, http.StatusOK, code)
	page := string(body)
	assert.Contains(t, page, "Acme")
	assert.Contains(t, page, "Birch")
	assert.NotContains(t, page, "Cobalt", "cancelled orders are hidden by default")

	_, body = do(t, ta.app, http.MethodGet, "/dashboard/orders?status=CANCELLED", "", "")
	assert.Contains(t, string(body), "Cobalt")
	assert.NotContains(t, string(body), "Acme")

	_, body = do(t, ta.app, http.MethodGet, "/dashboard/orders?from=2026-11-03&to=2026-11-03", "", "")
	assert.Contains(t, string(body), "Birch")
	assert.NotContains(t, string(body), "Acme")

	_, body = do(t, ta.app, http.MethodGet, "/dashboard/orders?q=ACME", "", "")
	assert.Contains(t, string(body), "Acme")
	assert.NotContains(t, string(body), "Birch")

	_, body = do(t, ta.app, http.MethodGet, "/dashboard/orders?status=BOGUS&from=someday", "", "")
	assert.Contains(t, string(body), "Acme")
}

func TestOrderStatusAndDeleteFromDashboard(t *testing.T) {
	ta := newTestApp(t)
	o := seedOrder(t, ta, "Acme", "2026-11-01T08:00:00Z", domain.StatusCreated)

	code, _ := doForm(t, ta.app, "/dashboard/orders/1/status", "status=PROCESSING")
	require.Equal(t, http.StatusFound, code)
	got, err := ta.orders.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	code, _ = doForm(t, ta.app, "/dashboard/orders/1/status", "status=LOST")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doForm(t, ta.app, "/dashboard/orders/1/delete", "")
	require.Equal(t, http.StatusFound, code)
	left, err := ta.orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDashboardLoadFailureOffersRetry(t *testing.T) {
	store := &countingStore{err: errReset}
	app := newStoreApp(t, store)

	code, body := do(t, app, http.MethodGet, "/dashboard/materials?q=tee", "", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	page := string(body)
	assert.Contains(t, page, "Failed to load materials")
	assert.Contains(t, page, `href="/dashboard/materials?q=tee"`)
	assert.NotContains(t, page, "connection reset")
}
