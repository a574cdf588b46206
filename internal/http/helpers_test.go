package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"apparelstock/internal/domain"
	"apparelstock/internal/http/handlers"
	applog "apparelstock/internal/log"
	"apparelstock/internal/repos"
	"apparelstock/internal/services"
)

type testApp struct {
	app       *fiber.App
	db        *sqlx.DB
	materials *services.MaterialService
	products  *services.ProductService
	orders    *services.OrderService
}

// steppingClock starts at a fixed instant and moves one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(time.Second)
		return now
	}
}

// newTestApp wires the full app over an in-memory SQLite store.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(context.Background(), ":memory:", "test-key")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	m := services.NewMaterialService(repos.NewMaterialRepo(db), services.NewTagPolicy(nil))
	p := services.NewProductService(repos.NewProductRepo(db), services.NewTagPolicy(nil))
	o := services.NewOrderService(repos.NewOrderRepo(db))
	m.SetClock(steppingClock())
	p.SetClock(steppingClock())
	o.SetClock(steppingClock())

	app := handlers.NewApp(handlers.NewDepsFromServices(m, p, o), "*")
	return &testApp{app: app, db: db, materials: m, products: p, orders: o}
}

// newStoreApp wires the app over a custom material store; the other
// entities get an empty in-memory store.
func newStoreApp(t *testing.T, store services.MaterialStore) *fiber.App {
	t.Helper()
	ta := newTestApp(t)
	m := services.NewMaterialService(store, services.NewTagPolicy(nil))
	return handlers.NewApp(handlers.NewDepsFromServices(m, ta.products, ta.orders), "*")
}

func do(t *testing.T, app *fiber.App, method, path, contentType, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	return do(t, app, method, path, fiber.MIMEApplicationJSON, body)
}

func doForm(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	return do(t, app, fiber.MethodPost, path, fiber.MIMEApplicationForm, body)
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), "body=%s", b)
	return v
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	ReqID  string         `json:"req_id"`
	Status int            `json:"status"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects every JSON event written while fn runs. Access log
// lines from the logger middleware are not JSON and are skipped.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	old := applog.Output()
	applog.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	defer applog.SetOutput(old)

	fn()

	mu.Lock()
	defer mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

// countingStore records calls and fails them with err when set. A panic
// message makes every call panic instead.
type countingStore struct {
	err   error
	panic string
	calls int
	rows  []domain.Material
}

func (f *countingStore) hit() error {
	f.calls++
	if f.panic != "" {
		panic(f.panic)
	}
	return f.err
}

func (f *countingStore) List(context.Context) ([]domain.Material, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.rows, nil
}
func (f *countingStore) Get(context.Context, int64) (domain.Material, error) {
	return domain.Material{}, f.hit()
}
func (f *countingStore) Create(context.Context, domain.Material) (domain.Material, error) {
	return domain.Material{}, f.hit()
}
func (f *countingStore) UpdateQuantity(context.Context, int64, int, string) (domain.Material, error) {
	return domain.Material{}, f.hit()
}
func (f *countingStore) Update(context.Context, int64, domain.MaterialPatch, string) (domain.Material, error) {
	return domain.Material{}, f.hit()
}
func (f *countingStore) Delete(context.Context, int64) error { return f.hit() }
func (f *countingStore) TagLists(context.Context) ([]domain.StringList, error) {
	return nil, f.hit()
}
