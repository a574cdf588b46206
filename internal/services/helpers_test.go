package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"apparelstock/internal/domain"
	"apparelstock/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(context.Background(), ":memory:", "test-key")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
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

var errBoom = errors.New("connection reset by peer")

// failingMaterialStore fails every call and counts them.
type failingMaterialStore struct {
	err   error
	calls int
}

func (f *failingMaterialStore) List(context.Context) ([]domain.Material, error) {
	f.calls++
	return nil, f.err
}
func (f *failingMaterialStore) Get(context.Context, int64) (domain.Material, error) {
	f.calls++
	return domain.Material{}, f.err
}
func (f *failingMaterialStore) Create(context.Context, domain.Material) (domain.Material, error) {
	f.calls++
	return domain.Material{}, f.err
}
func (f *failingMaterialStore) UpdateQuantity(context.Context, int64, int, string) (domain.Material, error) {
	f.calls++
	return domain.Material{}, f.err
}
func (f *failingMaterialStore) Update(context.Context, int64, domain.MaterialPatch, string) (domain.Material, error) {
	f.calls++
	return domain.Material{}, f.err
}
func (f *failingMaterialStore) Delete(context.Context, int64) error {
	f.calls++
	return f.err
}
func (f *failingMaterialStore) TagLists(context.Context) ([]domain.StringList, error) {
	f.calls++
	return nil, f.err
}
