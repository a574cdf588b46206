package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparelstock/internal/domain"
	"apparelstock/internal/repos"
	"apparelstock/internal/services"
	"apparelstock/internal/validate"
)

func newMaterialService(t *testing.T, policy services.TagPolicy) *services.MaterialService {
	t.Helper()
	svc := services.NewMaterialService(repos.NewMaterialRepo(memdb(t)), policy)
	svc.SetClock(steppingClock())
	return svc
}

func TestMaterialCreateAssignsIDAndNullsMinQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newMaterialService(t, services.TagPolicy{})

	floor := 99
	m, err := svc.Create(ctx, domain.Material{
		ID: 777, Name: "Tee", Color: "Black", Size: "M", Quantity: 5, PackSize: 12,
		Tags: domain.StringList{"Blanks"}, MinQuantity: &floor,
	})
	require.NoError(t, err)
	assert.NotEqual(t, int64(777), m.ID)
	assert.Positive(t, m.ID)
	assert.Nil(t, m.MinQuantity)
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMaterialUpdatesAdvanceUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc := newMaterialService(t, services.TagPolicy{})
	m, err := svc.Create(ctx, domain.Material{Name: "Tee", Color: "Black", Size: "M", Quantity: 5, PackSize: 12})
	require.NoError(t, err)

	q, err := svc.UpdateQuantity(ctx, m.ID, 8)
	require.NoError(t, err)
	assert.Greater(t, q.UpdatedAt, m.UpdatedAt)
	assert.Equal(t, m.CreatedAt, q.CreatedAt)

	// an empty patch still re-stamps
	p, err := svc.Update(ctx, m.ID, domain.MaterialPatch{})
	require.NoError(t, err)
	assert.Greater(t, p.UpdatedAt, q.UpdatedAt)
	assert.Equal(t, 8, p.Quantity)
}

func TestMaterialUpdateQuantityAcceptsNegative(t *testing.T) {
	ctx := context.Background()
	svc := newMaterialService(t, services.TagPolicy{})
	m, err := svc.Create(ctx, domain.Material{Name: "Tee", Color: "Black", Size: "M", Quantity: 5, PackSize: 12})
	require.NoError(t, err)

	out, err := svc.UpdateQuantity(ctx, m.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, -3, out.Quantity)
}

func TestMaterialNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newMaterialService(t, services.TagPolicy{})

	_, err := svc.Get(ctx, 4040)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.UpdateQuantity(ctx, 4040, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.Update(ctx, 4040, domain.MaterialPatch{})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMaterialDeleteMissingIsSuccess(t *testing.T) {
	svc := newMaterialService(t, services.TagPolicy{})
	res, err := svc.Delete(context.Background(), 31)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Material 31 deleted successfully", res.Message)
}

func TestMaterialTagsDistinctByteOrder(t *testing.T) {
	ctx := context.Background()
	svc := newMaterialService(t, services.TagPolicy{})
	for _, tags := range []domain.StringList{{"A", "b"}, {"b", "C"}} {
		_, err := svc.Create(ctx, domain.Material{Name: "x", Color: "c", Size: "s", PackSize: 1, Tags: tags})
		require.NoError(t, err)
	}
	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "b"}, tags)
}

func TestMaterialTagsEmptyStore(t *testing.T) {
	tags, err := newMaterialService(t, services.TagPolicy{}).Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)
}

func TestMaterialTagPolicy(t *testing.T) {
	ctx := context.Background()
	svc := newMaterialService(t, services.NewTagPolicy([]string{"Blanks", "Bright", "Dark", "Floral Designs", "Neutral"}))

	_, err := svc.Create(ctx, domain.Material{Name: "x", Color: "c", Size: "s", PackSize: 1, Tags: domain.StringList{"Dark", "Spooky"}})
	var ve *validate.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields["tags"], `"Spooky"`)

	m, err := svc.Create(ctx, domain.Material{Name: "x", Color: "c", Size: "s", PackSize: 1, Tags: domain.StringList{"Dark"}})
	require.NoError(t, err)

	bad := domain.StringList{"Glitter"}
	_, err = svc.Update(ctx, m.ID, domain.MaterialPatch{Tags: &bad})
	require.True(t, errors.As(err, &ve))
}

func TestMaterialStoreErrorsAreQueryFailed(t *testing.T) {
	ctx := context.Background()
	store := &failingMaterialStore{err: errBoom}
	svc := services.NewMaterialService(store, services.TagPolicy{})

	_, err := svc.List(ctx)
	require.ErrorIs(t, err, services.ErrQueryFailed)
	assert.Equal(t, "query failed: connection reset by peer", err.Error())

	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, services.ErrQueryFailed)
	assert.NotErrorIs(t, err, services.ErrNotFound)

	_, err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, services.ErrQueryFailed)
	_, err = svc.Tags(ctx)
	assert.ErrorIs(t, err, services.ErrQueryFailed)
	assert.Equal(t, 4, store.calls)

	store.err = sql.ErrNoRows
	_, err = svc.Get(ctx, 9)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, "material 9: not found", err.Error())
}

func TestLowStock(t *testing.T) {
	assert.True(t, services.LowStock(domain.Material{Quantity: 11, PackSize: 12}))
	assert.False(t, services.LowStock(domain.Material{Quantity: 12, PackSize: 12}))
	assert.True(t, services.LowStock(domain.Material{Quantity: -3, PackSize: 1}))
}

func TestTagPolicyChoices(t *testing.T) {
	assert.Nil(t, services.TagPolicy{}.Choices())
	assert.NoError(t, services.TagPolicy{}.Check("tags", []string{"anything"}))
	assert.Equal(t, []string{"Bright", "Dark"}, services.NewTagPolicy([]string{"Dark", "Bright"}).Choices())
}
