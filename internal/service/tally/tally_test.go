package tally

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository/memory"
)

func seededStore(t *testing.T, products []models.Product, visit models.Visit) (*memory.Repository, string) {
	t.Helper()
	ctx := context.Background()
	repo := memory.NewRepository()

	_, err := repo.InsertProducts(ctx, products)
	require.NoError(t, err)

	id, err := repo.InsertVisit(ctx, visit)
	require.NoError(t, err)
	return repo, id
}

var catalogueFixture = []models.Product{
	{Code: "A1", Description: "Tomato Sauce", UnitPrice: "2.50"},
	{Code: "B2", Description: "Olive Oil", UnitPrice: "6.75"},
	{Code: "C3", Description: "Penne", UnitPrice: "0.99"},
}

func TestApplyCount(t *testing.T) {
	base := []models.TallyEntry{{ProductCode: "A1", Count: 1}, {ProductCode: "B2", Count: 2}}

	t.Run("update in place keeps position and length", func(t *testing.T) {
		got := ApplyCount(base, "A1", 5)
		assert.Equal(t, []models.TallyEntry{{ProductCode: "A1", Count: 5}, {ProductCode: "B2", Count: 2}}, got)
	})

	t.Run("append new code", func(t *testing.T) {
		got := ApplyCount(base, "C3", 1)
		require.Len(t, got, 3)
		assert.Equal(t, models.TallyEntry{ProductCode: "C3", Count: 1}, got[2])
	})

	t.Run("zero removes", func(t *testing.T) {
		got := ApplyCount(base, "A1", 0)
		assert.Equal(t, []models.TallyEntry{{ProductCode: "B2", Count: 2}}, got)
	})

	t.Run("zero on absent code is a no-op", func(t *testing.T) {
		assert.Equal(t, base, ApplyCount(base, "Z9", 0))
	})

	t.Run("code match is exact", func(t *testing.T) {
		got := ApplyCount(base, "a1", 3)
		assert.Len(t, got, 3)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		_ = ApplyCount(base, "A1", 9)
		assert.Equal(t, 1, base[0].Count)
	})

	t.Run("duplicates collapse to first", func(t *testing.T) {
		dup := []models.TallyEntry{{ProductCode: "A1", Count: 1}, {ProductCode: "A1", Count: 4}}
		assert.Equal(t, []models.TallyEntry{{ProductCode: "A1", Count: 2}}, ApplyCount(dup, "A1", 2))
	})
}

func TestSetQuantityAppendsThenUpdates(t *testing.T) {
	ctx := context.Background()
	repo, id := seededStore(t, catalogueFixture, models.Visit{CustomerCode: "C1", TotalPrice: models.ZeroTotal})
	svc := NewService(repo, 1, nil)

	res, err := svc.SetQuantity(ctx, id, "A1", "3")
	require.NoError(t, err)
	assert.Equal(t, []models.TallyEntry{{ProductCode: "A1", Count: 3}}, res.Visit.Products)
	assert.Equal(t, "7.50", res.Visit.TotalPrice)

	res, err = svc.SetQuantity(ctx, id, "A1", 4)
	require.NoError(t, err)
	require.Len(t, res.Visit.Products, 1)
	assert.Equal(t, 4, res.Visit.Products[0].Count)
	assert.Equal(t, "10.00", res.Visit.TotalPrice)

	stored, err := repo.GetVisit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Visit, stored)
}

func TestSetQuantityZeroRemovesEntry(t *testing.T) {
	ctx := context.Background()
	repo, id := seededStore(t, catalogueFixture, models.Visit{
		Products:   []models.TallyEntry{{ProductCode: "A1", Count: 3}, {ProductCode: "B2", Count: 1}},
		TotalPrice: "14.25",
	})
	svc := NewService(repo, 1, nil)

	_, err := svc.SetQuantity(ctx, id, "A1", "0")
	require.NoError(t, err)

	stored, err := repo.GetVisit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []models.TallyEntry{{ProductCode: "B2", Count: 1}}, stored.Products)
	assert.Equal(t, 0, stored.CountFor("A1"))
	assert.Equal(t, "6.75", stored.TotalPrice)

	_, err = svc.SetQuantity(ctx, id, "B2", "")
	require.NoError(t, err)

	stored, err = repo.GetVisit(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.Products)
	assert.Equal(t, models.ZeroTotal, stored.TotalPrice)
}

func TestSetQuantityLeavesVisitUntouchedWhenCatalogueFails(t *testing.T) {
	ctx := context.Background()
	repo, id := seededStore(t, catalogueFixture, models.Visit{TotalPrice: models.ZeroTotal})
	svc := NewService(repo, 1, nil)

	repo.SetFailure(errors.New("unavailable"))
	_, err := svc.SetQuantity(ctx, id, "A1", "2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStore))

	repo.SetFailure(nil)
	stored, err := repo.GetVisit(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.Products)
	assert.Equal(t, models.ZeroTotal, stored.TotalPrice)
}

func TestSetQuantityErrors(t *testing.T) {
	ctx := context.Background()
	repo, id := seededStore(t, catalogueFixture, models.Visit{})
	svc := NewService(repo, 1, nil)

	_, err := svc.SetQuantity(ctx, id, "", "1")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.SetQuantity(ctx, "missing", "A1", "1")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestProjection(t *testing.T) {
	ctx := context.Background()
	repo, id := seededStore(t, catalogueFixture, models.Visit{
		Products:   []models.TallyEntry{{ProductCode: "B2", Count: 2}, {ProductCode: "X9", Count: 1}},
		TotalPrice: "13.50",
	})
	svc := NewService(repo, 1, nil)

	lines, err := svc.Projection(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, lines, len(catalogueFixture))

	counts := map[string]int{}
	for _, l := range lines {
		counts[l.Product.Code] = l.Count
	}
	assert.Equal(t, map[string]int{"A1": 0, "B2": 2, "C3": 0}, counts)

	filtered, err := svc.Projection(ctx, id, "OIL")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].Count)

	stored, err := repo.GetVisit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "13.50", stored.TotalPrice)
	assert.Len(t, stored.Products, 2)
}
