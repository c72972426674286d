package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	ledger := NewLedger(repo, nil,
		WithLocation(london),
		WithClock(fixedClock(time.Date(2024, 7, 1, 8, 5, 42, 0, time.UTC))))

	visit, err := ledger.Create(ctx, "C1", "Left samples")
	require.NoError(t, err)

	assert.NotEmpty(t, visit.ID)
	assert.Equal(t, "2024-07-01", visit.Date)
	assert.Equal(t, "09:05", visit.Time)
	assert.Equal(t, models.ZeroTotal, visit.TotalPrice)
	assert.False(t, visit.Completed)
	assert.Empty(t, visit.Products)

	stored, err := repo.GetVisit(ctx, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, visit, stored)
}

func TestCreateValidation(t *testing.T) {
	ledger := NewLedger(memory.NewRepository(), nil)

	tests := []struct {
		name, code, note string
	}{
		{name: "empty note", code: "C1", note: ""},
		{name: "blank note", code: "C1", note: "   \n"},
		{name: "empty customer", code: "", note: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Create(context.Background(), tt.code, tt.note)
			assert.True(t, errors.Is(err, models.ErrValidation))
		})
	}
}

func TestListForCustomerOrdering(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	seed := []models.Visit{
		{CustomerCode: "C1", Date: "2024-01-01", Time: "09:00", Note: "morning"},
		{CustomerCode: "C1", Date: "2024-01-01", Time: "14:00", Note: "afternoon"},
		{CustomerCode: "C1", Date: "2024-01-01", Time: "", Note: "untimed"},
		{CustomerCode: "C1", Date: "2023-12-31", Time: "23:59", Note: "new year eve"},
		{CustomerCode: "C1", Date: "2024-01-02", Time: "00:00", Note: "next day"},
		{CustomerCode: "C2", Date: "2025-01-01", Time: "10:00", Note: "other customer"},
	}
	for _, v := range seed {
		_, err := repo.InsertVisit(ctx, v)
		require.NoError(t, err)
	}

	visits, err := NewLedger(repo, nil).ListForCustomer(ctx, "C1")
	require.NoError(t, err)

	notes := make([]string, 0, len(visits))
	for _, v := range visits {
		notes = append(notes, v.Note)
	}
	assert.Equal(t, []string{"next day", "afternoon", "morning", "untimed", "new year eve"}, notes)
}

func TestSortNewestFirstStableOnTies(t *testing.T) {
	visits := []models.Visit{
		{ID: "a", Date: "2024-01-01", Time: "10:00"},
		{ID: "b", Date: "2024-01-01", Time: "10:00"},
		{ID: "c", Date: "not-a-date"},
		{ID: "d", Date: "2024-01-01", Time: "10:00"},
	}

	SortNewestFirst(visits)

	ids := []string{visits[0].ID, visits[1].ID, visits[2].ID, visits[3].ID}
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids)
}

func TestToggleCompleted(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	ledger := NewLedger(repo, nil)

	visit, err := ledger.Create(ctx, "C1", "note")
	require.NoError(t, err)

	toggled, err := ledger.ToggleCompleted(ctx, visit.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	fetched, err := ledger.Get(ctx, visit.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Completed)

	toggled, err = ledger.ToggleCompleted(ctx, visit.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestToggleCompletedMissingVisit(t *testing.T) {
	_, err := NewLedger(memory.NewRepository(), nil).ToggleCompleted(context.Background(), "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListForDate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	for _, v := range []models.Visit{
		{CustomerCode: "C1", Date: "2024-03-05", Time: "09:00"},
		{CustomerCode: "C2", Date: "2024-03-05", Time: "11:00"},
		{CustomerCode: "C3", Date: "2024-03-06", Time: "11:00"},
	} {
		_, err := repo.InsertVisit(ctx, v)
		require.NoError(t, err)
	}

	visits, err := NewLedger(repo, nil).ListForDate(ctx, time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, "C2", visits[0].CustomerCode)
}
