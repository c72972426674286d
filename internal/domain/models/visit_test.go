package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordedAt(t *testing.T) {
	at, ok := Visit{Date: "2024-03-01", Time: "14:05"}.RecordedAt()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC), at)

	at, ok = Visit{Date: "2024-03-01"}.RecordedAt()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), at)

	_, ok = Visit{Date: "01/03/2024", Time: "14:05"}.RecordedAt()
	assert.False(t, ok)
}

func TestCountFor(t *testing.T) {
	v := Visit{Products: []TallyEntry{{ProductCode: "A1", Count: 3}}}
	assert.Equal(t, 3, v.CountFor("A1"))
	assert.Zero(t, v.CountFor("a1"))
}

func TestVisitPatchFields(t *testing.T) {
	assert.True(t, VisitPatch{}.IsEmpty())
	assert.Empty(t, VisitPatch{}.Fields())

	done := true
	total := "7.50"
	var cleared []TallyEntry
	patch := VisitPatch{Completed: &done, Products: &cleared, TotalPrice: &total}

	assert.False(t, patch.IsEmpty())
	assert.Equal(t, map[string]any{
		"completed":   true,
		"products":    []TallyEntry{},
		"total_price": "7.50",
	}, patch.Fields())
}

func TestVisitPatchGuardIsNotAField(t *testing.T) {
	expected := []TallyEntry{{ProductCode: "A1", Count: 1}}
	patch := VisitPatch{IfProducts: &expected}

	assert.True(t, patch.IsEmpty())
	assert.Empty(t, patch.Fields())

	got, ok := patch.ExpectedProducts()
	assert.True(t, ok)
	assert.Equal(t, expected, got)

	_, ok = VisitPatch{}.ExpectedProducts()
	assert.False(t, ok)
}
