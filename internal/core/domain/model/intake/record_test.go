package intake_test

import (
	"strings"
	"testing"
	"time"

	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newSlot(t *testing.T, label string, active bool) *intake.Slot {
	t.Helper()
	s, err := intake.NewSlot(kernel.NewUUID(), label, active)
	require.NoError(t, err)
	return s
}

func TestNewRecord(t *testing.T) {
	id := kernel.NewUUID()

	r, err := intake.NewRecord(id, kernel.NewUUID(), " cust-7 ", now)

	require.NoError(t, err)
	assert.Equal(t, intake.StatusPending, r.Status())
	assert.Equal(t, "cust-7", r.OwnerID())
	assert.True(t, strings.HasPrefix(r.Code(), intake.CodePrefix))
	assert.Len(t, r.Code(), len(intake.CodePrefix)+8)
	assert.Equal(t, r.Code(), intake.NormalizeCode(strings.ToLower(r.Code())+" "))
	assert.Nil(t, r.SlotID())
}

func TestRecord_StartProcessingOnlyOnce(t *testing.T) {
	r, err := intake.NewRecord(kernel.NewUUID(), kernel.NewUUID(), "", now)
	require.NoError(t, err)

	assert.True(t, r.StartProcessing())
	assert.Equal(t, intake.StatusProcessing, r.Status())
	assert.False(t, r.StartProcessing())
	assert.Equal(t, intake.StatusProcessing, r.Status())
}

func TestRecord_MarkReady(t *testing.T) {
	// Given
	r, err := intake.NewRecord(kernel.NewUUID(), kernel.NewUUID(), "", now)
	require.NoError(t, err)
	slot := newSlot(t, "A-01", true)

	// When
	err = r.MarkReady(slot, now.Add(time.Hour))

	// Then
	require.NoError(t, err)
	assert.Equal(t, intake.StatusReady, r.Status())
	assert.Equal(t, slot.ID(), *r.SlotID())
	assert.Equal(t, now.Add(time.Hour), *r.ReadyAt())
}

func TestRecord_MarkReadyRejectsCompletedAndMissingSlot(t *testing.T) {
	r, err := intake.NewRecord(kernel.NewUUID(), kernel.NewUUID(), "", now)
	require.NoError(t, err)

	require.ErrorIs(t, r.MarkReady(nil, now), errs.ErrValueIsRequired)

	r.Complete(now)
	require.ErrorIs(t, r.MarkReady(newSlot(t, "A-01", true), now), errs.ErrInvalidTransition)
}

func TestRecord_CompleteStampsOnce(t *testing.T) {
	// Given
	r, err := intake.NewRecord(kernel.NewUUID(), kernel.NewUUID(), "cust-1", now)
	require.NoError(t, err)
	require.NoError(t, r.MarkReady(newSlot(t, "A-01", true), now.Add(time.Hour)))

	// When
	first := r.Complete(now.Add(2 * time.Hour))
	second := r.Complete(now.Add(3 * time.Hour))

	// Then
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, intake.StatusCompleted, r.Status())
	assert.Equal(t, now.Add(2*time.Hour), *r.CompletedAt())
}

func TestStatus_Before(t *testing.T) {
	assert.True(t, intake.StatusPending.Before(intake.StatusReady))
	assert.False(t, intake.StatusCompleted.Before(intake.StatusReady))

	_, err := intake.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLeastLoaded(t *testing.T) {
	a := newSlot(t, "A-02", true)
	b := newSlot(t, "A-01", true)
	c := newSlot(t, "B-01", true)
	off := newSlot(t, "Z-00", false)

	testCases := []struct {
		name     string
		loads    []intake.SlotLoad
		expected *intake.Slot
	}{
		{"fewest wins", []intake.SlotLoad{{a, 3}, {b, 2}, {c, 1}}, c},
		{"tie broken by label", []intake.SlotLoad{{a, 1}, {b, 1}, {c, 4}}, b},
		{"inactive skipped", []intake.SlotLoad{{off, 0}, {a, 5}}, a},
		{"none active", []intake.SlotLoad{{off, 0}}, nil},
		{"empty", nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, intake.LeastLoaded(tc.loads))
		})
	}
}
