package gangsheet_test

import (
	"testing"
	"time"

	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func dims(t *testing.T, w, h float64) kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(w, h)
	require.NoError(t, err)
	return d
}

func newJob(t *testing.T, orderID kernel.UUID, w, h float64) *job.Job {
	t.Helper()
	j, err := job.NewJob(kernel.NewUUID(), job.Attributes{
		OrderID:     orderID,
		Size:        dims(t, w, h),
		ProductType: job.ProductGangSheet,
		Quantity:    1,
		DPI:         job.DefaultDPI,
		Priority:    job.PriorityStandard,
	}, now)
	require.NoError(t, err)
	return j
}

func TestNewBatch_FillRateAndWaste(t *testing.T) {
	// Given jobs of 40 and 60 sq in from two orders on a 10x12 sheet
	a := newJob(t, kernel.NewUUID(), 5, 8)
	b := newJob(t, kernel.NewUUID(), 6, 10)

	// When
	batch, err := gangsheet.NewBatch(kernel.NewUUID(), dims(t, 10, 12), []*job.Job{a, b}, now)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 120.0, batch.TotalArea())
	assert.Equal(t, 100.0, batch.UsedArea())
	assert.InDelta(t, 0.833, batch.FillRate(), 0.001)
	assert.Equal(t, 20.0, batch.WasteArea())
	assert.True(t, batch.MultiOrder())
	assert.Equal(t, 2, batch.OrderCount())
	assert.Equal(t, []kernel.UUID{a.ID(), b.ID()}, batch.JobIDs())
}

func TestNewBatch_OverfilledSheetIsClamped(t *testing.T) {
	orderID := kernel.NewUUID()
	jobs := []*job.Job{newJob(t, orderID, 10, 10), newJob(t, orderID, 10, 10)}

	batch, err := gangsheet.NewBatch(kernel.NewUUID(), dims(t, 10, 12), jobs, now)

	require.NoError(t, err)
	assert.Equal(t, 1.0, batch.FillRate())
	assert.Zero(t, batch.WasteArea())
	assert.False(t, batch.MultiOrder())
	assert.Equal(t, 1, batch.OrderCount())
}

func TestNewBatch_RequiresJobs(t *testing.T) {
	_, err := gangsheet.NewBatch(kernel.NewUUID(), dims(t, 10, 12), nil, now)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestBatch_IsImmutable(t *testing.T) {
	a := newJob(t, kernel.NewUUID(), 5, 8)
	batch, err := gangsheet.NewBatch(kernel.NewUUID(), dims(t, 10, 12), []*job.Job{a}, now)
	require.NoError(t, err)

	ids := batch.JobIDs()
	ids[0] = kernel.NewUUID()

	assert.Equal(t, a.ID(), batch.JobIDs()[0])
}

func TestRestoreBatch(t *testing.T) {
	id := kernel.NewUUID()
	members := []kernel.UUID{kernel.NewUUID()}

	batch, err := gangsheet.RestoreBatch(gangsheet.Snapshot{
		ID:         id,
		Sheet:      dims(t, 22, 24),
		UsedArea:   264,
		FillRate:   0.5,
		OrderCount: 1,
		JobIDs:     members,
		CreatedAt:  now,
	})

	require.NoError(t, err)
	assert.Equal(t, id, batch.ID())
	assert.Equal(t, 0.5, batch.FillRate())
	assert.Equal(t, 264.0, batch.WasteArea())
	assert.Equal(t, members, batch.JobIDs())

	_, err = gangsheet.RestoreBatch(gangsheet.Snapshot{ID: id, Sheet: dims(t, 1, 1), FillRate: 1.5})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestBatch_CompleteIsStampedOnce(t *testing.T) {
	// Given
	batch, err := gangsheet.NewBatch(kernel.NewUUID(), dims(t, 22, 24),
		[]*job.Job{newJob(t, kernel.NewUUID(), 5, 5)}, now)
	require.NoError(t, err)
	require.False(t, batch.IsComplete())

	// When
	first := batch.Complete(now.Add(time.Hour))
	second := batch.Complete(now.Add(2 * time.Hour))

	// Then
	assert.True(t, first)
	assert.False(t, second)
	require.NotNil(t, batch.CompletedAt())
	assert.Equal(t, now.Add(time.Hour), *batch.CompletedAt())
}
