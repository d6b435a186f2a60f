package commands_test

import (
	"testing"

	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateGangSheetCommandHandler_PlacesJobsInOrder(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	a := newTestJob(t, orderID, 5, 8)
	b := newTestJob(t, kernel.NewUUID(), 6, 10)

	r := newRepos()
	r.jobs.On("Get", ctx, a.ID()).Return(a, nil)
	r.jobs.On("Get", ctx, b.ID()).Return(b, nil)
	r.sheets.On("Add", ctx, mock.AnythingOfType("*gangsheet.Batch")).Return(nil).Once()
	r.jobs.On("Update", ctx, mock.AnythingOfType("*job.Job")).Return(nil).Twice()
	handler := commands.NewCreateGangSheetCommandHandler(r.factory())
	cmd, err := commands.NewCreateGangSheetCommand(10, 12, []kernel.UUID{a.ID(), b.ID()})
	require.NoError(t, err)

	// When
	batch, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.InDelta(t, 100.0/120.0, batch.FillRate(), 1e-9)
	assert.True(t, batch.MultiOrder())
	assert.Equal(t, 1, a.Position())
	assert.Equal(t, 2, b.Position())
	assert.Equal(t, batch.ID(), *b.BatchID())
	r.uow.AssertCalled(t, "Commit", ctx)
	r.sheets.AssertExpectations(t)
}

func TestCreateGangSheetCommandHandler_UnknownJobFailsWhole(t *testing.T) {
	// Given
	ctx := t.Context()
	known := jobIn(t, job.Queued)
	missing := kernel.NewUUID()

	r := newRepos()
	r.jobs.On("Get", ctx, known.ID()).Return(known, nil)
	r.jobs.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("job", missing))
	handler := commands.NewCreateGangSheetCommandHandler(r.factory())
	cmd, err := commands.NewCreateGangSheetCommand(22, 24, []kernel.UUID{known.ID(), missing})
	require.NoError(t, err)

	// When
	_, err = handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, known.BatchID())
	r.sheets.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}
