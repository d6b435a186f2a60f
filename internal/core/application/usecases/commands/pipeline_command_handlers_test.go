package commands_test

import (
	"errors"
	"testing"

	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	repos      *repos
	orders     *MockOrderSource
	designTool *MockDesignTool
	marketing  *MockMarketing
	publisher  *RecordingPublisher
	steps      *commands.PipelineSteps
	engine     *commands.StatusEngine
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		repos:      newRepos(),
		orders:     new(MockOrderSource),
		designTool: new(MockDesignTool),
		marketing:  new(MockMarketing),
		publisher:  &RecordingPublisher{},
	}
	f.steps = commands.NewPipelineSteps(f.repos.factory(), f.orders, f.designTool, f.publisher, discardLogger())
	f.engine = commands.NewStatusEngine(f.repos.factory(), f.marketing, f.publisher, discardLogger())
	return f
}

func printableOrder(orderID kernel.UUID) order.Order {
	return order.Order{
		ID:      orderID,
		OwnerID: "cust-7",
		Items: []order.LineItem{
			{Title: "Logo transfer", VariantLabel: "12 x 18", Quantity: 2},
		},
	}
}

func notFound(resource string, id any) error {
	return errs.NewObjectNotFoundError(resource, id)
}

func stepStatuses(r commands.PipelineResult) map[string]commands.StepStatus {
	out := make(map[string]commands.StepStatus, len(r.Steps))
	for _, s := range r.Steps {
		out[s.Step] = s.Status
	}
	return out
}

func TestInitiatePipelineCommandHandler_DesignFailureLeavesOtherSteps(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	f := newPipelineFixture()
	f.orders.On("GetOrder", mock.Anything, orderID).Return(printableOrder(orderID), nil)
	f.repos.intakes.On("GetByOrder", mock.Anything, orderID).Return(nil, notFound("intake", orderID))
	f.repos.intakes.On("Add", mock.Anything, mock.AnythingOfType("*intake.Record")).Return(nil).Once()
	f.repos.designs.On("GetByOrder", mock.Anything, orderID).Return(nil, notFound("design", orderID))
	f.designTool.On("CreateArtifact", mock.Anything, orderID).
		Return(ports.ArtifactReceipt{}, errors.New("design tool timeout"))
	f.repos.jobs.On("ListByOrder", mock.Anything, orderID).Return([]*job.Job{}, nil)
	f.repos.jobs.On("Add", mock.Anything, mock.AnythingOfType("*job.Job")).Return(nil).Once()
	f.repos.jobs.On("CountByStatus", mock.Anything, job.Queued).Return(1, nil)

	handler := commands.NewInitiatePipelineCommandHandler(f.steps)
	cmd, err := commands.NewInitiatePipelineCommand(orderID)
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.True(t, result.Failed())
	assert.Equal(t, map[string]commands.StepStatus{
		commands.StepOrder:  commands.StepSucceeded,
		commands.StepIntake: commands.StepSucceeded,
		commands.StepDesign: commands.StepFailed,
		commands.StepJobs:   commands.StepSucceeded,
	}, stepStatuses(result))
	designStep, ok := result.Step(commands.StepDesign)
	require.True(t, ok)
	assert.Contains(t, designStep.Detail, "design tool timeout")
	assert.Equal(t, []string{ports.EventJobCreated, ports.EventQueueDepthChanged}, f.publisher.Types())
	f.repos.designs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.repos.intakes.AssertExpectations(t)
	f.repos.jobs.AssertExpectations(t)
}

func TestInitiatePipelineCommandHandler_OrderUnavailableStillCreatesIntake(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	f := newPipelineFixture()
	f.orders.On("GetOrder", mock.Anything, orderID).Return(order.Order{}, errors.New("storefront down"))
	f.repos.intakes.On("GetByOrder", mock.Anything, orderID).Return(nil, notFound("intake", orderID))
	f.repos.intakes.On("Add", mock.Anything, mock.MatchedBy(func(r *intake.Record) bool {
		return r.OrderID() == orderID && r.OwnerID() == ""
	})).Return(nil).Once()
	f.repos.designs.On("GetByOrder", mock.Anything, orderID).Return(nil, notFound("design", orderID))
	f.designTool.On("CreateArtifact", mock.Anything, orderID).
		Return(ports.ArtifactReceipt{ExternalID: "art-88", Pages: []string{"front", "back"}}, nil)
	f.repos.designs.On("Add", mock.Anything, mock.AnythingOfType("*design.Artifact")).Return(nil).Once()

	handler := commands.NewInitiatePipelineCommandHandler(f.steps)
	cmd, err := commands.NewInitiatePipelineCommand(orderID)
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, map[string]commands.StepStatus{
		commands.StepOrder:  commands.StepFailed,
		commands.StepIntake: commands.StepSucceeded,
		commands.StepDesign: commands.StepSucceeded,
		commands.StepJobs:   commands.StepFailed,
	}, stepStatuses(result))
	f.repos.jobs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.repos.intakes.AssertExpectations(t)
	f.repos.designs.AssertExpectations(t)
}

func TestScanAndProcessCommandHandler_SecondScanChangesNothing(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	record, err := intake.NewRecord(kernel.NewUUID(), orderID, "cust-7", t0)
	require.NoError(t, err)
	artifact, err := design.NewArtifact(kernel.NewUUID(), orderID, "art-1", 1, t0)
	require.NoError(t, err)
	existing := []*job.Job{newTestJob(t, orderID, 12, 18)}

	f := newPipelineFixture()
	f.repos.intakes.On("GetByCode", mock.Anything, record.Code()).Return(record, nil)
	f.repos.intakes.On("GetByOrder", mock.Anything, orderID).Return(record, nil)
	f.repos.intakes.On("Update", mock.Anything, record).Return(nil).Once()
	f.repos.designs.On("GetByOrder", mock.Anything, orderID).Return(artifact, nil)
	f.repos.jobs.On("ListByOrder", mock.Anything, orderID).Return(existing, nil)

	handler := commands.NewScanAndProcessCommandHandler(f.steps)
	cmd, err := commands.NewScanAndProcessCommand(" " + record.Code() + " ")
	require.NoError(t, err)

	// When
	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	second, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	// Then
	assert.Equal(t, commands.StepSucceeded, stepStatuses(first)[commands.StepIntake])
	assert.Equal(t, map[string]commands.StepStatus{
		commands.StepIntake: commands.StepSkipped,
		commands.StepDesign: commands.StepSkipped,
		commands.StepJobs:   commands.StepSkipped,
	}, stepStatuses(second))
	assert.Equal(t, intake.StatusProcessing, record.Status())
	f.repos.intakes.AssertNumberOfCalls(t, "Update", 1)
	f.orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	f.designTool.AssertNotCalled(t, "CreateArtifact", mock.Anything, mock.Anything)
}

func TestScanAndProcessCommandHandler_UnknownCode(t *testing.T) {
	ctx := t.Context()
	f := newPipelineFixture()
	f.repos.intakes.On("GetByCode", mock.Anything, "PF-DEADBEEF").Return(nil, notFound("intake", "PF-DEADBEEF"))
	handler := commands.NewScanAndProcessCommandHandler(f.steps)
	cmd, err := commands.NewScanAndProcessCommand("pf-deadbeef")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestApproveDesignCommandHandler_ReleasesQueuedJobs(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	artifact, err := design.NewArtifact(kernel.NewUUID(), orderID, "art-9", 2, t0)
	require.NoError(t, err)
	queued := newTestJob(t, orderID, 12, 18)
	started := newTestJob(t, orderID, 5, 5)
	require.NoError(t, started.MoveTo(job.Prepress, "", t0))

	f := newPipelineFixture()
	f.repos.designs.On("Get", mock.Anything, artifact.ID()).Return(artifact, nil)
	f.designTool.On("SetArtifactStatus", mock.Anything, "art-9", "approved").Return(nil).Once()
	f.repos.designs.On("Update", mock.Anything, artifact).Return(nil).Once()
	f.repos.jobs.On("ListByOrder", mock.Anything, orderID).Return([]*job.Job{queued, started}, nil)
	f.repos.jobs.On("Get", mock.Anything, queued.ID()).Return(queued, nil).Once()
	f.repos.jobs.On("Update", mock.Anything, queued).Return(nil).Once()
	f.repos.jobs.On("CountByStatus", mock.Anything, job.Queued).Return(0, nil)

	handler := commands.NewApproveDesignCommandHandler(f.steps, f.engine)
	cmd, err := commands.NewApproveDesignCommand(artifact.ID())
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.False(t, result.Failed())
	assert.True(t, artifact.IsApproved())
	require.Len(t, result.Released, 1)
	assert.Equal(t, queued.ID(), result.Released[0].JobID)
	assert.Equal(t, job.Prepress, queued.Status())
	f.designTool.AssertExpectations(t)
	f.repos.jobs.AssertExpectations(t)
}

func TestApproveDesignCommandHandler_DesignToolRejectionReleasesNothing(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	artifact, err := design.NewArtifact(kernel.NewUUID(), orderID, "art-9", 2, t0)
	require.NoError(t, err)

	f := newPipelineFixture()
	f.repos.designs.On("Get", mock.Anything, artifact.ID()).Return(artifact, nil)
	f.designTool.On("SetArtifactStatus", mock.Anything, "art-9", "approved").Return(errors.New("409 conflict"))

	handler := commands.NewApproveDesignCommandHandler(f.steps, f.engine)
	cmd, err := commands.NewApproveDesignCommand(artifact.ID())
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, map[string]commands.StepStatus{
		commands.StepDesign: commands.StepFailed,
		commands.StepJobs:   commands.StepSkipped,
	}, stepStatuses(result.PipelineResult))
	assert.False(t, artifact.IsApproved())
	assert.Empty(t, result.Released)
	f.repos.designs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.repos.jobs.AssertNotCalled(t, "ListByOrder", mock.Anything, mock.Anything)
}

func TestMarkOrderReadyCommandHandler_ReportsPendingJobs(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	ready := jobIn(t, job.Ready)
	printing := jobIn(t, job.Printing)
	cancelled := jobIn(t, job.Cancelled)

	r := newRepos()
	r.jobs.On("ListByOrder", ctx, orderID).Return([]*job.Job{ready, printing, cancelled}, nil)
	handler := commands.NewMarkOrderReadyCommandHandler(r.factory())
	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.False(t, result.Ready)
	assert.Equal(t, []*job.Job{printing, cancelled}, result.Pending)
	r.intakes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMarkOrderReadyCommandHandler_ParksInLeastLoadedSlot(t *testing.T) {
	// Given
	ctx := t.Context()
	orderID := kernel.NewUUID()
	record, err := intake.NewRecord(kernel.NewUUID(), orderID, "cust-7", t0)
	require.NoError(t, err)
	record.StartProcessing()

	busy, _ := intake.NewSlot(kernel.NewUUID(), "A-1", true)
	quiet, _ := intake.NewSlot(kernel.NewUUID(), "A-2", true)
	closed, _ := intake.NewSlot(kernel.NewUUID(), "B-1", false)

	r := newRepos()
	mock.InOrder(
		r.jobs.On("ListByOrder", ctx, orderID).
			Return([]*job.Job{jobIn(t, job.Ready), jobIn(t, job.PickedUp)}, nil).Once(),
		r.intakes.On("GetByOrder", ctx, orderID).Return(record, nil).Once(),
		r.slots.On("ListLoads", ctx).Return([]intake.SlotLoad{
			{Slot: busy, Assigned: 3},
			{Slot: quiet, Assigned: 1},
			{Slot: closed, Assigned: 0},
		}, nil).Once(),
		r.intakes.On("Update", ctx, record).Return(nil).Once(),
	)
	handler := commands.NewMarkOrderReadyCommandHandler(r.factory())
	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.True(t, result.Ready)
	assert.Equal(t, "A-2", result.Slot.Label())
	assert.Equal(t, intake.StatusReady, record.Status())
	assert.Equal(t, quiet.ID(), *record.SlotID())
	r.uow.AssertCalled(t, "Commit", ctx)
	r.intakes.AssertExpectations(t)
}

func TestMarkOrderReadyCommandHandler_NoActiveSlot(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	record, err := intake.NewRecord(kernel.NewUUID(), orderID, "", t0)
	require.NoError(t, err)
	closed, _ := intake.NewSlot(kernel.NewUUID(), "B-1", false)

	r := newRepos()
	r.jobs.On("ListByOrder", ctx, orderID).Return([]*job.Job{jobIn(t, job.Ready)}, nil)
	r.intakes.On("GetByOrder", ctx, orderID).Return(record, nil)
	r.slots.On("ListLoads", ctx).Return([]intake.SlotLoad{{Slot: closed}}, nil)
	handler := commands.NewMarkOrderReadyCommandHandler(r.factory())
	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoActiveSlot)
	assert.Equal(t, intake.StatusPending, record.Status())
}
