package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
	"printfloor/internal/core/domain/model/printer"
	"printfloor/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) ListForBoard(ctx context.Context, ownerID string, cutoff time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, ownerID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) ListInProduction(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) CountByStatus(ctx context.Context, status job.Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockPrinterRepository struct{ mock.Mock }

func (m *MockPrinterRepository) Add(ctx context.Context, p *printer.Printer) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPrinterRepository) Update(ctx context.Context, p *printer.Printer) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPrinterRepository) Get(ctx context.Context, id kernel.UUID) (*printer.Printer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printer.Printer), args.Error(1)
}

func (m *MockPrinterRepository) List(ctx context.Context) ([]*printer.Printer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*printer.Printer), args.Error(1)
}

type MockGangSheetRepository struct{ mock.Mock }

func (m *MockGangSheetRepository) Add(ctx context.Context, b *gangsheet.Batch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockGangSheetRepository) Update(ctx context.Context, b *gangsheet.Batch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockGangSheetRepository) Get(ctx context.Context, id kernel.UUID) (*gangsheet.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gangsheet.Batch), args.Error(1)
}

type MockIntakeRepository struct{ mock.Mock }

func (m *MockIntakeRepository) Add(ctx context.Context, r *intake.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockIntakeRepository) Update(ctx context.Context, r *intake.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockIntakeRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*intake.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Record), args.Error(1)
}

func (m *MockIntakeRepository) GetByCode(ctx context.Context, code string) (*intake.Record, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Record), args.Error(1)
}

func (m *MockIntakeRepository) ListInFlight(ctx context.Context) ([]*intake.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*intake.Record), args.Error(1)
}

type MockSlotRepository struct{ mock.Mock }

func (m *MockSlotRepository) Add(ctx context.Context, s *intake.Slot) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSlotRepository) ListLoads(ctx context.Context) ([]intake.SlotLoad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.SlotLoad), args.Error(1)
}

type MockDesignRepository struct{ mock.Mock }

func (m *MockDesignRepository) Add(ctx context.Context, a *design.Artifact) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDesignRepository) Update(ctx context.Context, a *design.Artifact) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDesignRepository) Get(ctx context.Context, id kernel.UUID) (*design.Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*design.Artifact), args.Error(1)
}

func (m *MockDesignRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*design.Artifact, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*design.Artifact), args.Error(1)
}

// MockUoW satisfies every unit-of-work shape the handlers accept.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) JobRepository() ports.JobRepository {
	return m.Called().Get(0).(ports.JobRepository)
}

func (m *MockUoW) PrinterRepository() ports.PrinterRepository {
	return m.Called().Get(0).(ports.PrinterRepository)
}

func (m *MockUoW) GangSheetRepository() ports.GangSheetRepository {
	return m.Called().Get(0).(ports.GangSheetRepository)
}

func (m *MockUoW) IntakeRepository() ports.IntakeRepository {
	return m.Called().Get(0).(ports.IntakeRepository)
}

func (m *MockUoW) SlotRepository() ports.SlotRepository {
	return m.Called().Get(0).(ports.SlotRepository)
}

func (m *MockUoW) DesignRepository() ports.DesignRepository {
	return m.Called().Get(0).(ports.DesignRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	return m.Called().Get(0).(commands.JobUoW)
}

type MockPrinterUoWFactory struct{ mock.Mock }

func (m *MockPrinterUoWFactory) Create() commands.PrinterUoW {
	return m.Called().Get(0).(commands.PrinterUoW)
}

type MockMarketing struct{ mock.Mock }

func (m *MockMarketing) TrackEvent(ctx context.Context, ownerID, event string, props map[string]any) error {
	return m.Called(ctx, ownerID, event, props).Error(0)
}

type MockDesignTool struct{ mock.Mock }

func (m *MockDesignTool) CreateArtifact(ctx context.Context, orderID kernel.UUID) (ports.ArtifactReceipt, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.ArtifactReceipt), args.Error(1)
}

func (m *MockDesignTool) SetArtifactStatus(ctx context.Context, externalID, status string) error {
	return m.Called(ctx, externalID, status).Error(0)
}

type MockOrderSource struct{ mock.Mock }

func (m *MockOrderSource) GetOrder(ctx context.Context, orderID kernel.UUID) (order.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(order.Order), args.Error(1)
}

// RecordingPublisher keeps every published event in order.
type RecordingPublisher struct {
	Events []ports.Event
	Topics [][]string
}

func (p *RecordingPublisher) Publish(event ports.Event, topics ...string) {
	p.Events = append(p.Events, event)
	p.Topics = append(p.Topics, topics)
}

func (p *RecordingPublisher) Types() []string {
	out := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.Type)
	}
	return out
}

// repos bundles one mock per repository behind a permissive unit of work.
type repos struct {
	uow      *MockUoW
	jobs     *MockJobRepository
	printers *MockPrinterRepository
	sheets   *MockGangSheetRepository
	intakes  *MockIntakeRepository
	slots    *MockSlotRepository
	designs  *MockDesignRepository
}

func newRepos() *repos {
	r := &repos{
		uow:      new(MockUoW),
		jobs:     new(MockJobRepository),
		printers: new(MockPrinterRepository),
		sheets:   new(MockGangSheetRepository),
		intakes:  new(MockIntakeRepository),
		slots:    new(MockSlotRepository),
		designs:  new(MockDesignRepository),
	}
	r.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	r.uow.On("Commit", mock.Anything).Return(nil).Maybe()
	r.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	r.uow.On("JobRepository").Return(r.jobs).Maybe()
	r.uow.On("PrinterRepository").Return(r.printers).Maybe()
	r.uow.On("GangSheetRepository").Return(r.sheets).Maybe()
	r.uow.On("IntakeRepository").Return(r.intakes).Maybe()
	r.uow.On("SlotRepository").Return(r.slots).Maybe()
	r.uow.On("DesignRepository").Return(r.designs).Maybe()
	return r
}

func (r *repos) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(r.uow)
	return f
}

func (r *repos) jobFactory() *MockJobUoWFactory {
	f := new(MockJobUoWFactory)
	f.On("Create").Return(r.uow)
	return f
}

func (r *repos) printerFactory() *MockPrinterUoWFactory {
	f := new(MockPrinterUoWFactory)
	f.On("Create").Return(r.uow)
	return f
}

func newTestJob(t *testing.T, orderID kernel.UUID, width, height float64) *job.Job {
	t.Helper()
	size, err := kernel.NewDimensions(width, height)
	require.NoError(t, err)
	j, err := job.NewJob(kernel.NewUUID(), job.Attributes{
		OrderID:     orderID,
		OwnerID:     "cust-7",
		Title:       "Logo transfer",
		Size:        size,
		ProductType: job.ProductDTF,
		Quantity:    1,
		DPI:         job.DefaultDPI,
		Priority:    job.PriorityStandard,
	}, t0)
	require.NoError(t, err)
	return j
}

// jobIn returns a job walked along the forward path to target.
func jobIn(t *testing.T, target job.Status) *job.Job {
	t.Helper()
	return walkTo(t, newTestJob(t, kernel.NewUUID(), 12, 18), target)
}

// walkTo moves a queued job along the forward path to target.
func walkTo(t *testing.T, j *job.Job, target job.Status) *job.Job {
	t.Helper()
	if target == job.Queued {
		return j
	}
	if target == job.Cancelled {
		require.NoError(t, j.MoveTo(job.Cancelled, "", t0.Add(time.Minute)))
		return j
	}

	path := []job.Status{
		job.Prepress, job.Printing, job.Curing, job.Cutting, job.QCCheck,
		job.Packaging, job.Ready, job.PickedUp, job.Completed,
	}
	at := t0
	for _, s := range path {
		at = at.Add(time.Hour)
		require.NoError(t, j.MoveTo(s, "", at))
		if s == target {
			return j
		}
	}
	t.Fatalf("no forward path to %s", target)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
