package cmd

import (
	"log/slog"
	"net/http"

	apihttp "printfloor/internal/adapters/in/http"
	"printfloor/internal/adapters/out/broadcast"
	"printfloor/internal/adapters/out/designtool"
	"printfloor/internal/adapters/out/marketing"
	"printfloor/internal/adapters/out/postgres"
	"printfloor/internal/adapters/out/storefront"
	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/application/usecases/queries"
	"printfloor/internal/core/domain/services"
	"printfloor/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *broadcast.Hub
	logger     *slog.Logger

	engine *commands.StatusEngine
	steps  *commands.PipelineSteps
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        broadcast.NewHub(config.EventBufferSize, logger),
		logger:     logger,
	}

	client := &http.Client{Timeout: config.CollaboratorTimeout}
	c.engine = commands.NewStatusEngine(
		c.fullUoWFactory(),
		marketing.NewClient(config.MarketingURL, client),
		c.hub,
		logger,
	)
	c.steps = commands.NewPipelineSteps(
		c.fullUoWFactory(),
		storefront.NewClient(config.StorefrontURL, client),
		designtool.NewClient(config.DesignToolURL, client),
		c.hub,
		logger,
	)
	return c
}

func (c *CompositionRoot) Hub() *broadcast.Hub { return c.hub }

func (c *CompositionRoot) jobUoWFactory() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) printerUoWFactory() commands.PrinterUoWFactory {
	return FuncPrinterUoWFactory(func() commands.PrinterUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateJobsCommandHandler() commands.CreateJobsCommandHandler {
	return commands.NewCreateJobsCommandHandler(c.steps)
}

func (c *CompositionRoot) CreateMoveJobStatusCommandHandler() commands.MoveJobStatusCommandHandler {
	return commands.NewMoveJobStatusCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateBatchMoveJobStatusCommandHandler() commands.BatchMoveJobStatusCommandHandler {
	return commands.NewBatchMoveJobStatusCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateAssignJobToPrinterCommandHandler() commands.AssignJobToPrinterCommandHandler {
	return commands.NewAssignJobToPrinterCommandHandler(c.fullUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateRecordQCResultCommandHandler() commands.RecordQCResultCommandHandler {
	return commands.NewRecordQCResultCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCreatePrinterCommandHandler() commands.CreatePrinterCommandHandler {
	return commands.NewCreatePrinterCommandHandler(c.printerUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateUpdatePrinterStatusCommandHandler() commands.UpdatePrinterStatusCommandHandler {
	return commands.NewUpdatePrinterStatusCommandHandler(c.printerUoWFactory(), c.hub, c.config.InkWarningThreshold)
}

func (c *CompositionRoot) CreateCreateGangSheetCommandHandler() commands.CreateGangSheetCommandHandler {
	return commands.NewCreateGangSheetCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateInitiatePipelineCommandHandler() commands.InitiatePipelineCommandHandler {
	return commands.NewInitiatePipelineCommandHandler(c.steps)
}

func (c *CompositionRoot) CreateScanAndProcessCommandHandler() commands.ScanAndProcessCommandHandler {
	return commands.NewScanAndProcessCommandHandler(c.steps)
}

func (c *CompositionRoot) CreateApproveDesignCommandHandler() commands.ApproveDesignCommandHandler {
	return commands.NewApproveDesignCommandHandler(c.steps, c.engine)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateGetKanbanBoardQueryHandler() queries.GetKanbanBoardQueryHandler {
	return queries.NewGetKanbanBoardQueryHandler(c.uowFactory, services.NewKanbanProjector(c.config.BoardPurgeWindow))
}

func (c *CompositionRoot) CreateGetProductionStatsQueryHandler() queries.GetProductionStatsQueryHandler {
	return queries.NewGetProductionStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetGangSheetQueryHandler() queries.GetGangSheetQueryHandler {
	return queries.NewGetGangSheetQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListGangSheetsQueryHandler() queries.ListGangSheetsQueryHandler {
	return queries.NewListGangSheetsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderPipelineStatusQueryHandler() queries.GetOrderPipelineStatusQueryHandler {
	return queries.NewGetOrderPipelineStatusQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetPipelineDashboardQueryHandler() queries.GetPipelineDashboardQueryHandler {
	return queries.NewGetPipelineDashboardQueryHandler(c.uowFactory)
}

// CreateHTTPHandlers wires every use case the API exposes.
func (c *CompositionRoot) CreateHTTPHandlers() apihttp.Handlers {
	return apihttp.Handlers{
		CreateJobs:          c.CreateCreateJobsCommandHandler(),
		MoveJobStatus:       c.CreateMoveJobStatusCommandHandler(),
		BatchMoveJobStatus:  c.CreateBatchMoveJobStatusCommandHandler(),
		AssignJobToPrinter:  c.CreateAssignJobToPrinterCommandHandler(),
		RecordQCResult:      c.CreateRecordQCResultCommandHandler(),
		CreatePrinter:       c.CreateCreatePrinterCommandHandler(),
		UpdatePrinterStatus: c.CreateUpdatePrinterStatusCommandHandler(),
		CreateGangSheet:     c.CreateCreateGangSheetCommandHandler(),
		InitiatePipeline:    c.CreateInitiatePipelineCommandHandler(),
		ScanAndProcess:      c.CreateScanAndProcessCommandHandler(),
		ApproveDesign:       c.CreateApproveDesignCommandHandler(),
		MarkOrderReady:      c.CreateMarkOrderReadyCommandHandler(),

		GetKanbanBoard:         c.CreateGetKanbanBoardQueryHandler(),
		GetProductionStats:     c.CreateGetProductionStatsQueryHandler(),
		GetGangSheet:           c.CreateGetGangSheetQueryHandler(),
		ListGangSheets:         c.CreateListGangSheetsQueryHandler(),
		GetOrderPipelineStatus: c.CreateGetOrderPipelineStatusQueryHandler(),
		GetPipelineDashboard:   c.CreateGetPipelineDashboardQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		commands.NewDetectDelayedJobsCommandHandler(c.jobUoWFactory(), c.hub),
		commands.NewBroadcastQueueDepthCommandHandler(c.jobUoWFactory(), c.hub),
		jobs.Schedules{
			DelayScan:  c.config.DelayScanSchedule,
			QueueDepth: c.config.QueueDepthSchedule,
		},
		c.logger,
	)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncPrinterUoWFactory func() commands.PrinterUoW

func (f FuncPrinterUoWFactory) Create() commands.PrinterUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
