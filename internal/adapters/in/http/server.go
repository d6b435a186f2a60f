package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"printfloor/internal/adapters/out/broadcast"
	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/application/usecases/queries"
	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"

	"github.com/labstack/echo/v4"
)

// Handler is the shape shared by every command and query handler.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[C, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateJobs          Handler[commands.CreateJobsCommand, commands.CreateJobsCommandResult]
	MoveJobStatus       Handler[commands.MoveJobStatusCommand, commands.MoveResult]
	BatchMoveJobStatus  Handler[commands.BatchMoveJobStatusCommand, commands.BatchMoveResult]
	AssignJobToPrinter  Handler[commands.AssignJobToPrinterCommand, *job.Job]
	RecordQCResult      Handler[commands.RecordQCResultCommand, commands.MoveResult]
	CreatePrinter       Handler[commands.CreatePrinterCommand, *printer.Printer]
	UpdatePrinterStatus Handler[commands.UpdatePrinterStatusCommand, *printer.Printer]
	CreateGangSheet     Handler[commands.CreateGangSheetCommand, *gangsheet.Batch]
	InitiatePipeline    Handler[commands.InitiatePipelineCommand, commands.PipelineResult]
	ScanAndProcess      Handler[commands.ScanAndProcessCommand, commands.PipelineResult]
	ApproveDesign       Handler[commands.ApproveDesignCommand, commands.ApproveDesignResult]
	MarkOrderReady      Handler[commands.MarkOrderReadyCommand, commands.MarkOrderReadyResult]

	GetKanbanBoard         Handler[queries.GetKanbanBoardQuery, queries.GetKanbanBoardQueryResponse]
	GetProductionStats     Handler[queries.GetProductionStatsQuery, queries.GetProductionStatsQueryResponse]
	GetGangSheet           Handler[queries.GetGangSheetQuery, queries.GetGangSheetQueryResponse]
	ListGangSheets         Handler[queries.ListGangSheetsQuery, []queries.GangSheetSummary]
	GetOrderPipelineStatus Handler[queries.GetOrderPipelineStatusQuery, queries.GetOrderPipelineStatusQueryResponse]
	GetPipelineDashboard   Handler[queries.GetPipelineDashboardQuery, queries.GetPipelineDashboardQueryResponse]
}

// Server translates HTTP requests into use case calls.
type Server struct {
	h      Handlers
	hub    *broadcast.Hub
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(h Handlers, hub *broadcast.Hub, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		hub:    hub,
		logger: logger.With("component", "http"),
		now:    time.Now,
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, msg := describeError(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(code, Error{Code: code, Message: msg})
}

func badBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateJobs handles POST /api/v1/orders/{orderId}/jobs.
func (s *Server) CreateJobs(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateJobsCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CreateJobs.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return ctx.JSON(status, CreateJobsResult{
		Created:        result.Created,
		AlreadyExisted: result.AlreadyExisted,
		Jobs:           toJobs(result.Jobs),
	})
}

// MoveJobStatus handles POST /api/v1/jobs/{jobId}/status.
func (s *Server) MoveJobStatus(ctx echo.Context) error {
	jobID, err := pathUUID(ctx, "jobId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req MoveJobStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	target, err := job.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewMoveJobStatusCommand(jobID, target, req.Operator)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.MoveJobStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMoveResult(result))
}

// BatchMoveJobStatus handles POST /api/v1/jobs/status. Per-job failures are
// reported in the body; the request itself succeeds.
func (s *Server) BatchMoveJobStatus(ctx echo.Context) error {
	var req BatchMoveJobStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	target, err := job.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := toKernelIDs(req.JobIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewBatchMoveJobStatusCommand(ids, target, req.Operator)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.BatchMoveJobStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, BatchMoveResult{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Outcomes:  toMoveOutcomes(result.Outcomes),
	})
}

// AssignJobToPrinter handles POST /api/v1/jobs/{jobId}/printer.
func (s *Server) AssignJobToPrinter(ctx echo.Context) error {
	jobID, err := pathUUID(ctx, "jobId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req AssignPrinterRequest
	if err = ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	printerID, err := kernel.UUIDFromBytes(req.PrinterID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAssignJobToPrinterCommand(jobID, printerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	j, err := s.h.AssignJobToPrinter.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(j))
}

// RecordQCResult handles POST /api/v1/jobs/{jobId}/qc.
func (s *Server) RecordQCResult(ctx echo.Context) error {
	jobID, err := pathUUID(ctx, "jobId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req RecordQCRequest
	if err = ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	result, err := job.ParseQCResult(req.Result)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRecordQCResultCommand(jobID, result, req.Notes, req.Operator)
	if err != nil {
		return s.fail(ctx, err)
	}

	moved, err := s.h.RecordQCResult.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMoveResult(moved))
}

// CreatePrinter handles POST /api/v1/printers.
func (s *Server) CreatePrinter(ctx echo.Context) error {
	var req CreatePrinterRequest
	if err := ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	types := make([]job.ProductType, 0, len(req.SupportedTypes))
	for _, raw := range req.SupportedTypes {
		t, err := job.ParseProductType(raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		types = append(types, t)
	}
	cmd, err := commands.NewCreatePrinterCommand(req.Name, req.MaxWidth, types)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.h.CreatePrinter.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toPrinter(p))
}

// UpdatePrinterStatus handles PUT /api/v1/printers/{printerId}/status.
func (s *Server) UpdatePrinterStatus(ctx echo.Context) error {
	printerID, err := pathUUID(ctx, "printerId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req UpdatePrinterStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	status, err := printer.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdatePrinterStatusCommand(printerID, status, req.InkLevels)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.h.UpdatePrinterStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPrinter(p))
}

// CreateGangSheet handles POST /api/v1/gang-sheets.
func (s *Server) CreateGangSheet(ctx echo.Context) error {
	var req CreateGangSheetRequest
	if err := ctx.Bind(&req); err != nil {
		return badBody(ctx)
	}
	ids, err := toKernelIDs(req.JobIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateGangSheetCommand(req.SheetWidth, req.SheetHeight, ids)
	if err != nil {
		return s.fail(ctx, err)
	}

	batch, err := s.h.CreateGangSheet.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toGangSheetFromBatch(batch))
}

// GetGangSheet handles GET /api/v1/gang-sheets/{batchId}.
func (s *Server) GetGangSheet(ctx echo.Context) error {
	batchID, err := pathUUID(ctx, "batchId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetGangSheetQuery(batchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	sheet, err := s.h.GetGangSheet.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := toGangSheetSummary(sheet.GangSheetSummary)
	resp.Members = make([]GangSheetMember, 0, len(sheet.Members))
	for _, m := range sheet.Members {
		resp.Members = append(resp.Members, GangSheetMember{
			Position: m.Position,
			JobID:    m.JobID.Bytes(),
			OrderID:  m.OrderID.Bytes(),
			Title:    m.Title,
			Width:    m.Width,
			Height:   m.Height,
			Status:   m.Status,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// ListGangSheets handles GET /api/v1/gang-sheets.
func (s *Server) ListGangSheets(ctx echo.Context) error {
	limit, err := queryInt(ctx, "limit", queries.DefaultGangSheetListLimit)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListGangSheetsQuery(limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	sheets, err := s.h.ListGangSheets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := make([]GangSheet, 0, len(sheets))
	for _, sheet := range sheets {
		resp = append(resp, toGangSheetSummary(sheet))
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetKanbanBoard handles GET /api/v1/kanban.
func (s *Server) GetKanbanBoard(ctx echo.Context) error {
	owner, err := queryString(ctx, "owner")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetKanbanBoardQuery(owner, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	board, err := s.h.GetKanbanBoard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := KanbanBoard{AsOf: board.AsOf, Columns: make([]KanbanColumn, 0, len(board.Columns))}
	for _, col := range board.Columns {
		cards := make([]KanbanCard, 0, len(col.Cards))
		for _, c := range col.Cards {
			cards = append(cards, KanbanCard{
				JobID:       c.JobID.Bytes(),
				OrderID:     c.OrderID.Bytes(),
				OwnerID:     c.OwnerID,
				Title:       c.Title,
				Width:       c.Width,
				Height:      c.Height,
				ProductType: c.ProductType,
				Quantity:    c.Quantity,
				Priority:    c.Priority,
				PrinterID:   optionalID(c.PrinterID),
				BatchID:     optionalID(c.BatchID),
				Position:    c.Position,
				Operator:    c.Operator,
				QueuedAt:    c.QueuedAt,
				WaitMinutes: int64(c.Wait / time.Minute),
				Overdue:     c.Overdue,
			})
		}
		resp.Columns = append(resp.Columns, KanbanColumn{Status: col.Status, Count: len(cards), Cards: cards})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetProductionStats handles GET /api/v1/stats.
func (s *Server) GetProductionStats(ctx echo.Context) error {
	query, err := queries.NewGetProductionStatsQuery(s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	stats, err := s.h.GetProductionStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ProductionStats{
		TotalJobs:              stats.TotalJobs,
		ByStatus:               stats.ByStatus,
		ByPriority:             stats.ByPriority,
		CompletedToday:         stats.CompletedToday,
		AvgQueueToReadyMinutes: stats.AvgQueueToReadyMinutes,
		GangSheets:             stats.GangSheets,
		AvgGangSheetFillRate:   stats.AvgGangSheetFillRate,
	})
}

// InitiatePipeline handles POST /api/v1/pipeline/orders/{orderId}/initiate.
// Step failures are part of a 200 response.
func (s *Server) InitiatePipeline(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewInitiatePipelineCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.InitiatePipeline.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPipelineResult(result))
}

// ScanAndProcess handles POST /api/v1/pipeline/scan/{code}.
func (s *Server) ScanAndProcess(ctx echo.Context) error {
	code, err := pathString(ctx, "code")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewScanAndProcessCommand(code)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ScanAndProcess.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPipelineResult(result))
}

// ApproveDesign handles POST /api/v1/pipeline/designs/{designId}/approve.
func (s *Server) ApproveDesign(ctx echo.Context) error {
	designID, err := pathUUID(ctx, "designId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewApproveDesignCommand(designID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ApproveDesign.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ApproveDesignResult{
		PipelineResult: toPipelineResult(result.PipelineResult),
		Released:       toMoveOutcomes(result.Released),
	})
}

// MarkOrderReady handles POST /api/v1/pipeline/orders/{orderId}/ready. An
// order with work still on the floor is answered 409 with the pending jobs.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.MarkOrderReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusOK
	if !result.Ready {
		status = http.StatusConflict
	}
	return ctx.JSON(status, toMarkOrderReadyResult(result))
}

// GetOrderPipelineStatus handles GET /api/v1/pipeline/orders/{orderId}.
func (s *Server) GetOrderPipelineStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderPipelineStatusQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	st, err := s.h.GetOrderPipelineStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := OrderPipelineStatus{
		OrderID:  st.OrderID.Bytes(),
		Phase:    st.Phase,
		Jobs:     toJobSummary(st.Jobs),
		Timeline: make([]TimelineEntry, 0, len(st.Timeline)),
	}
	if st.Intake != nil {
		resp.Intake = &IntakeInfo{
			ID:     st.Intake.ID.Bytes(),
			Code:   st.Intake.Code,
			Status: st.Intake.Status,
			SlotID: optionalID(st.Intake.SlotID),
		}
	}
	if st.Design != nil {
		resp.Design = &DesignInfo{
			ID:         st.Design.ID.Bytes(),
			ExternalID: st.Design.ExternalID,
			Status:     st.Design.Status,
			PageCount:  st.Design.PageCount,
		}
	}
	for _, e := range st.Timeline {
		resp.Timeline = append(resp.Timeline, TimelineEntry{Event: e.Event, At: e.At})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetPipelineDashboard handles GET /api/v1/pipeline/dashboard.
func (s *Server) GetPipelineDashboard(ctx echo.Context) error {
	dashboard, err := s.h.GetPipelineDashboard.Handle(ctx.Request().Context(), queries.NewGetPipelineDashboardQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := PipelineDashboard{
		PhaseCounts: dashboard.PhaseCounts,
		Rows:        make([]DashboardRow, 0, len(dashboard.Rows)),
	}
	for _, r := range dashboard.Rows {
		resp.Rows = append(resp.Rows, DashboardRow{
			OrderID:      r.OrderID.Bytes(),
			OwnerID:      r.OwnerID,
			Code:         r.Code,
			IntakeStatus: r.IntakeStatus,
			Phase:        r.Phase,
			SlotID:       optionalID(r.SlotID),
			Jobs:         toJobSummary(r.Jobs),
			CreatedAt:    r.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}
