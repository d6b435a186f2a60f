package http

import (
	"time"

	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/application/usecases/queries"
	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type MoveJobStatusRequest struct {
	Status   string `json:"status"`
	Operator string `json:"operator,omitempty"`
}

type BatchMoveJobStatusRequest struct {
	JobIDs   []uuid.UUID `json:"jobIds"`
	Status   string      `json:"status"`
	Operator string      `json:"operator,omitempty"`
}

type AssignPrinterRequest struct {
	PrinterID uuid.UUID `json:"printerId"`
}

type RecordQCRequest struct {
	Result   string `json:"result"`
	Notes    string `json:"notes,omitempty"`
	Operator string `json:"operator,omitempty"`
}

type CreatePrinterRequest struct {
	Name           string   `json:"name"`
	MaxWidth       float64  `json:"maxWidth"`
	SupportedTypes []string `json:"supportedTypes"`
}

type UpdatePrinterStatusRequest struct {
	Status    string         `json:"status"`
	InkLevels map[string]int `json:"inkLevels,omitempty"`
}

type CreateGangSheetRequest struct {
	SheetWidth  float64     `json:"sheetWidth"`
	SheetHeight float64     `json:"sheetHeight"`
	JobIDs      []uuid.UUID `json:"jobIds"`
}

type Job struct {
	ID          uuid.UUID            `json:"id"`
	OrderID     uuid.UUID            `json:"orderId"`
	OwnerID     string               `json:"ownerId"`
	Title       string               `json:"title"`
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	ProductType string               `json:"productType"`
	Quantity    int                  `json:"quantity"`
	DPI         int                  `json:"dpi"`
	Priority    string               `json:"priority"`
	Status      string               `json:"status"`
	PrinterID   *uuid.UUID           `json:"printerId,omitempty"`
	BatchID     *uuid.UUID           `json:"batchId,omitempty"`
	Position    int                  `json:"position,omitempty"`
	Operator    string               `json:"operator,omitempty"`
	QCResult    string               `json:"qcResult,omitempty"`
	QCNotes     string               `json:"qcNotes,omitempty"`
	Stages      map[string]time.Time `json:"stages"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type MoveResult struct {
	Job               Job    `json:"job"`
	From              string `json:"from"`
	To                string `json:"to"`
	NotificationError string `json:"notificationError,omitempty"`
}

type MoveOutcome struct {
	JobID uuid.UUID `json:"jobId"`
	OK    bool      `json:"ok"`
	From  string    `json:"from,omitempty"`
	To    string    `json:"to,omitempty"`
	Error *Error    `json:"error,omitempty"`
}

type BatchMoveResult struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Outcomes  []MoveOutcome `json:"outcomes"`
}

type CreateJobsResult struct {
	Created        int   `json:"created"`
	AlreadyExisted bool  `json:"alreadyExisted"`
	Jobs           []Job `json:"jobs"`
}

type Printer struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	MaxWidth       float64        `json:"maxWidth"`
	SupportedTypes []string       `json:"supportedTypes"`
	Status         string         `json:"status"`
	InkLevels      map[string]int `json:"inkLevels"`
}

type GangSheet struct {
	ID          uuid.UUID         `json:"id"`
	SheetWidth  float64           `json:"sheetWidth"`
	SheetHeight float64           `json:"sheetHeight"`
	TotalArea   float64           `json:"totalArea"`
	UsedArea    float64           `json:"usedArea"`
	WasteArea   float64           `json:"wasteArea"`
	FillRate    float64           `json:"fillRate"`
	MultiOrder  bool              `json:"multiOrder"`
	OrderCount  int               `json:"orderCount"`
	JobCount    int               `json:"jobCount"`
	CreatedAt   time.Time         `json:"createdAt"`
	Members     []GangSheetMember `json:"members,omitempty"`
}

type GangSheetMember struct {
	Position int       `json:"position"`
	JobID    uuid.UUID `json:"jobId"`
	OrderID  uuid.UUID `json:"orderId,omitempty"`
	Title    string    `json:"title,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Status   string    `json:"status,omitempty"`
}

type KanbanBoard struct {
	AsOf    time.Time      `json:"asOf"`
	Columns []KanbanColumn `json:"columns"`
}

type KanbanColumn struct {
	Status string       `json:"status"`
	Count  int          `json:"count"`
	Cards  []KanbanCard `json:"cards"`
}

type KanbanCard struct {
	JobID       uuid.UUID  `json:"jobId"`
	OrderID     uuid.UUID  `json:"orderId"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	ProductType string     `json:"productType"`
	Quantity    int        `json:"quantity"`
	Priority    string     `json:"priority"`
	PrinterID   *uuid.UUID `json:"printerId,omitempty"`
	BatchID     *uuid.UUID `json:"batchId,omitempty"`
	Position    int        `json:"position,omitempty"`
	Operator    string     `json:"operator,omitempty"`
	QueuedAt    time.Time  `json:"queuedAt"`
	WaitMinutes int64      `json:"waitMinutes"`
	Overdue     bool       `json:"overdue"`
}

type ProductionStats struct {
	TotalJobs              int            `json:"totalJobs"`
	ByStatus               map[string]int `json:"byStatus"`
	ByPriority             map[string]int `json:"byPriority"`
	CompletedToday         int            `json:"completedToday"`
	AvgQueueToReadyMinutes float64        `json:"avgQueueToReadyMinutes"`
	GangSheets             int            `json:"gangSheets"`
	AvgGangSheetFillRate   float64        `json:"avgGangSheetFillRate"`
}

type StepResult struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type PipelineResult struct {
	OrderID uuid.UUID    `json:"orderId"`
	Failed  bool         `json:"failed"`
	Steps   []StepResult `json:"steps"`
}

type ApproveDesignResult struct {
	PipelineResult
	Released []MoveOutcome `json:"released"`
}

type MarkOrderReadyResult struct {
	Ready   bool       `json:"ready"`
	Reason  string     `json:"reason,omitempty"`
	Pending []Job      `json:"pending,omitempty"`
	Code    string     `json:"code,omitempty"`
	SlotID  *uuid.UUID `json:"slotId,omitempty"`
	Slot    string     `json:"slot,omitempty"`
}

type JobSummary struct {
	Total    int            `json:"total"`
	Pending  int            `json:"pending"`
	ByStatus map[string]int `json:"byStatus"`
}

type TimelineEntry struct {
	Event string    `json:"event"`
	At    time.Time `json:"at"`
}

type IntakeInfo struct {
	ID     uuid.UUID  `json:"id"`
	Code   string     `json:"code"`
	Status string     `json:"status"`
	SlotID *uuid.UUID `json:"slotId,omitempty"`
}

type DesignInfo struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Status     string    `json:"status"`
	PageCount  int       `json:"pageCount"`
}

type OrderPipelineStatus struct {
	OrderID  uuid.UUID       `json:"orderId"`
	Phase    string          `json:"phase"`
	Intake   *IntakeInfo     `json:"intake,omitempty"`
	Design   *DesignInfo     `json:"design,omitempty"`
	Jobs     JobSummary      `json:"jobs"`
	Timeline []TimelineEntry `json:"timeline"`
}

type DashboardRow struct {
	OrderID      uuid.UUID  `json:"orderId"`
	OwnerID      string     `json:"ownerId"`
	Code         string     `json:"code"`
	IntakeStatus string     `json:"intakeStatus"`
	Phase        string     `json:"phase"`
	SlotID       *uuid.UUID `json:"slotId,omitempty"`
	Jobs         JobSummary `json:"jobs"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type PipelineDashboard struct {
	PhaseCounts map[string]int `json:"phaseCounts"`
	Rows        []DashboardRow `json:"rows"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toJob(j *job.Job) Job {
	st := j.StageTimes()
	stages := make(map[string]time.Time)
	for _, s := range job.AllStatuses() {
		if at, ok := st.At(s); ok {
			stages[s.String()] = at
		}
	}

	return Job{
		ID:          j.ID().Bytes(),
		OrderID:     j.OrderID().Bytes(),
		OwnerID:     j.OwnerID(),
		Title:       j.Title(),
		Width:       j.Size().Width(),
		Height:      j.Size().Height(),
		ProductType: j.ProductType().String(),
		Quantity:    j.Quantity(),
		DPI:         j.DPI(),
		Priority:    j.Priority().String(),
		Status:      j.Status().String(),
		PrinterID:   optionalID(j.PrinterID()),
		BatchID:     optionalID(j.BatchID()),
		Position:    j.Position(),
		Operator:    j.Operator(),
		QCResult:    string(j.QCResult()),
		QCNotes:     j.QCNotes(),
		Stages:      stages,
		UpdatedAt:   j.UpdatedAt(),
	}
}

func toJobs(jobs []*job.Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJob(j))
	}
	return out
}

func toMoveResult(r commands.MoveResult) MoveResult {
	return MoveResult{
		Job:               toJob(r.Job),
		From:              r.From.String(),
		To:                r.To.String(),
		NotificationError: r.NotificationError,
	}
}

func toMoveOutcomes(outcomes []commands.MoveOutcome) []MoveOutcome {
	out := make([]MoveOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		item := MoveOutcome{JobID: o.JobID.Bytes(), OK: o.Succeeded()}
		if o.Succeeded() {
			item.From = o.Result.From.String()
			item.To = o.Result.To.String()
		} else {
			code, msg := describeError(o.Err)
			item.Error = &Error{Code: code, Message: msg}
		}
		out = append(out, item)
	}
	return out
}

func toPrinter(p *printer.Printer) Printer {
	types := make([]string, 0, len(p.SupportedTypes()))
	for _, t := range p.SupportedTypes() {
		types = append(types, t.String())
	}
	ink := p.InkLevels()
	if ink == nil {
		ink = printer.InkLevels{}
	}
	return Printer{
		ID:             p.ID().Bytes(),
		Name:           p.Name(),
		MaxWidth:       p.MaxWidth(),
		SupportedTypes: types,
		Status:         p.Status().String(),
		InkLevels:      ink,
	}
}

func toGangSheetFromBatch(b *gangsheet.Batch) GangSheet {
	ids := b.JobIDs()
	members := make([]GangSheetMember, 0, len(ids))
	for i, id := range ids {
		members = append(members, GangSheetMember{Position: i + 1, JobID: id.Bytes()})
	}
	return GangSheet{
		ID:          b.ID().Bytes(),
		SheetWidth:  b.Sheet().Width(),
		SheetHeight: b.Sheet().Height(),
		TotalArea:   b.TotalArea(),
		UsedArea:    b.UsedArea(),
		WasteArea:   b.WasteArea(),
		FillRate:    b.FillRate(),
		MultiOrder:  b.MultiOrder(),
		OrderCount:  b.OrderCount(),
		JobCount:    len(ids),
		CreatedAt:   b.CreatedAt(),
		Members:     members,
	}
}

func toGangSheetSummary(s queries.GangSheetSummary) GangSheet {
	return GangSheet{
		ID:          s.ID.Bytes(),
		SheetWidth:  s.SheetWidth,
		SheetHeight: s.SheetHeight,
		TotalArea:   s.TotalArea,
		UsedArea:    s.UsedArea,
		WasteArea:   s.WasteArea,
		FillRate:    s.FillRate,
		MultiOrder:  s.MultiOrder,
		OrderCount:  s.OrderCount,
		JobCount:    s.JobCount,
		CreatedAt:   s.CreatedAt,
	}
}

func toPipelineResult(r commands.PipelineResult) PipelineResult {
	steps := make([]StepResult, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, StepResult{Step: s.Step, Status: string(s.Status), Detail: s.Detail})
	}
	return PipelineResult{OrderID: r.OrderID.Bytes(), Failed: r.Failed(), Steps: steps}
}

func toMarkOrderReadyResult(r commands.MarkOrderReadyResult) MarkOrderReadyResult {
	out := MarkOrderReadyResult{Ready: r.Ready, Reason: r.Reason}
	if len(r.Pending) > 0 {
		out.Pending = toJobs(r.Pending)
	}
	if r.Intake != nil {
		out.Code = r.Intake.Code()
		out.SlotID = optionalID(r.Intake.SlotID())
	}
	if r.Slot != nil {
		out.Slot = r.Slot.Label()
	}
	return out
}

func toJobSummary(s queries.JobSummaryResponse) JobSummary {
	return JobSummary{Total: s.Total, Pending: s.Pending, ByStatus: s.ByStatus}
}
