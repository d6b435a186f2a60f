package services

import (
	"cmp"
	"slices"
	"time"

	"printfloor/internal/core/domain/model/job"
)

// KanbanRow is one job card on the board.
type KanbanRow struct {
	Job     *job.Job
	Wait    time.Duration
	Overdue bool
}

type KanbanColumn struct {
	Status job.Status
	Rows   []KanbanRow
}

// KanbanBoard has one column per status, in status order, empty columns included.
type KanbanBoard struct {
	AsOf    time.Time
	Columns []KanbanColumn
}

// Column returns the column for s.
func (b KanbanBoard) Column(s job.Status) KanbanColumn {
	for _, c := range b.Columns {
		if c.Status == s {
			return c
		}
	}
	return KanbanColumn{Status: s}
}

// KanbanProjector builds the operator board. Terminal jobs drop off the board
// once they have been idle for longer than the purge window.
type KanbanProjector struct {
	purgeWindow time.Duration
}

func NewKanbanProjector(purgeWindow time.Duration) KanbanProjector {
	return KanbanProjector{purgeWindow: purgeWindow}
}

// PurgeCutoff is the oldest update time a terminal job may have and still show.
func (p KanbanProjector) PurgeCutoff(asOf time.Time) time.Time {
	return asOf.Add(-p.purgeWindow)
}

// Project is a pure function of jobs and asOf: rows within a column are
// ordered by priority (most urgent first), then queue entry, then id.
func (p KanbanProjector) Project(jobs []*job.Job, asOf time.Time) KanbanBoard {
	byStatus := make(map[job.Status][]KanbanRow)
	cutoff := p.PurgeCutoff(asOf)

	for _, j := range jobs {
		if j.Status().IsTerminal() && j.UpdatedAt().Before(cutoff) {
			continue
		}
		byStatus[j.Status()] = append(byStatus[j.Status()], KanbanRow{
			Job:     j,
			Wait:    j.Wait(asOf),
			Overdue: j.IsOverdue(asOf),
		})
	}

	board := KanbanBoard{AsOf: asOf}
	for _, s := range job.AllStatuses() {
		rows := byStatus[s]
		slices.SortFunc(rows, compareRows)
		board.Columns = append(board.Columns, KanbanColumn{Status: s, Rows: rows})
	}
	return board
}

func compareRows(a, b KanbanRow) int {
	return cmp.Or(
		cmp.Compare(b.Job.Priority(), a.Job.Priority()),
		a.Job.QueuedAt().Compare(b.Job.QueuedAt()),
		cmp.Compare(a.Job.ID().String(), b.Job.ID().String()),
	)
}
