package commands

import (
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"
	"printfloor/internal/core/ports"
)

// Payloads carried in ports.Event.Data.
type (
	JobMovedData struct {
		JobID     string `json:"jobId"`
		OrderID   string `json:"orderId"`
		From      string `json:"from"`
		To        string `json:"to"`
		Operator  string `json:"operator,omitempty"`
		PrinterID string `json:"printerId,omitempty"`
	}

	JobCreatedData struct {
		JobID       string  `json:"jobId"`
		OrderID     string  `json:"orderId"`
		Title       string  `json:"title"`
		ProductType string  `json:"productType"`
		Priority    string  `json:"priority"`
		Width       float64 `json:"width"`
		Height      float64 `json:"height"`
	}

	QueueDepthData struct {
		Status string `json:"status"`
		Depth  int    `json:"depth"`
	}

	BatchCompleteData struct {
		BatchID string   `json:"batchId"`
		JobIDs  []string `json:"jobIds"`
	}

	PrinterStatusData struct {
		PrinterID string         `json:"printerId"`
		Name      string         `json:"name"`
		Status    string         `json:"status"`
		InkLevels map[string]int `json:"inkLevels"`
	}

	JobDelayedData struct {
		JobID       string `json:"jobId"`
		OrderID     string `json:"orderId"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
		WaitMinutes int64  `json:"waitMinutes"`
		SLAMinutes  int64  `json:"slaMinutes"`
	}

	InkLowData struct {
		PrinterID string `json:"printerId"`
		Name      string `json:"name"`
		Channel   string `json:"channel"`
		Level     int    `json:"level"`
		Threshold int    `json:"threshold"`
	}
)

// jobTopics lists the topics a job's changes go to: the floor, its owner and
// its printer when assigned.
func jobTopics(j *job.Job) []string {
	topics := []string{ports.FloorTopic}
	if j.OwnerID() != "" {
		topics = append(topics, ports.OwnerTopic(j.OwnerID()))
	}
	if j.PrinterID() != nil {
		topics = append(topics, ports.PrinterTopic(*j.PrinterID()))
	}
	return topics
}

func jobMovedEvent(j *job.Job, from job.Status, at time.Time) ports.Event {
	data := JobMovedData{
		JobID:    j.ID().String(),
		OrderID:  j.OrderID().String(),
		From:     from.String(),
		To:       j.Status().String(),
		Operator: j.Operator(),
	}
	if j.PrinterID() != nil {
		data.PrinterID = j.PrinterID().String()
	}
	return ports.Event{Type: ports.EventJobMoved, At: at, Data: data}
}

func jobCreatedEvent(j *job.Job, at time.Time) ports.Event {
	return ports.Event{Type: ports.EventJobCreated, At: at, Data: JobCreatedData{
		JobID:       j.ID().String(),
		OrderID:     j.OrderID().String(),
		Title:       j.Title(),
		ProductType: j.ProductType().String(),
		Priority:    j.Priority().String(),
		Width:       j.Size().Width(),
		Height:      j.Size().Height(),
	}}
}

func queueDepthEvent(depth int, at time.Time) ports.Event {
	return ports.Event{Type: ports.EventQueueDepthChanged, At: at, Data: QueueDepthData{
		Status: job.Queued.String(),
		Depth:  depth,
	}}
}

func jobDelayedEvent(j *job.Job, asOf time.Time) ports.Event {
	return ports.Event{Type: ports.EventJobDelayed, At: asOf, Data: JobDelayedData{
		JobID:       j.ID().String(),
		OrderID:     j.OrderID().String(),
		Status:      j.Status().String(),
		Priority:    j.Priority().String(),
		WaitMinutes: int64(j.Wait(asOf) / time.Minute),
		SLAMinutes:  int64(j.Priority().SLA() / time.Minute),
	}}
}

func batchCompleteEvent(batchID kernel.UUID, members []*job.Job, at time.Time) ports.Event {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID().String())
	}
	return ports.Event{Type: ports.EventBatchComplete, At: at, Data: BatchCompleteData{
		BatchID: batchID.String(),
		JobIDs:  ids,
	}}
}

func printerStatusEvent(p *printer.Printer, at time.Time) ports.Event {
	return ports.Event{Type: ports.EventPrinterStatusChanged, At: at, Data: PrinterStatusData{
		PrinterID: p.ID().String(),
		Name:      p.Name(),
		Status:    p.Status().String(),
		InkLevels: p.InkLevels(),
	}}
}
