// Package design tracks the print artifact produced for an order by the
// external design tool. Only its identity and approval state live here; the
// files themselves stay with the tool.
package design

import (
	"errors"
	"strings"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

type Status string

const (
	StatusCreated  Status = "created"
	StatusApproved Status = "approved"
)

var (
	ErrArtifactIsNotConstructed = errors.New("Artifact must be created via NewArtifact constructor")
	ErrExternalIDIsRequired     = errs.NewValueIsRequiredError("externalId")
)

// Artifact is the local record of a design-tool artifact.
type Artifact struct {
	id         kernel.UUID
	orderID    kernel.UUID
	externalID string
	status     Status
	pageCount  int
	createdAt  time.Time
	approvedAt *time.Time

	guard guard.ConstructorGuard
}

func NewArtifact(id, orderID kernel.UUID, externalID string, pageCount int, at time.Time) (*Artifact, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrExternalIDIsRequired
	}
	if pageCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("pageCount", pageCount, 0, "unbounded")
	}

	return &Artifact{
		id:         id,
		orderID:    orderID,
		externalID: externalID,
		status:     StatusCreated,
		pageCount:  pageCount,
		createdAt:  at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func RestoreArtifact(
	id, orderID kernel.UUID,
	externalID string,
	status Status,
	pageCount int,
	createdAt time.Time,
	approvedAt *time.Time,
) (*Artifact, error) {
	a, err := NewArtifact(id, orderID, externalID, pageCount, createdAt)
	if err != nil {
		return nil, err
	}
	switch status {
	case StatusCreated:
	case StatusApproved:
		a.status = StatusApproved
		if approvedAt != nil {
			at := *approvedAt
			a.approvedAt = &at
		}
	default:
		return nil, errs.NewValueIsInvalidError("designStatus")
	}
	return a, nil
}

func (a *Artifact) Validate() error {
	if a == nil {
		return ErrArtifactIsNotConstructed
	}
	return a.guard.Validate(ErrArtifactIsNotConstructed)
}

func (a *Artifact) ID() kernel.UUID      { return a.id }
func (a *Artifact) OrderID() kernel.UUID { return a.orderID }
func (a *Artifact) ExternalID() string   { return a.externalID }
func (a *Artifact) Status() Status       { return a.status }
func (a *Artifact) PageCount() int       { return a.pageCount }
func (a *Artifact) CreatedAt() time.Time { return a.createdAt }
func (a *Artifact) IsApproved() bool     { return a.status == StatusApproved }

func (a *Artifact) ApprovedAt() *time.Time {
	if a.approvedAt == nil {
		return nil
	}
	at := *a.approvedAt
	return &at
}

// Approve marks the artifact approved. Approving twice keeps the first time.
func (a *Artifact) Approve(at time.Time) {
	if a.status == StatusApproved {
		return
	}
	a.status = StatusApproved
	a.approvedAt = &at
}
