// Package job provides the Job aggregate: one printable production unit derived
// from an order line item, and the status graph it moves through.
//
// The package includes:
//   - Job: identity, print attributes, stage timestamps, printer/batch placement and QC outcome
//   - Status: the fixed production status set and its transition graph
//   - Priority: service tiers with their turnaround targets
//   - ProductType: print media families a printer may or may not support
//   - QCResult: outcomes of a quality-control inspection
//
// Key business rules:
//   - A job is created in QUEUED and moves only along the edges of the status graph
//   - Backward edges exist only for operator correction and QC failure
//   - Each stage timestamp is written once, on first entry to the stage; the
//     QC timestamp is cleared when an inspection fails so the retry is timed afresh
//   - COMPLETED and CANCELLED are terminal; jobs are never deleted
package job
