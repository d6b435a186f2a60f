// Package pipeline derives the coarse per-order phase and timeline from the
// finer intake, design and job states.
//
// Phases run INTAKE -> DESIGN -> PRODUCTION -> READY -> COMPLETED:
//
//	INTAKE      the order is on the floor, nothing designed or queued yet
//	DESIGN      a design artifact or queued jobs exist, no work released
//	PRODUCTION  the design is approved or a job has left QUEUED
//	READY       every job is handed off, or the intake record is ready
//	COMPLETED   the intake record is closed, or every job is finished
//
// Nothing here is stored; phases are recomputed on every read.
package pipeline
