// Package pipeline orchestrates one cleaner run as a fixed sequence of
// stages: load the raw transaction CSV, repair it, validate the cleaned
// output, and export the artifacts. Stages share a State value and run
// strictly in order; the first failure aborts the run.
//
// The runner owns the cross-cutting concerns so the stages stay small:
// per-stage spans, structured logs, timing capture, and metric recording
// all live in Runner.Run.
package pipeline
