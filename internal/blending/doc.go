// Package blending normalizes heterogeneous ad-platform rows into one
// canonical schema and computes report-ready aggregates over the result.
//
// The pipeline is: HarmonizeDataset per platform → BlendSources (merge +
// sort) → AggregateData (optional grouping) → Summarize. Every stage is a
// pure, synchronous transform over in-memory rows: no I/O, no shared
// mutable state, and inputs are never mutated, so callers may run any
// number of pipelines concurrently. The per-platform mapping tables are
// read-only process-wide configuration.
package blending
