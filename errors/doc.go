// Package errors provides the structured error type used across the diarize
// tool. Every AppError carries a machine-readable code, and every code maps to
// one of three categories: configuration, input, or operational.
//
// The CLI is the only place that turns an error into user-facing text; all
// other layers return AppError values (or plain errors, which count as
// operational) and let them propagate.
package errors
