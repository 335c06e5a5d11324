// Package errors provides structured error types with classification codes
// used across kairos components. Errors carry a machine-readable code, a
// human-readable message, an optional cause for errors.Is/As chains, and
// optional context for debugging.
package errors
