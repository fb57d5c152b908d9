// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Each error carries a machine-readable kind alongside a human-friendly message,
// so callers can decide between fatal termination (client initialization) and
// per-item isolation (warehouse resolution, discovery) without string matching.
package errors

import "fmt"

// Kind is a machine-readable error category.
type Kind string

const (
	// ClientInitFailed indicates the Databricks workspace client could not be built.
	ClientInitFailed Kind = "client_init_failed"
	// WarehouseUnresolved indicates no SQL warehouse could be determined.
	WarehouseUnresolved Kind = "warehouse_unresolved"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*E); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
