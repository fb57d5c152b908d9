// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package workspace wraps the Databricks control-plane SDK behind a small
// interface covering exactly the surface this tool needs: running a SQL
// statement through a warehouse, listing warehouses, starting a pipeline
// update, and identifying the authenticated user. Commands depend on the
// interface so tests can substitute a fake without any HTTP transport.
package workspace

import (
	"context"
)

// StateRunning is the warehouse state preferred during resolution.
const StateRunning = "RUNNING"

// Warehouse is one SQL warehouse visible to the authenticated user.
type Warehouse struct {
	ID    string
	State string
}

// Client is the subset of the Databricks workspace API consumed by this tool.
type Client interface {
	// RunQuery executes a single SQL statement on the given warehouse and
	// returns the result rows as untyped text cells. waitTimeout is the
	// vendor-format synchronous wait, e.g. "30s".
	RunQuery(ctx context.Context, warehouseID, statement, waitTimeout string) ([][]string, error)

	// ListWarehouses returns all SQL warehouses in the workspace.
	ListWarehouses(ctx context.Context) ([]Warehouse, error)

	// StartPipelineUpdate triggers a refresh of the given Lakeflow pipeline.
	StartPipelineUpdate(ctx context.Context, pipelineID string) error

	// CurrentUser returns the identity the client is authenticated as.
	CurrentUser(ctx context.Context) (string, error)
}
