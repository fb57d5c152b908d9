// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package refresh triggers pipeline updates for already-resolved pipeline IDs.
package refresh

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
)

// Starter is the single control-plane capability this package needs.
type Starter interface {
	StartPipelineUpdate(ctx context.Context, pipelineID string) error
}

// Run triggers a refresh for each pipeline ID, in order. Every ID is
// attempted independently: a failure is reported on its own status line and
// never stops the remaining IDs or affects the process exit code.
func Run(ctx context.Context, starter Starter, pipelineIDs []string) {
	for _, id := range pipelineIDs {
		pterm.Printf("Starting refresh for pipeline: %s\n", id)
		if err := starter.StartPipelineUpdate(ctx, id); err != nil {
			pterm.Println("  ✗ " + logging.PresentError("Error", err))
			continue
		}
		pterm.Println("  ✓ Refresh started successfully")
	}
}
