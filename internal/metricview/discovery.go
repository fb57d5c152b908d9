// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package metricview discovers the Lakeflow pipeline backing a materialized
// metric view by running DESCRIBE EXTENDED through a SQL warehouse and
// scanning the textual output for an embedded pipeline URL.
package metricview

import (
	"context"
	"regexp"

	"github.com/pterm/pterm"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/config"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/warehouse"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/workspace"
)

// describeWaitTimeout is the synchronous wait applied to discovery queries,
// in the vendor's statement-execution timeout format.
const describeWaitTimeout = "30s"

// pipelinePattern matches the pipeline URL fragment that DESCRIBE EXTENDED
// emits in its "Refresh information" section, e.g.
// ".../pipelines/01484540-0a06-414a-b10f-e1b0e8097f15". This is the only
// shape we rely on; any structural change to the upstream output format
// breaks discovery and must be handled here, not papered over elsewhere.
var pipelinePattern = regexp.MustCompile(`pipelines/([a-f0-9-]+)`)

// ExtractPipelineID returns the first pipeline ID embedded in s, or "" when
// none is present.
func ExtractPipelineID(s string) string {
	if m := pipelinePattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// Discoverer looks up backing pipelines for metric views.
type Discoverer struct {
	client   workspace.Client
	settings config.Settings
}

// NewDiscoverer returns a Discoverer using the given client and
// warehouse-selection settings. The warehouse is re-resolved on every
// Discover call; nothing is cached.
func NewDiscoverer(client workspace.Client, settings config.Settings) *Discoverer {
	return &Discoverer{client: client, settings: settings}
}

// Discover returns the pipeline ID backing the named metric view, or "" when
// none was found. Remote failures, including warehouse resolution, are
// reported and treated as "not found" so that one view never blocks the
// rest of a batch.
func (d *Discoverer) Discover(ctx context.Context, viewName string) string {
	pterm.Printf("Looking up pipeline for: %s\n", viewName)

	warehouseID, _, err := warehouse.Resolve(ctx, d.settings, d.client)
	if err != nil {
		d.reportFailure(viewName, err)
		return ""
	}

	rows, err := d.client.RunQuery(ctx, warehouseID, "DESCRIBE EXTENDED "+viewName, describeWaitTimeout)
	if err != nil {
		d.reportFailure(viewName, err)
		return ""
	}

	for _, row := range rows {
		for _, cell := range row {
			if id := ExtractPipelineID(cell); id != "" {
				pterm.Printf("  Found pipeline ID: %s\n", id)
				return id
			}
		}
	}

	pterm.Println("  No pipeline found. Make sure the metric view has materialization enabled.")
	return ""
}

// reportFailure prints the error plus the manual SQL the operator can run
// themselves when discovery through the warehouse isn't possible.
func (d *Discoverer) reportFailure(viewName string, err error) {
	pterm.Println("  " + logging.PresentError("Error", err))
	pterm.Println()
	pterm.Println("  Alternatively, run this SQL in Databricks:")
	pterm.Printf("    DESCRIBE EXTENDED %s;\n", viewName)
	pterm.Println("  Look for 'Refresh information' section -> Pipeline URL contains the pipeline_id")
}
