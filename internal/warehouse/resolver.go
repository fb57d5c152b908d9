// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package warehouse resolves which SQL warehouse discovery queries run on.
//
// Resolution is a fixed priority chain, first match wins:
//  1. an explicit warehouse ID (DATABRICKS_WAREHOUSE_ID),
//  2. the ID embedded in a SQL connection path (DATABRICKS_HTTP_PATH,
//     e.g. /sql/1.0/warehouses/abc123),
//  3. the first RUNNING warehouse from the workspace listing, falling back
//     to the first warehouse in any state.
//
// The function takes explicit Settings rather than reading the environment,
// and a Lister capability rather than a concrete client, so it is pure with
// respect to process state.
package warehouse

import (
	"context"
	"regexp"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/config"
	errs "github.com/florent-brosse/dbt-databricks-metrics/internal/errors"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/workspace"
)

// Source identifies which step of the priority chain produced the warehouse ID.
type Source string

const (
	SourceEnv      Source = "DATABRICKS_WAREHOUSE_ID environment variable"
	SourceHTTPPath Source = "DATABRICKS_HTTP_PATH environment variable"
	SourceListing  Source = "workspace warehouse listing"
)

// httpPathPattern extracts the warehouse ID from a SQL connection path.
// Warehouse IDs are lowercase hex tokens.
var httpPathPattern = regexp.MustCompile(`/warehouses/([a-f0-9]+)`)

// Lister lists the SQL warehouses visible to the authenticated user.
type Lister interface {
	ListWarehouses(ctx context.Context) ([]workspace.Warehouse, error)
}

const unresolvedHint = "could not determine warehouse ID; " +
	"set DATABRICKS_WAREHOUSE_ID or DATABRICKS_HTTP_PATH environment variable"

// Resolve returns the warehouse ID to run discovery queries on, plus the
// source it came from. The listing is only consulted when neither environment
// override applies.
func Resolve(ctx context.Context, settings config.Settings, lister Lister) (string, Source, error) {
	if settings.WarehouseID != "" {
		return settings.WarehouseID, SourceEnv, nil
	}

	if m := httpPathPattern.FindStringSubmatch(settings.HTTPPath); m != nil {
		return m[1], SourceHTTPPath, nil
	}

	warehouses, err := lister.ListWarehouses(ctx)
	if err != nil {
		return "", "", errs.Wrap(errs.WarehouseUnresolved, unresolvedHint, err)
	}
	for _, wh := range warehouses {
		if wh.State == workspace.StateRunning {
			return wh.ID, SourceListing, nil
		}
	}
	if len(warehouses) > 0 {
		return warehouses[0].ID, SourceListing, nil
	}
	return "", "", errs.New(errs.WarehouseUnresolved, unresolvedHint)
}
