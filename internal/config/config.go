// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config sources warehouse-selection settings from the process
// environment exactly once, at the program boundary. Everything downstream
// receives an explicit Settings value, so resolution logic stays pure and
// testable without touching global process state.
//
// Authentication variables (DATABRICKS_HOST, DATABRICKS_TOKEN, profiles) are
// deliberately not read here; those belong to the vendor SDK's own config
// resolution.
package config

import (
	"os"
	"strings"
)

// Environment variables consumed by this tool.
const (
	// EnvWarehouseID names the SQL warehouse to run discovery queries on.
	EnvWarehouseID = "DATABRICKS_WAREHOUSE_ID"
	// EnvHTTPPath is a SQL connection path such as /sql/1.0/warehouses/abc123,
	// from which a warehouse ID can be extracted.
	EnvHTTPPath = "DATABRICKS_HTTP_PATH"
)

// Settings holds the warehouse-selection inputs for one invocation.
type Settings struct {
	WarehouseID string
	HTTPPath    string
}

// FromEnv reads Settings from the process environment.
func FromEnv() Settings {
	return Settings{
		WarehouseID: strings.TrimSpace(os.Getenv(EnvWarehouseID)),
		HTTPPath:    strings.TrimSpace(os.Getenv(EnvHTTPPath)),
	}
}
