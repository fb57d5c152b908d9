// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure error presentation.
// It masks credentials before any error text reaches the terminal, so that
// personal access tokens and OAuth secrets embedded in SDK error messages
// (for example from a misconfigured host or an echoed Authorization header)
// are never shown to the user.
package logging

import (
	"regexp"
)

var (
	// Databricks personal access tokens: "dapi" followed by a hex body,
	// optionally with a revision suffix after a dash.
	rePAT    = regexp.MustCompile(`\bdapi[0-9a-f]{8,}(-\d+)?\b`)
	reBearer = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reEnv    = regexp.MustCompile(`(?i)(DATABRICKS_TOKEN=|DATABRICKS_CLIENT_SECRET=)\S+`)
)

// Mask replaces credential material in the input string with "***".
func Mask(s string) string {
	out := s
	out = rePAT.ReplaceAllString(out, "dapi***")
	out = reBearer.ReplaceAllString(out, "$1***")
	out = reEnv.ReplaceAllString(out, "$1***")
	return out
}
