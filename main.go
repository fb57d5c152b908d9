// Package main is the entry point for the mvrefresh CLI.
// It refreshes materialized Databricks metric views by starting updates of
// their backing Lakeflow pipelines.
package main

import (
	"github.com/florent-brosse/dbt-databricks-metrics/cmd"
)

func main() {
	cmd.Execute()
}
