// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/config"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/warehouse"
)

// warehouseCmd shows which SQL warehouse discovery queries would run on and
// where that choice came from, without executing anything.
var warehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Show which SQL warehouse discovery queries would use",
	Long: `The warehouse command resolves the SQL warehouse exactly the way discovery
does — DATABRICKS_WAREHOUSE_ID first, then DATABRICKS_HTTP_PATH, then the
first running warehouse in the workspace — and displays the result together
with its provenance. This helps verify the environment before a refresh
batch touches anything.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.FromEnv()
		client, err := clientOrReport()
		if err != nil {
			return err
		}

		stopSpinner := startInlineSpinner(os.Stderr, "Resolving warehouse...")
		id, source, err := warehouse.Resolve(cmd.Context(), settings, client)
		stopSpinner()
		if err != nil {
			pterm.Println("⚠️  " + logging.PresentError("No warehouse could be resolved", err))
			pterm.Println("   Set " + config.EnvWarehouseID + " or " + config.EnvHTTPPath + " and try again.")
			return errReported
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("SQL Warehouse")).
			WithLeftPadding(1).
			WithRightPadding(1).
			Println(id)
		pterm.Println()
		pterm.Printf("Resolved from: %s\n", source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warehouseCmd)
}
