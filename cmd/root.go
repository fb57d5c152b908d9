// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for mvrefresh.
// The root command carries the operational surface (--discover, --refresh,
// or direct pipeline IDs); subcommands cover credentials and workspace
// inspection.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/config"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/metricview"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/refresh"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/workspace"
)

// errReported marks a failure that was already explained on stdout;
// Execute exits non-zero without printing it again.
var errReported = errors.New("already reported")

// newClient builds the workspace client. Variable so tests can substitute
// a fake without an HTTP transport.
var newClient = workspace.New

var (
	discoverMode bool
	refreshMode  bool
	showVersion  bool
)

// rootCmd is the operational entry point. With --discover it only looks up
// pipeline IDs; with --refresh it looks them up and starts updates; with
// bare arguments it treats each one as a pipeline ID and starts updates
// directly.
var rootCmd = &cobra.Command{
	Use:   "mvrefresh [--discover | --refresh] <metric_view>... | <pipeline_id>...",
	Short: "Refresh materialized Databricks metric views",
	Long: `mvrefresh triggers refreshes of the Lakeflow pipelines backing metric views
with materialization. A view's pipeline ID is discovered by running
DESCRIBE EXTENDED through a SQL warehouse and extracting the pipeline URL
from the output, then a pipeline update is started for each resolved ID.

Authentication comes from DATABRICKS_HOST and DATABRICKS_TOKEN, a Databricks
CLI profile, or credentials stored with 'mvrefresh login'. The discovery
warehouse is taken from DATABRICKS_WAREHOUSE_ID or DATABRICKS_HTTP_PATH when
set, otherwise the first running warehouse in the workspace is used.`,
	Example: `  # Discover pipeline IDs for metric views
  mvrefresh --discover main.analytics.mv_order_metrics

  # Refresh specific pipelines by ID
  mvrefresh 01484540-0a06-414a-b10f-e1b0e8097f15

  # Discover and refresh in one go
  mvrefresh --refresh main.analytics.mv_order_metrics`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("mvrefresh %s\n", Version)
			return nil
		}

		ctx := cmd.Context()

		switch {
		case discoverMode:
			if len(args) == 0 {
				pterm.Println("Error: --discover requires a metric view name")
				return errReported
			}
			client, err := clientOrReport()
			if err != nil {
				return err
			}
			d := metricview.NewDiscoverer(client, config.FromEnv())
			for _, view := range args {
				d.Discover(ctx, view)
			}
			return nil

		case refreshMode:
			if len(args) == 0 {
				pterm.Println("Error: --refresh requires metric view name(s)")
				return errReported
			}
			client, err := clientOrReport()
			if err != nil {
				return err
			}
			d := metricview.NewDiscoverer(client, config.FromEnv())
			var pipelineIDs []string
			for _, view := range args {
				if id := d.Discover(ctx, view); id != "" {
					pipelineIDs = append(pipelineIDs, id)
				}
			}
			if len(pipelineIDs) == 0 {
				pterm.Println("No pipelines found to refresh.")
				return errReported
			}
			refresh.Run(ctx, client, pipelineIDs)
			return nil

		case len(args) > 0:
			// Every argument is taken as a literal pipeline ID.
			client, err := clientOrReport()
			if err != nil {
				return err
			}
			refresh.Run(ctx, client, args)
			return nil

		default:
			_ = cmd.Help()
			return errReported
		}
	},
}

// clientOrReport builds the workspace client, printing the fail-fast
// instructions when ambient configuration is unusable.
func clientOrReport() (workspace.Client, error) {
	client, err := newClient()
	if err != nil {
		pterm.Println("Error: could not initialize the Databricks workspace client.")
		pterm.Println("Set DATABRICKS_HOST and DATABRICKS_TOKEN, configure a Databricks CLI profile, or run: mvrefresh login")
		pterm.Debug.Printf("Technical details: %s\n", logging.Mask(err.Error()))
		return nil, errReported
	}
	return client, nil
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&discoverMode, "discover", false, "Only discover pipeline IDs; arguments are metric view names")
	rootCmd.Flags().BoolVar(&refreshMode, "refresh", false, "Discover pipeline IDs and start a refresh; arguments are metric view names")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version")
}
