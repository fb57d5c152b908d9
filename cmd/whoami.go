// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/httperrors"
)

// whoamiCmd shows the identity the workspace client authenticates as.
// Useful for verifying credentials before running a refresh batch.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated Databricks workspace user",

	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientOrReport()
		if err != nil {
			return err
		}

		stopSpinner := startInlineSpinner(os.Stderr, "Checking workspace identity...")
		user, err := client.CurrentUser(cmd.Context())
		stopSpinner()
		if err != nil {
			return httperrors.FormatNetworkError(err, "checking workspace identity")
		}

		pterm.Printf("👤 Current user: %s\n", user)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
