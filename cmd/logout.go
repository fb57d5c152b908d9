// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/keychain"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
)

// logoutCmd removes credentials stored by `login` from the OS keychain.
// Environment variables and Databricks CLI profiles are untouched.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove Databricks credentials stored in the OS keychain",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keychain.Clear(); err != nil {
			pterm.Println("⚠️  " + logging.PresentError("Could not clear the keychain", err))
			return errReported
		}
		pterm.Println("✅ Stored Databricks credentials removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
