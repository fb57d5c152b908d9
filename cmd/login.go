// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/httperrors"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/keychain"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/workspace"
)

var loginHost string

// loginCmd stores workspace credentials in the OS keychain. The token is
// verified against the workspace before anything is written, so a typo'd
// token never gets stored.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store Databricks workspace credentials in the OS keychain",
	Long: `The login command prompts for a workspace URL and a personal access token,
verifies them against the workspace, and stores them in the OS credential
store (macOS Keychain, Windows Credential Manager, Secret Service on Linux).

Stored credentials are only used when DATABRICKS_HOST is not set; environment
variables and Databricks CLI profiles always take precedence.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		host := strings.TrimSpace(loginHost)
		if host == "" {
			entered, err := pterm.DefaultInteractiveTextInput.
				Show("Workspace URL (e.g. https://my-workspace.cloud.databricks.com)")
			if err != nil {
				return err
			}
			host = strings.TrimSpace(entered)
		}
		if host == "" {
			pterm.Println("Error: a workspace URL is required")
			return errReported
		}
		if !strings.HasPrefix(host, "https://") && !strings.HasPrefix(host, "http://") {
			host = "https://" + host
		}

		token, err := pterm.DefaultInteractiveTextInput.
			WithMask("*").
			Show("Personal access token")
		if err != nil {
			return err
		}
		token = strings.TrimSpace(token)
		if token == "" {
			pterm.Println("Error: a personal access token is required")
			return errReported
		}

		client, err := workspace.NewWithToken(host, token)
		if err != nil {
			pterm.Println("❌ " + logging.PresentError("Invalid workspace configuration", err))
			return errReported
		}

		stopSpinner := startInlineSpinner(os.Stderr, "Verifying credentials...")
		user, err := client.CurrentUser(cmd.Context())
		stopSpinner()
		if err != nil {
			return httperrors.FormatNetworkError(err, "verifying credentials")
		}

		if err := keychain.Save(keychain.Credentials{Host: host, Token: token}); err != nil {
			return fmt.Errorf("store credentials in keychain: %w", err)
		}

		pterm.Printf("✅ Logged in to %s as %s\n", host, user)
		pterm.Println("   Credentials stored in the OS keychain.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginHost, "host", "", "Workspace URL (skips the prompt)")
	rootCmd.AddCommand(loginCmd)
}
