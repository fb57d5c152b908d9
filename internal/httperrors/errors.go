// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors converts technical network failures against the
// Databricks control plane into actionable troubleshooting text.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/logging"
)

// FormatNetworkError displays a user-friendly message for err and returns a
// wrapped error for logging. context describes the operation that failed,
// e.g. "checking workspace identity".
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}
	displayErrorMessage(err, context)
	return fmt.Errorf("network error: %w", err)
}

func displayErrorMessage(err error, context string) {
	switch {
	case isTimeoutError(err):
		pterm.Printf("⏱️  Connection timeout while %s\n", context)
		pterm.Println()
		pterm.Println("The Databricks control plane took too long to respond. This could mean:")
		pterm.Println("  • Slow internet connection")
		pterm.Println("  • The workspace is under heavy load")
		pterm.Println("  • A network firewall is delaying the connection")
		pterm.Println()
	case isDNSError(err):
		pterm.Printf("🌐 Cannot resolve workspace address while %s\n", context)
		pterm.Println()
		pterm.Println("Unable to look up the workspace host. Please check:")
		pterm.Println("  • DATABRICKS_HOST points at your workspace URL")
		pterm.Println("  • Your internet connection and DNS settings are working")
		pterm.Println()
	case isConnectionRefusedError(err):
		pterm.Printf("🚫 Connection refused while %s\n", context)
		pterm.Println()
		pterm.Println("The workspace is not accepting connections. Check the host URL and")
		pterm.Println("any firewall or proxy between you and Databricks.")
		pterm.Println()
	case isTLSError(err):
		pterm.Printf("🔒 Secure connection failed while %s\n", context)
		pterm.Println()
		pterm.Println("Cannot establish HTTPS to the workspace. Check your system clock and")
		pterm.Println("any network proxy intercepting TLS.")
		pterm.Println()
	case isServerError(err):
		pterm.Printf("⚠️  Databricks server error while %s\n", context)
		pterm.Println()
		pterm.Println("The control plane returned a server-side error. This is usually")
		pterm.Println("transient; try again in a few minutes or check the workspace status page.")
		pterm.Println()
	default:
		pterm.Printf("❌ Cannot reach the Databricks workspace while %s\n", context)
		pterm.Println()
		detail := logging.Mask(err.Error())
		if len(detail) > 200 {
			detail = detail[:200] + "..."
		}
		pterm.Println("  " + detail)
		pterm.Println()
	}
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "certificate") ||
		strings.Contains(s, "handshake")
}

func isServerError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "502") ||
		strings.Contains(s, "503") ||
		strings.Contains(s, "504") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "bad gateway") ||
		strings.Contains(s, "service unavailable") ||
		strings.Contains(s, "gateway timeout")
}
