// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/workspace"
)

// fakeWorkspace serves canned DESCRIBE results keyed by statement text and
// records pipeline starts.
type fakeWorkspace struct {
	rowsByStatement map[string][][]string
	queryErr        map[string]error
	startErr        map[string]error
	started         []string
}

func (f *fakeWorkspace) RunQuery(ctx context.Context, warehouseID, statement, waitTimeout string) ([][]string, error) {
	if err := f.queryErr[statement]; err != nil {
		return nil, err
	}
	return f.rowsByStatement[statement], nil
}

func (f *fakeWorkspace) ListWarehouses(ctx context.Context) ([]workspace.Warehouse, error) {
	return []workspace.Warehouse{{ID: "w1", State: workspace.StateRunning}}, nil
}

func (f *fakeWorkspace) StartPipelineUpdate(ctx context.Context, pipelineID string) error {
	f.started = append(f.started, pipelineID)
	return f.startErr[pipelineID]
}

func (f *fakeWorkspace) CurrentUser(ctx context.Context) (string, error) {
	return "tester@example.com", nil
}

// runRoot executes the root command against a fake client with a clean flag
// state, returning the command error.
func runRoot(t *testing.T, client workspace.Client, args ...string) error {
	t.Helper()
	orig := newClient
	newClient = func() (workspace.Client, error) { return client, nil }
	t.Cleanup(func() { newClient = orig })

	discoverMode, refreshMode, showVersion = false, false, false
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

func describeRows(pipelineID string) [][]string {
	return [][]string{
		{"col_name", "data_type"},
		{"Refresh information", "https://host/pipelines/" + pipelineID},
	}
}

func TestNoArgumentsShowsUsageAndFails(t *testing.T) {
	err := runRoot(t, &fakeWorkspace{})
	if !errors.Is(err, errReported) {
		t.Fatalf("root with no args returned %v, want reported failure", err)
	}
}

func TestDiscoverWithoutViewsFails(t *testing.T) {
	err := runRoot(t, &fakeWorkspace{}, "--discover")
	if !errors.Is(err, errReported) {
		t.Fatalf("--discover with no views returned %v, want reported failure", err)
	}
}

func TestRefreshWithoutViewsFails(t *testing.T) {
	err := runRoot(t, &fakeWorkspace{}, "--refresh")
	if !errors.Is(err, errReported) {
		t.Fatalf("--refresh with no views returned %v, want reported failure", err)
	}
}

func TestDiscoverDoesNotStartPipelines(t *testing.T) {
	t.Setenv("DATABRICKS_WAREHOUSE_ID", "w1")
	fake := &fakeWorkspace{rowsByStatement: map[string][][]string{
		"DESCRIBE EXTENDED main.analytics.mv_orders": describeRows("3f9a7b2c-1111-2222-3333-444455556666"),
	}}

	if err := runRoot(t, fake, "--discover", "main.analytics.mv_orders"); err != nil {
		t.Fatalf("--discover returned %v", err)
	}
	if len(fake.started) != 0 {
		t.Errorf("--discover started pipelines %v, want none", fake.started)
	}
}

func TestDiscoverNotFoundStillSucceeds(t *testing.T) {
	t.Setenv("DATABRICKS_WAREHOUSE_ID", "w1")
	fake := &fakeWorkspace{}

	if err := runRoot(t, fake, "--discover", "main.analytics.mv_missing"); err != nil {
		t.Fatalf("--discover with no result returned %v, want success", err)
	}
}

func TestRefreshStartsOnlyResolvedPipelines(t *testing.T) {
	t.Setenv("DATABRICKS_WAREHOUSE_ID", "w1")
	fake := &fakeWorkspace{
		rowsByStatement: map[string][][]string{
			"DESCRIBE EXTENDED main.analytics.mv_a": describeRows("aaaaaaaa-0000-0000-0000-000000000001"),
		},
		queryErr: map[string]error{
			"DESCRIBE EXTENDED main.analytics.mv_b": errors.New("table not found"),
		},
	}

	if err := runRoot(t, fake, "--refresh", "main.analytics.mv_a", "main.analytics.mv_b"); err != nil {
		t.Fatalf("--refresh returned %v, want success when one view resolved", err)
	}
	want := []string{"aaaaaaaa-0000-0000-0000-000000000001"}
	if !reflect.DeepEqual(fake.started, want) {
		t.Errorf("--refresh started %v, want %v", fake.started, want)
	}
}

func TestRefreshWithNothingResolvedFails(t *testing.T) {
	t.Setenv("DATABRICKS_WAREHOUSE_ID", "w1")
	fake := &fakeWorkspace{}

	err := runRoot(t, fake, "--refresh", "main.analytics.mv_missing")
	if !errors.Is(err, errReported) {
		t.Fatalf("--refresh with nothing resolved returned %v, want reported failure", err)
	}
	if len(fake.started) != 0 {
		t.Errorf("--refresh started %v, want none", fake.started)
	}
}

func TestDirectPipelineIDsAreRefreshedInOrder(t *testing.T) {
	fake := &fakeWorkspace{startErr: map[string]error{
		"p1": errors.New("pipeline is already running"),
	}}

	if err := runRoot(t, fake, "p1", "p2"); err != nil {
		t.Fatalf("direct-ID refresh returned %v, want success despite p1 failure", err)
	}
	want := []string{"p1", "p2"}
	if !reflect.DeepEqual(fake.started, want) {
		t.Errorf("direct-ID refresh started %v, want %v", fake.started, want)
	}
}
