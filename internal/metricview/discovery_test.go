// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package metricview

import (
	"context"
	"errors"
	"testing"

	"github.com/florent-brosse/dbt-databricks-metrics/internal/config"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/workspace"
)

// fakeClient implements workspace.Client for discovery tests.
type fakeClient struct {
	rows       [][]string
	queryErr   error
	listErr    error
	warehouses []workspace.Warehouse

	gotWarehouseID string
	gotStatement   string
	gotWaitTimeout string
	queries        int
}

func (f *fakeClient) RunQuery(ctx context.Context, warehouseID, statement, waitTimeout string) ([][]string, error) {
	f.queries++
	f.gotWarehouseID = warehouseID
	f.gotStatement = statement
	f.gotWaitTimeout = waitTimeout
	return f.rows, f.queryErr
}

func (f *fakeClient) ListWarehouses(ctx context.Context) ([]workspace.Warehouse, error) {
	return f.warehouses, f.listErr
}

func (f *fakeClient) StartPipelineUpdate(ctx context.Context, pipelineID string) error {
	return nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (string, error) { return "", nil }

func TestExtractPipelineID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pipeline URL",
			in:   "https://example.cloud.databricks.com/pipelines/3f9a7b2c-1111-2222-3333-444455556666",
			want: "3f9a7b2c-1111-2222-3333-444455556666",
		},
		{
			name: "embedded in row text",
			in:   "Refresh information: pipelines/01484540-0a06-414a-b10f-e1b0e8097f15?o=123",
			want: "01484540-0a06-414a-b10f-e1b0e8097f15",
		},
		{
			name: "no pipeline fragment",
			in:   "Type: METRIC_VIEW",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPipelineID(tt.in); got != tt.want {
				t.Errorf("ExtractPipelineID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDiscoverFindsFirstPipelineInRowOrder(t *testing.T) {
	client := &fakeClient{rows: [][]string{
		{"col_name", "data_type"},
		{"Refresh information", "https://host/pipelines/3f9a7b2c-1111-2222-3333-444455556666"},
		{"Other", "pipelines/ffffffff-0000-0000-0000-000000000000"},
	}}
	d := NewDiscoverer(client, config.Settings{WarehouseID: "abc123"})

	got := d.Discover(context.Background(), "main.analytics.mv_orders")
	if got != "3f9a7b2c-1111-2222-3333-444455556666" {
		t.Errorf("Discover() = %q, want first pipeline ID in row order", got)
	}
	if client.gotWarehouseID != "abc123" {
		t.Errorf("Discover() used warehouse %q, want abc123", client.gotWarehouseID)
	}
	if client.gotStatement != "DESCRIBE EXTENDED main.analytics.mv_orders" {
		t.Errorf("Discover() statement = %q", client.gotStatement)
	}
	if client.gotWaitTimeout != "30s" {
		t.Errorf("Discover() wait timeout = %q, want 30s", client.gotWaitTimeout)
	}
}

func TestDiscoverNoPipelineInResult(t *testing.T) {
	client := &fakeClient{rows: [][]string{{"col", "int"}, {"Type", "METRIC_VIEW"}}}
	d := NewDiscoverer(client, config.Settings{WarehouseID: "abc123"})

	if got := d.Discover(context.Background(), "main.analytics.mv_orders"); got != "" {
		t.Errorf("Discover() = %q, want empty for result without pipelines/", got)
	}
}

func TestDiscoverEmptyResult(t *testing.T) {
	client := &fakeClient{}
	d := NewDiscoverer(client, config.Settings{WarehouseID: "abc123"})

	if got := d.Discover(context.Background(), "main.analytics.mv_orders"); got != "" {
		t.Errorf("Discover() = %q, want empty for empty result", got)
	}
}

func TestDiscoverQueryFailureIsNotFatal(t *testing.T) {
	client := &fakeClient{queryErr: errors.New("warehouse starting up")}
	d := NewDiscoverer(client, config.Settings{WarehouseID: "abc123"})

	if got := d.Discover(context.Background(), "main.analytics.mv_orders"); got != "" {
		t.Errorf("Discover() = %q, want empty on query failure", got)
	}
}

func TestDiscoverWarehouseResolutionFailureIsIsolatedPerView(t *testing.T) {
	// No override settings and a failing listing: resolution fails, but the
	// batch must keep going, so Discover reports and returns empty.
	client := &fakeClient{listErr: errors.New("permission denied")}
	d := NewDiscoverer(client, config.Settings{})

	if got := d.Discover(context.Background(), "main.analytics.mv_a"); got != "" {
		t.Errorf("Discover() = %q, want empty on resolution failure", got)
	}
	if client.queries != 0 {
		t.Errorf("Discover() ran %d queries without a warehouse", client.queries)
	}

	// A later view in the same batch still gets its own attempt.
	client.listErr = nil
	client.warehouses = []workspace.Warehouse{{ID: "w1", State: workspace.StateRunning}}
	client.rows = [][]string{{"Refresh information", "pipelines/aaaaaaaa-bbbb-cccc-dddd-eeeeffff0000"}}

	if got := d.Discover(context.Background(), "main.analytics.mv_b"); got != "aaaaaaaa-bbbb-cccc-dddd-eeeeffff0000" {
		t.Errorf("Discover() after earlier failure = %q, want pipeline ID", got)
	}
	if client.gotWarehouseID != "w1" {
		t.Errorf("Discover() re-resolved warehouse = %q, want w1", client.gotWarehouseID)
	}
}
