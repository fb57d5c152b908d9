// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workspace

import (
	"context"
	"fmt"
	"os"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/pipelines"
	"github.com/databricks/databricks-sdk-go/service/sql"

	errs "github.com/florent-brosse/dbt-databricks-metrics/internal/errors"
	"github.com/florent-brosse/dbt-databricks-metrics/internal/keychain"
)

// sdkClient implements Client on top of the official Databricks SDK.
type sdkClient struct {
	w *databricks.WorkspaceClient
}

// New builds a workspace client from ambient configuration: environment
// variables, a Databricks CLI profile, or credentials previously stored via
// `login`. Keychain credentials are only consulted when DATABRICKS_HOST is
// unset, so the standard SDK resolution order stays authoritative.
func New() (Client, error) {
	cfg := &databricks.Config{}
	if os.Getenv("DATABRICKS_HOST") == "" {
		if creds, err := keychain.Load(); err == nil {
			cfg.Host = creds.Host
			cfg.Token = creds.Token
		}
	}
	return newWithConfig(cfg)
}

// NewWithToken builds a workspace client from an explicit host and personal
// access token, bypassing ambient configuration. Used by `login` to verify
// credentials before storing them.
func NewWithToken(host, token string) (Client, error) {
	return newWithConfig(&databricks.Config{Host: host, Token: token})
}

func newWithConfig(cfg *databricks.Config) (Client, error) {
	w, err := databricks.NewWorkspaceClient(cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ClientInitFailed, "initialize Databricks workspace client", err)
	}
	return &sdkClient{w: w}, nil
}

func (c *sdkClient) RunQuery(ctx context.Context, warehouseID, statement, waitTimeout string) ([][]string, error) {
	resp, err := c.w.StatementExecution.ExecuteStatement(ctx, sql.ExecuteStatementRequest{
		WarehouseId: warehouseID,
		Statement:   statement,
		WaitTimeout: waitTimeout,
	})
	if err != nil {
		return nil, err
	}
	if resp.Status != nil && resp.Status.Error != nil {
		return nil, fmt.Errorf("statement failed: %s", resp.Status.Error.Message)
	}
	if resp.Result == nil {
		return nil, nil
	}
	return resp.Result.DataArray, nil
}

func (c *sdkClient) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	endpoints, err := c.w.Warehouses.ListAll(ctx, sql.ListWarehousesRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]Warehouse, 0, len(endpoints))
	for _, e := range endpoints {
		out = append(out, Warehouse{ID: e.Id, State: string(e.State)})
	}
	return out, nil
}

func (c *sdkClient) StartPipelineUpdate(ctx context.Context, pipelineID string) error {
	_, err := c.w.Pipelines.StartUpdate(ctx, pipelines.StartUpdate{PipelineId: pipelineID})
	return err
}

func (c *sdkClient) CurrentUser(ctx context.Context) (string, error) {
	me, err := c.w.CurrentUser.Me(ctx)
	if err != nil {
		return "", err
	}
	if me.UserName != "" {
		return me.UserName, nil
	}
	return me.DisplayName, nil
}
