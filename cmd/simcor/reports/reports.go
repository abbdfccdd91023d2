// Package reportscmder provides the reports command for inspecting
// persisted comparison reports.
package reportscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alignlab/simcor/pkg/config"
	"github.com/alignlab/simcor/pkg/storage"
	storageutils "github.com/alignlab/simcor/pkg/storage/utils"
)

const reportsLongDesc string = `Inspect persisted comparison reports.

Reports are written by "simcor compare" and the API server's
POST /v1/compare endpoint to the configured storage backend.

Use subcommands to list or show reports:
  simcor reports list          List all reports, newest first
  simcor reports show <id>     Show a single report in full

Examples:
  simcor reports list
  simcor reports show 2f1c...`

const reportsShortDesc string = "Inspect persisted comparison reports"

func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: reportsShortDesc,
		Long:  reportsLongDesc,
	}

	cmd.PersistentFlags().String("storage-provider", "", "Report storage provider (memory, sqlite, postgres)")
	cmd.PersistentFlags().StringP("sqlite", "s", "", "Path to SQLite database for report storage")
	cmd.PersistentFlags().String("postgres-dsn", "", "Postgres connection string for report storage")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())

	return cmd
}

// newStorageDriver builds the report store from flags, falling back to
// the persisted config for unset values.
func newStorageDriver(ctx context.Context, cmd *cobra.Command) (storage.Driver, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	provider, _ := cmd.Flags().GetString("storage-provider")
	if provider == "" {
		provider = cfg.Storage.Provider
	}
	sqlitePath, _ := cmd.Flags().GetString("sqlite")
	if sqlitePath == "" {
		sqlitePath = cfg.Storage.SQLitePath
	}
	postgresDSN, _ := cmd.Flags().GetString("postgres-dsn")
	if postgresDSN == "" {
		postgresDSN = cfg.Storage.PostgresDSN
	}

	return storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
		ProviderType: provider,
		SQLitePath:   sqlitePath,
		PostgresDSN:  postgresDSN,
	})
}
