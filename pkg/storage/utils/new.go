// Package storageutils constructs report stores from provider config.
package storageutils

import (
	"context"
	"fmt"

	"github.com/alignlab/simcor/pkg/storage"
	"github.com/alignlab/simcor/pkg/storage/inmemory"
	"github.com/alignlab/simcor/pkg/storage/postgres"
	"github.com/alignlab/simcor/pkg/storage/sqlite"
)

type NewDriverOpts struct {
	ProviderType string

	// SQLitePath is the database path for the sqlite provider.
	SQLitePath string

	// PostgresDSN is the connection string for the postgres provider.
	PostgresDSN string
}

func NewDriver(ctx context.Context, o *NewDriverOpts) (storage.Driver, error) {
	switch o.ProviderType {
	case "", "memory":
		return inmemory.NewDriver(), nil
	case "sqlite":
		path := o.SQLitePath
		if path == "" {
			path = ":memory:"
		}
		return sqlite.NewDriver(path)
	case "postgres":
		return postgres.NewDriver(ctx, o.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", o.ProviderType)
	}
}
