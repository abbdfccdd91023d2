// Package configcmder provides the config command for managing persistent
// simcor configuration stored in the .simcor/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent simcor configuration.

Configuration is stored as config.toml in the .simcor/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  storage.provider, storage.sqlite_path, storage.postgres_dsn,
  api.listen, client.api_target,
  vector_store.provider, vector_store.target,
  embedding.provider, embedding.target, embedding.model,
  embedding.dimensions, embedding.api_key,
  event_stream.provider, event_stream.brokers, event_stream.topic

Use subcommands to get, set, or list configuration values:
  simcor config set <key> <value>    Set a configuration value
  simcor config get <key>            Get a configuration value
  simcor config list                 List all configuration values

Examples:
  simcor config set embedding.model nomic-embed-text
  simcor config set storage.provider postgres
  simcor config get embedding.model
  simcor config list`

const configShortDesc string = "Manage persistent simcor configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
