// Package servecmder provides the serve command for running the simcor
// API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/api"
	"github.com/alignlab/simcor/pkg/config"
	eventstreamutils "github.com/alignlab/simcor/pkg/eventstream/utils"
	"github.com/alignlab/simcor/pkg/logger"
	storageutils "github.com/alignlab/simcor/pkg/storage/utils"
)

type ServeCommander struct {
	listen          string
	storageProvider string
	sqlitePath      string
	postgresDSN     string
	streamProvider  string
	streamBrokers   string
	streamTopic     string
	debug           bool
	logger          *zap.Logger
}

const serveLongDesc string = `Run the simcor API server.

The server exposes matrix comparison and report endpoints:
  POST /v1/compare        Align and correlate two similarity matrices
  GET  /v1/reports        List persisted comparison reports
  GET  /v1/reports/:id    Fetch a single report

Reports are persisted to the configured storage backend (memory, sqlite,
or postgres) and optionally published to a Kafka topic.`

const serveShortDesc string = "Run the simcor API server"

// serveFlags is the registry of flags shared with viper binding.
var serveFlags = config.FlagSet{
	config.FlagAPIListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "api.listen",
		Description: "Address for API server to listen on",
	},
	config.FlagStorageProvider: {
		Name:        "storage-provider",
		ViperKey:    "storage.provider",
		Description: "Report storage provider (memory, sqlite, postgres)",
	},
	config.FlagSQLite: {
		Name:        "sqlite",
		Shorthand:   "s",
		ViperKey:    "storage.sqlite_path",
		Description: "Path to SQLite database for report storage",
	},
	config.FlagPostgresDSN: {
		Name:        "postgres-dsn",
		ViperKey:    "storage.postgres_dsn",
		Description: "Postgres connection string for report storage",
	},
	config.FlagEventStreamProv: {
		Name:        "event-stream-provider",
		ViperKey:    "event_stream.provider",
		Description: "Report event publisher (nop, kafka)",
	},
	config.FlagEventStreamBrokers: {
		Name:        "event-stream-brokers",
		ViperKey:    "event_stream.brokers",
		Description: "Comma-separated Kafka broker addresses",
	},
	config.FlagEventStreamTopic: {
		Name:        "event-stream-topic",
		ViperKey:    "event_stream.topic",
		Description: "Kafka topic report events are published to",
	},
}

var serveFlagKeys = []string{
	config.FlagAPIListen,
	config.FlagStorageProvider,
	config.FlagSQLite,
	config.FlagPostgresDSN,
	config.FlagEventStreamProv,
	config.FlagEventStreamBrokers,
	config.FlagEventStreamTopic,
}

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, serveFlags, serveFlagKeys)

			cmder.listen = v.GetString("api.listen")
			cmder.storageProvider = v.GetString("storage.provider")
			cmder.sqlitePath = v.GetString("storage.sqlite_path")
			cmder.postgresDSN = v.GetString("storage.postgres_dsn")
			cmder.streamProvider = v.GetString("event_stream.provider")
			cmder.streamBrokers = v.GetString("event_stream.brokers")
			cmder.streamTopic = v.GetString("event_stream.topic")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, serveFlags, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, serveFlags, config.FlagStorageProvider, &cmder.storageProvider)
	config.AddStringFlag(cmd, serveFlags, config.FlagSQLite, &cmder.sqlitePath)
	config.AddStringFlag(cmd, serveFlags, config.FlagPostgresDSN, &cmder.postgresDSN)
	config.AddStringFlag(cmd, serveFlags, config.FlagEventStreamProv, &cmder.streamProvider)
	config.AddStringFlag(cmd, serveFlags, config.FlagEventStreamBrokers, &cmder.streamBrokers)
	config.AddStringFlag(cmd, serveFlags, config.FlagEventStreamTopic, &cmder.streamTopic)

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	ctx := context.Background()

	storer, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
		ProviderType: c.storageProvider,
		SQLitePath:   c.sqlitePath,
		PostgresDSN:  c.postgresDSN,
	})
	if err != nil {
		return fmt.Errorf("creating report store: %w", err)
	}
	defer storer.Close()

	c.logger.Info("report storage configured",
		zap.String("provider", c.storageProvider),
	)

	publisher, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
		ProviderType: c.streamProvider,
		Brokers:      c.streamBrokers,
		Topic:        c.streamTopic,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating event publisher: %w", err)
	}
	defer publisher.Close()

	server := api.NewServer(api.Config{
		ListenAddr: c.listen,
		Publisher:  publisher,
	}, storer, c.logger)

	// Channel to capture errors from the server goroutine
	errChan := make(chan error, 1)

	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
