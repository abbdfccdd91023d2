// Package comparecmder provides the compare command for aligning and
// correlating two similarity matrices from CSV files.
package comparecmder

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apicompare "github.com/alignlab/simcor/api/compare"
	"github.com/alignlab/simcor/pkg/cliui"
	"github.com/alignlab/simcor/pkg/config"
	"github.com/alignlab/simcor/pkg/eventstream"
	eventstreamutils "github.com/alignlab/simcor/pkg/eventstream/utils"
	"github.com/alignlab/simcor/pkg/logger"
	"github.com/alignlab/simcor/pkg/matrixio"
	"github.com/alignlab/simcor/pkg/storage"
	storageutils "github.com/alignlab/simcor/pkg/storage/utils"
)

type compareCommander struct {
	nameA    string
	nameB    string
	absolute bool
	noStore  bool

	storageProvider string
	sqlitePath      string
	postgresDSN     string
	streamProvider  string
	streamBrokers   string
	streamTopic     string

	debug  bool
	logger *zap.Logger
}

const compareLongDesc string = `Align and correlate two similarity matrices.

Both files are labeled CSV matrices: a header row of item labels, then
one row per item with the label in the first column. The matrices are
restricted to their shared labels, the strictly-upper triangles are
flattened in a common order, and the two sequences are correlated with
Pearson's r.

Use --absolute to correlate magnitudes instead of signed values, which
treats strong negative similarity as strong similarity.

The resulting report is persisted to the configured storage backend
unless --no-store is given.

Examples:
  simcor compare human.csv model.csv
  simcor compare --absolute study_a.csv study_b.csv
  simcor compare --no-store pilot.csv replication.csv`

const compareShortDesc string = "Align and correlate two similarity matrices"

func NewCompareCmd() *cobra.Command {
	cmder := &compareCommander{}

	cmd := &cobra.Command{
		Use:   "compare <matrix-a.csv> <matrix-b.csv>",
		Short: compareShortDesc,
		Long:  compareLongDesc,
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("storage-provider") {
				cmder.storageProvider = cfg.Storage.Provider
			}
			if !cmd.Flags().Changed("sqlite") {
				cmder.sqlitePath = cfg.Storage.SQLitePath
			}
			if !cmd.Flags().Changed("postgres-dsn") {
				cmder.postgresDSN = cfg.Storage.PostgresDSN
			}
			cmder.streamProvider = cfg.EventStream.Provider
			cmder.streamBrokers = cfg.EventStream.Brokers
			cmder.streamTopic = cfg.EventStream.Topic

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run(args[0], args[1])
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVar(&cmder.nameA, "name-a", "", "Name for the first matrix (default: file name)")
	cmd.Flags().StringVar(&cmder.nameB, "name-b", "", "Name for the second matrix (default: file name)")
	cmd.Flags().BoolVarP(&cmder.absolute, "absolute", "a", false, "Correlate absolute values instead of signed values")
	cmd.Flags().BoolVar(&cmder.noStore, "no-store", false, "Skip persisting the comparison report")
	cmd.Flags().StringVar(&cmder.storageProvider, "storage-provider", defaults.Storage.Provider, "Report storage provider (memory, sqlite, postgres)")
	cmd.Flags().StringVarP(&cmder.sqlitePath, "sqlite", "s", defaults.Storage.SQLitePath, "Path to SQLite database for report storage")
	cmd.Flags().StringVar(&cmder.postgresDSN, "postgres-dsn", "", "Postgres connection string for report storage")

	return cmd
}

func (c *compareCommander) run(pathA, pathB string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	ctx := context.Background()

	a, err := matrixio.ReadFile(pathA)
	if err != nil {
		return fmt.Errorf("reading %s: %w", pathA, err)
	}

	b, err := matrixio.ReadFile(pathB)
	if err != nil {
		return fmt.Errorf("reading %s: %w", pathB, err)
	}

	nameA := c.nameA
	if nameA == "" {
		nameA = matrixName(pathA)
	}
	nameB := c.nameB
	if nameB == "" {
		nameB = matrixName(pathB)
	}

	var storer storage.Driver
	var publisher eventstream.Publisher

	if !c.noStore {
		storer, err = storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
			ProviderType: c.storageProvider,
			SQLitePath:   c.sqlitePath,
			PostgresDSN:  c.postgresDSN,
		})
		if err != nil {
			return fmt.Errorf("creating report store: %w", err)
		}
		defer storer.Close()

		publisher, err = eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
			ProviderType: c.streamProvider,
			Brokers:      c.streamBrokers,
			Topic:        c.streamTopic,
			Logger:       c.logger,
		})
		if err != nil {
			return fmt.Errorf("creating event publisher: %w", err)
		}
		defer publisher.Close()
	}

	output, err := apicompare.Compare(ctx, &apicompare.Input{
		A:        apicompare.MatrixInput{Name: nameA, Labels: a.Labels(), Rows: a.Rows()},
		B:        apicompare.MatrixInput{Name: nameB, Labels: b.Labels(), Rows: b.Rows()},
		Absolute: c.absolute,
	}, storer, publisher, c.logger)
	if err != nil {
		return err
	}

	rep := output.Report

	mode := "signed"
	if rep.Absolute {
		mode = "absolute"
	}

	fmt.Printf("\n  %s %s vs %s\n\n",
		cliui.KeyStyle.Render("Compared:"),
		cliui.ValueStyle.Render(rep.NameA),
		cliui.ValueStyle.Render(rep.NameB),
	)
	fmt.Printf("  %s %d of %d / %d\n",
		cliui.KeyStyle.Render("Shared labels:"),
		len(output.SharedLabels), a.Len(), b.Len(),
	)
	fmt.Printf("  %s %d (%s)\n",
		cliui.KeyStyle.Render("Pairs:"),
		rep.PairCount, mode,
	)
	fmt.Printf("  %s %.6f\n\n",
		cliui.KeyStyle.Render("Pearson r:"),
		rep.Pearson,
	)

	if !c.noStore {
		fmt.Printf("  %s Report %s stored\n\n",
			cliui.SuccessMark,
			cliui.DimStyle.Render(rep.ID),
		)
	}

	return nil
}

// matrixName derives a report name from a CSV path.
func matrixName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
