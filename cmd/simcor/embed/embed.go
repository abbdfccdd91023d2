// Package embedcmder provides the embed command for turning a list of
// study items into a cosine similarity matrix.
package embedcmder

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/cliui"
	"github.com/alignlab/simcor/pkg/config"
	embeddingutils "github.com/alignlab/simcor/pkg/embeddings/utils"
	"github.com/alignlab/simcor/pkg/labmatrix"
	"github.com/alignlab/simcor/pkg/logger"
	"github.com/alignlab/simcor/pkg/matrixio"
	"github.com/alignlab/simcor/pkg/similarity"
	"github.com/alignlab/simcor/pkg/vector"
	vectorutils "github.com/alignlab/simcor/pkg/vector/utils"
	"github.com/alignlab/simcor/pkg/worker"
)

type embedCommander struct {
	study   string
	workers uint
	cache   bool

	embeddingProvider string
	embeddingTarget   string
	embeddingModel    string
	embeddingDims     uint
	embeddingAPIKey   string

	vectorStoreProvider string
	vectorStoreTarget   string

	debug  bool
	logger *zap.Logger
}

const embedLongDesc string = `Embed study items and write a cosine similarity matrix.

The items file lists one item per line; blank lines and lines starting
with # are skipped. Each item is embedded with the configured provider,
pairwise cosine similarities are computed, and the resulting labeled
matrix is written as CSV for use with "simcor compare".

With --cache, each embedding is also stored in the configured vector
store keyed by item label, tagged with the --study name.

Examples:
  simcor embed items.txt model.csv
  simcor embed --study virtues --cache items.txt virtues.csv
  simcor embed --embedding-provider openai items.txt model.csv`

const embedShortDesc string = "Embed items into a similarity matrix"

func NewEmbedCmd() *cobra.Command {
	cmder := &embedCommander{}

	cmd := &cobra.Command{
		Use:   "embed <items-file> <output.csv>",
		Short: embedShortDesc,
		Long:  embedLongDesc,
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

			if !cmd.Flags().Changed("embedding-provider") {
				cmder.embeddingProvider = cfg.Embedding.Provider
			}
			if !cmd.Flags().Changed("embedding-target") {
				cmder.embeddingTarget = cfg.Embedding.Target
			}
			if !cmd.Flags().Changed("embedding-model") {
				cmder.embeddingModel = cfg.Embedding.Model
			}
			if !cmd.Flags().Changed("embedding-dimensions") {
				cmder.embeddingDims = cfg.Embedding.Dimensions
			}
			if cmder.embeddingAPIKey == "" {
				cmder.embeddingAPIKey = cfg.Embedding.APIKey
			}
			if !cmd.Flags().Changed("vector-store-provider") {
				cmder.vectorStoreProvider = cfg.VectorStore.Provider
			}
			if !cmd.Flags().Changed("vector-store-target") {
				cmder.vectorStoreTarget = cfg.VectorStore.Target
			}

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
	cmd.Flags().StringVar(&cmder.study, "study", "", "Study name to tag cached embeddings")
	cmd.Flags().UintVarP(&cmder.workers, "workers", "w", 3, "Number of concurrent embedding workers")
	cmd.Flags().BoolVar(&cmder.cache, "cache", false, "Store embeddings in the configured vector store")
	cmd.Flags().StringVar(&cmder.embeddingProvider, "embedding-provider", defaults.Embedding.Provider, "Embedding provider type (ollama, openai)")
	cmd.Flags().StringVar(&cmder.embeddingTarget, "embedding-target", defaults.Embedding.Target, "Embedding provider URL")
	cmd.Flags().StringVar(&cmder.embeddingModel, "embedding-model", defaults.Embedding.Model, "Embedding model name")
	cmd.Flags().UintVar(&cmder.embeddingDims, "embedding-dimensions", defaults.Embedding.Dimensions, "Embedding vector dimensions")
	cmd.Flags().StringVar(&cmder.embeddingAPIKey, "embedding-api-key", "", "API key for the embedding provider")
	cmd.Flags().StringVar(&cmder.vectorStoreProvider, "vector-store-provider", defaults.VectorStore.Provider, "Vector store provider type (sqlite, chroma)")
	cmd.Flags().StringVar(&cmder.vectorStoreTarget, "vector-store-target", defaults.VectorStore.Target, "Vector store target (path or URL)")

	return cmd
}

func (c *embedCommander) run(itemsPath, outputPath string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	labels, err := readItems(itemsPath)
	if err != nil {
		return err
	}
	if len(labels) < 2 {
		return fmt.Errorf("need at least two items, got %d", len(labels))
	}

	fmt.Printf("\n  %s %d items from %s\n\n",
		cliui.KeyStyle.Render("Embedding:"),
		len(labels),
		cliui.DimStyle.Render(itemsPath),
	)

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: c.embeddingProvider,
		TargetURL:    c.embeddingTarget,
		Model:        c.embeddingModel,
		APIKey:       c.embeddingAPIKey,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	var vdriver vector.Driver
	if c.cache {
		vdriver, err = vectorutils.NewVectorDriver(&vectorutils.NewVectorDriverOpts{
			ProviderType: c.vectorStoreProvider,
			Target:       c.vectorStoreTarget,
			Dimensions:   c.embeddingDims,
			Logger:       c.logger,
		})
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}
		defer vdriver.Close()
	}

	var vectors [][]float32
	if err := cliui.Step(os.Stdout, "Embedding items", func() error {
		pool, poolErr := worker.NewPool(&worker.Config{
			Embedder:     embedder,
			VectorDriver: vdriver,
			NumWorkers:   c.workers,
			QueueSize:    uint(len(labels)),
			Logger:       c.logger,
		})
		if poolErr != nil {
			return poolErr
		}

		for _, label := range labels {
			if !pool.Enqueue(worker.Job{Label: label, Study: c.study}) {
				pool.Close()
				return fmt.Errorf("embedding queue rejected item %q", label)
			}
		}
		pool.Close()

		vectors, poolErr = pool.Vectors(labels)
		return poolErr
	}); err != nil {
		return err
	}

	var matrix *labmatrix.LabeledMatrix
	if err := cliui.Step(os.Stdout, "Computing similarity matrix", func() error {
		var simErr error
		matrix, simErr = similarity.MatrixFromEmbeddings(labels, vectors)
		return simErr
	}); err != nil {
		return err
	}

	if err := cliui.Step(os.Stdout, fmt.Sprintf("Writing %s", outputPath), func() error {
		return matrixio.WriteFile(outputPath, matrix)
	}); err != nil {
		return err
	}

	fmt.Printf("\n  %s Wrote %dx%d matrix to %s\n\n",
		cliui.SuccessMark,
		matrix.Len(), matrix.Len(),
		cliui.ValueStyle.Render(outputPath),
	)

	return nil
}

// readItems reads one item label per line, skipping blanks and comments.
func readItems(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening items file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading items file: %w", err)
	}

	return labels, nil
}
