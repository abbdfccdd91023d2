// Package simcorcmder
package simcorcmder

import (
	"github.com/spf13/cobra"

	comparecmder "github.com/alignlab/simcor/cmd/simcor/compare"
	configcmder "github.com/alignlab/simcor/cmd/simcor/config"
	embedcmder "github.com/alignlab/simcor/cmd/simcor/embed"
	reportscmder "github.com/alignlab/simcor/cmd/simcor/reports"
	servecmder "github.com/alignlab/simcor/cmd/simcor/serve"
	versioncmder "github.com/alignlab/simcor/cmd/version"
)

const simcorLongDesc string = `Simcor correlates similarity structure across paired studies.

Typical flow:
  simcor embed items.txt model.csv     Embed items and write a similarity matrix
  simcor compare human.csv model.csv   Align two matrices and correlate them
  simcor reports list                  List persisted comparison reports
  simcor serve                         Run the comparison API server`

const simcorShortDesc string = "Simcor - Similarity structure correlation"

func NewSimcorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simcor",
		Short: simcorShortDesc,
		Long:  simcorLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .simcor/ config directory")

	// Add subcommands
	cmd.AddCommand(comparecmder.NewCompareCmd())
	cmd.AddCommand(embedcmder.NewEmbedCmd())
	cmd.AddCommand(reportscmder.NewReportsCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
