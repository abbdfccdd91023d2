package reportscmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alignlab/simcor/pkg/cliui"
)

const showLongDesc string = `Show a single comparison report in full.

Examples:
  simcor reports show 2f1c8a7e-...`

const showShortDesc string = "Show a comparison report"

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: showShortDesc,
		Long:  showLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}

	return cmd
}

func runShow(cmd *cobra.Command, id string) error {
	ctx := context.Background()

	storer, err := newStorageDriver(ctx, cmd)
	if err != nil {
		return err
	}
	defer storer.Close()

	rep, err := storer.Get(ctx, id)
	if err != nil {
		return err
	}

	mode := "signed"
	if rep.Absolute {
		mode = "absolute"
	}

	fmt.Printf("\n  %s %s\n", cliui.KeyStyle.Render("Report:"), cliui.ValueStyle.Render(rep.ID))
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Created:"), rep.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  %s %s vs %s\n", cliui.KeyStyle.Render("Matrices:"), rep.NameA, rep.NameB)
	fmt.Printf("  %s %d (%s)\n", cliui.KeyStyle.Render("Pairs:"), rep.PairCount, mode)
	fmt.Printf("  %s %.6f\n", cliui.KeyStyle.Render("Pearson r:"), rep.Pearson)
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Labels:"),
		cliui.DimStyle.Render(strings.Join(rep.Labels, ", ")),
	)

	return nil
}
