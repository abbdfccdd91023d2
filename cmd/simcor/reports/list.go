package reportscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alignlab/simcor/pkg/cliui"
)

const listLongDesc string = `List all persisted comparison reports, newest first.

Examples:
  simcor reports list
  simcor reports list --sqlite simcor.db`

const listShortDesc string = "List comparison reports"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	ctx := context.Background()

	storer, err := newStorageDriver(ctx, cmd)
	if err != nil {
		return err
	}
	defer storer.Close()

	reports, err := storer.List(ctx)
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	if len(reports) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No reports stored."))
		return nil
	}

	fmt.Printf("\n  %s %d\n\n", cliui.KeyStyle.Render("Reports:"), len(reports))

	for _, rep := range reports {
		mode := "signed"
		if rep.Absolute {
			mode = "absolute"
		}

		fmt.Printf("  %s  %s\n",
			cliui.ValueStyle.Render(rep.ID),
			cliui.DimStyle.Render(rep.CreatedAt.Format("2006-01-02 15:04:05")),
		)
		fmt.Printf("    %s vs %s  r=%.4f  %d pairs  %s\n\n",
			rep.NameA, rep.NameB, rep.Pearson, rep.PairCount, mode,
		)
	}

	return nil
}
