package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/cheese"
	"github.com/gogpu/cheese/job"
)

var checkCmd = &cobra.Command{
	Use:   "check <job.yaml>",
	Short: "Validate hole spacing for every chip layer",
	Long: `Load a job file and report, per chip layer, whether the hole shape fits
its spacing and how many lattice positions the layer would get.

Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	j, err := job.Load(args[0])
	if err != nil {
		return err
	}
	cheesers, err := j.Cheesers()
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()
	for _, c := range cheesers {
		cfg := c.Config()
		outcome := cheese.Validate(cfg.Shape(), cfg.DeltaX, cfg.DeltaY)
		grid := cfg.GridRect()
		if grid.Empty() {
			p.Fprintf(out, "%s layer %d: %v, no area inside edge_nocheese\n", cfg.Chip, cfg.Layer, outcome)
			continue
		}
		nx, ny := cheese.GridSize(grid, cfg.DeltaX, cfg.DeltaY)
		p.Fprintf(out, "%s layer %d: %v, %d x %d = %d placements\n",
			cfg.Chip, cfg.Layer, outcome, nx, ny, nx*ny)
	}
	return nil
}
