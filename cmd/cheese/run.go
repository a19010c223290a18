package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/cheese"
	"github.com/gogpu/cheese/gds"
	"github.com/gogpu/cheese/job"
	"github.com/gogpu/cheese/preview"
)

var (
	runOutput  string
	runPreview string
	runSize    int
)

var runCmd = &cobra.Command{
	Use:   "run <job.yaml>",
	Short: "Cheese every chip layer of a job and write GDSII",
	Long: `Load a job file, cheese every chip layer it lists and write the layer
set as a GDSII library. Layers that fail validation are reported and left
un-cheesed; a geometry failure aborts the run and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "cheese.gds", "GDSII output file")
	runCmd.Flags().StringVarP(&runPreview, "preview", "p", "", "also render a PNG preview to this file")
	runCmd.Flags().IntVar(&runSize, "size", 800, "preview width and height in pixels")
}

func runRun(cmd *cobra.Command, args []string) error {
	j, err := job.Load(args[0])
	if err != nil {
		return err
	}
	cfgs, err := j.Configs()
	if err != nil {
		return err
	}
	layers, err := j.Ground(cfgs)
	if err != nil {
		return err
	}
	cheesers := make([]*cheese.Cheeser, 0, len(cfgs))
	for _, cfg := range cfgs {
		c, err := cheese.NewCheeser(cfg, j.Options()...)
		if err != nil {
			return err
		}
		cheesers = append(cheesers, c)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := cheese.RunBatch(ctx, layers, cheesers, j.Workers)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()
	total := 0
	for i, res := range results {
		cfg := cheesers[i].Config()
		if !res.Applied {
			p.Fprintf(out, "%s layer %d: skipped: %v\n", cfg.Chip, cfg.Layer, res.Skipped)
			continue
		}
		total += res.Holes
		p.Fprintf(out, "%s layer %d: %d holes from %d placements\n",
			cfg.Chip, cfg.Layer, res.Holes, res.Placements)
	}

	lib := gds.NewLibrary(j.LibraryName())
	lib.Unit = j.UnitOrDefault()
	lib.Precision = j.PrecisionOrDefault()
	if err := gds.FromLayers(lib, layers, j.MaxPointsOrDefault()); err != nil {
		return err
	}
	if err := writeGDS(runOutput, lib); err != nil {
		return err
	}
	p.Fprintf(out, "wrote %s: %d cells, %d holes in %v\n",
		runOutput, len(lib.Cells), total, time.Since(start).Round(time.Millisecond))

	if runPreview != "" {
		opts := preview.DefaultOptions()
		opts.Width, opts.Height = runSize, runSize
		opts.Caption = p.Sprintf("%s: %d holes", j.LibraryName(), total)
		if err := preview.SavePNG(runPreview, layers, opts); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		p.Fprintf(out, "wrote %s\n", runPreview)
	}
	return nil
}

// writeGDS writes lib to path. A partly written file is removed.
func writeGDS(path string, lib *gds.Library) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if _, err := lib.WriteTo(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
