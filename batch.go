package cheese

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type runKey struct {
	chip  string
	layer int
}

// RunBatch applies every cheeser to layers, running up to limit of them
// at once (limit <= 0 means no limit). Each run works on a private copy
// of its own chip layer, so runs never share mutable state; the copies
// are merged back in input order once all runs have finished. Two
// cheesers for the same chip layer are rejected with ErrDuplicateRun.
//
// If any run fails, the remaining runs are cancelled, layers is left
// unmodified and the first error is returned.
func RunBatch(ctx context.Context, layers *Layers, cheesers []*Cheeser, limit int) ([]Result, error) {
	seen := make(map[runKey]bool, len(cheesers))
	scratch := make([]*Layers, len(cheesers))
	for i, c := range cheesers {
		k := runKey{c.cfg.Chip, c.cfg.Layer}
		if seen[k] {
			return nil, fmt.Errorf("%w: chip %q layer %d", ErrDuplicateRun, k.chip, k.layer)
		}
		seen[k] = true
		scratch[i] = layers.Subset(k.chip, k.layer)
	}

	results := make([]Result, len(cheesers))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, c := range cheesers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Apply(scratch[i])
			if err != nil {
				return fmt.Errorf("chip %q layer %d: %w", c.cfg.Chip, c.cfg.Layer, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, c := range cheesers {
		if results[i].Applied {
			layers.Replace(c.cfg.Chip, c.cfg.Layer, scratch[i])
		}
	}
	return results, nil
}
