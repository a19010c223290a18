package cheese

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchFixture(t *testing.T, chips ...string) (*Layers, []*Cheeser) {
	t.Helper()
	layers := NewLayers()
	var cs []*Cheeser
	for _, chip := range chips {
		cfg := testConfig()
		cfg.Chip = chip
		layers.Put(LayerKey{chip, cfg.Layer, RoleGround}, 0, PolygonSet{cfg.Bounds.Polygon()})
		c, err := NewCheeser(cfg)
		require.NoError(t, err)
		cs = append(cs, c)
	}
	return layers, cs
}

func TestRunBatch(t *testing.T) {
	for _, limit := range []int{0, 1, 3} {
		layers, cs := batchFixture(t, "q1", "q2", "q3")
		results, err := RunBatch(context.Background(), layers, cs, limit)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, res := range results {
			assert.True(t, res.Applied, "run %d", i)
			assert.Equal(t, 16, res.Holes)
		}
		assert.Equal(t, []string{"q1", "q2", "q3"}, layers.Chips())
		for _, c := range cs {
			g, ok := layers.Get(c.Key(RoleCheese))
			require.True(t, ok)
			assert.InDelta(t, 8400, g.Polygons.Area(), 1e-6)
		}
	}
}

func TestRunBatchSkippedRun(t *testing.T) {
	layers, cs := batchFixture(t, "q1")
	cfg := testConfig()
	cfg.Chip = "q2"
	cfg.DeltaX = 5
	layers.Put(LayerKey{"q2", cfg.Layer, RoleGround}, 0, PolygonSet{cfg.Bounds.Polygon()})
	bad, err := NewCheeser(cfg)
	require.NoError(t, err)

	results, err := RunBatch(context.Background(), layers, append(cs, bad), 0)
	require.NoError(t, err)
	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.ErrorIs(t, results[1].Skipped, ErrSpacingTooSmall)

	_, ok := layers.Get(bad.Key(RoleCheese))
	assert.False(t, ok)
}

func TestRunBatchDuplicate(t *testing.T) {
	layers, cs := batchFixture(t, "q1")
	_, err := RunBatch(context.Background(), layers, []*Cheeser{cs[0], cs[0]}, 0)
	assert.ErrorIs(t, err, ErrDuplicateRun)
}

func TestRunBatchFailure(t *testing.T) {
	layers, cs := batchFixture(t, "q1")
	cfg := testConfig()
	cfg.Chip = "q2"
	cfg.Keepout = PolygonSet{{Exterior: []Point{{30, 30}, {50, 50}, {50, 30}, {30, 40}}}}
	layers.Put(LayerKey{"q2", cfg.Layer, RoleGround}, 0, PolygonSet{cfg.Bounds.Polygon()})
	bad, err := NewCheeser(cfg)
	require.NoError(t, err)

	_, err = RunBatch(context.Background(), layers, append(cs, bad), 1)
	assert.ErrorIs(t, err, ErrGeometry)
	assert.Equal(t, 2, layers.Len())
	_, ok := layers.Get(cs[0].Key(RoleCheese))
	assert.False(t, ok)
}

func TestRunBatchCancelled(t *testing.T) {
	layers, cs := batchFixture(t, "q1", "q2")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatch(ctx, layers, cs, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, layers.Len())
}
