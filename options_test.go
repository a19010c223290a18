package cheese

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.False(t, o.allowOverlap)
	assert.Equal(t, KeepoutClip, o.keepoutMode)
	assert.Zero(t, o.tolerance)
}

func TestOptionsApply(t *testing.T) {
	c, err := NewCheeser(testConfig(),
		WithOverlapAllowed(),
		WithKeepoutMode(KeepoutWholeHoles),
		WithTolerance(0.5),
	)
	require.NoError(t, err)
	assert.True(t, c.opts.allowOverlap)
	assert.Equal(t, KeepoutWholeHoles, c.opts.keepoutMode)
	assert.Equal(t, 0.5, c.opts.tolerance)

	c, err = NewCheeser(testConfig(), WithTolerance(-1))
	require.NoError(t, err)
	assert.Zero(t, c.opts.tolerance)
}

func TestKeepoutModeString(t *testing.T) {
	tests := []struct {
		m    KeepoutMode
		want string
	}{
		{KeepoutClip, "clip"},
		{KeepoutWholeHoles, "whole"},
		{KeepoutMode(5), "KeepoutMode(5)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.m.String())
	}
}
