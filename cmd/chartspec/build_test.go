package main

import (
	"testing"

	"chartspec/internal/builder"
	"chartspec/internal/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileKeysBuildsByDigest(t *testing.T) {
	chart := options.ChartOptions{Name: "os-usage", Marks: options.MarkList{options.BarOptions{}}}

	r, key := compile(chart)
	digest, err := builder.Digest(chart)
	require.NoError(t, err)
	assert.Equal(t, digest, key)
	assert.Equal(t, builder.Build(chart).Spec, r.Spec)

	_, again := compile(chart)
	assert.Equal(t, key, again)
}
