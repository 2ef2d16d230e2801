package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayerBuilderOptionsOverrideDefaults(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("poi", WithVersion(2), WithExtent(8192), WithDimensions(3))

	require.Equal(uint32(2), lb.version)
	require.Equal(uint32(8192), lb.extent)
	require.Equal(uint32(3), lb.dimensions)
}
