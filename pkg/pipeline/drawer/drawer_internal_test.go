package drawer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/go-playground/colors.v1" //nolint
)

func TestHeatColour(t *testing.T) {
	t.Parallel()

	rgb := func(r, g, b uint8) string {
		c, err := colors.RGB(r, g, b)
		require.NoError(t, err)

		return c.ToHEX().String()
	}

	coldest, err := heatColour(time.Minute, time.Minute, 3*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, rgb(0, 0, maxRGB), coldest)

	// A stage halfway between the fastest and the slowest blends both ends.
	mid, err := heatColour(2*time.Minute, time.Minute, 3*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, rgb(maxRGB/2, 0, maxRGB/2), mid)

	hottest, err := heatColour(3*time.Minute, time.Minute, 3*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, rgb(maxRGB, 0, 0), hottest)

	// A single measured duration renders hot.
	lone, err := heatColour(time.Minute, time.Minute, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, rgb(maxRGB, 0, 0), lone)
}
