package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/localplay/internal/assets"
	"github.com/llehouerou/localplay/internal/player"
)

func TestSamples_ResolveAndMatchBundle(t *testing.T) {
	r := player.Resolver{Resources: assets.FS()}
	for _, s := range Samples() {
		t.Run(s.Title, func(t *testing.T) {
			assert.True(t, IsSample(s))
			src, err := r.Resolve(s.Locator)
			require.NoError(t, err)
			d, err := player.Probe(src)
			require.NoError(t, err)
			assert.Equal(t, s.Duration, d)
		})
	}
}

func TestSamples_ReturnsCopy(t *testing.T) {
	a := Samples()
	a[0].Title = "changed"
	assert.NotEqual(t, "changed", Samples()[0].Title)
}

func TestIsSample(t *testing.T) {
	assert.False(t, IsSample(Track{Locator: "/music/a.mp3"}))
}
