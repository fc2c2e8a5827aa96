package catalog

import (
	"strings"
	"time"

	"github.com/llehouerou/localplay/internal/player"
)

// Bundled samples use negative IDs so they never collide with index rows.
var samples = []Track{
	{ID: -1, Locator: player.ResourceScheme + "raw/sample_song", Title: "Sample Song", Duration: 2 * time.Second},
	{ID: -2, Locator: player.ResourceScheme + "raw/sample_song2", Title: "Old Blues", Duration: 3 * time.Second},
	{ID: -3, Locator: player.ResourceScheme + "raw/sample_song3", Title: "Wildflower", Duration: 2500 * time.Millisecond},
}

// Samples returns the tracks bundled into the binary, in catalog order.
func Samples() []Track {
	return append([]Track(nil), samples...)
}

// IsSample reports whether t is one of the bundled tracks.
func IsSample(t Track) bool {
	return strings.HasPrefix(t.Locator, player.ResourceScheme)
}
