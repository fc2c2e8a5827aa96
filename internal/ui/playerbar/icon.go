package playerbar

import "github.com/llehouerou/localplay/internal/playback"

// spinFrames is the rotating disc shown while a track plays. One frame per
// sync loop tick.
var spinFrames = []string{"◐", "◓", "◑", "◒"}

// Icon returns the status glyph. While playing it turns with rotation.
func Icon(st playback.State, rotation int) string {
	switch st {
	case playback.Playing:
		return spinFrames[rotation%len(spinFrames)]
	case playback.Paused:
		return "⏸"
	case playback.Preparing:
		return "…"
	case playback.Completed:
		return "■"
	case playback.Failed:
		return "✗"
	case playback.Idle:
	}
	return " "
}
