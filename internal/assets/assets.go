// Package assets holds the audio resources bundled into the binary.
//
// Bundled tracks are addressed with res:// locators, e.g.
// res://raw/sample_song resolves to raw/sample_song.wav in this bundle.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed raw/*.wav
var bundle embed.FS

// FS returns the resource bundle.
func FS() fs.FS {
	return bundle
}
