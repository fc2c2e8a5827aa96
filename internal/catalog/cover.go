package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// CoverArt looks for album art next to the track's file. Bundled samples
// have none.
func CoverArt(t Track) string {
	if IsSample(t) || t.Locator == "" {
		return ""
	}
	dir := filepath.Dir(strings.TrimPrefix(t.Locator, "file://"))
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
