package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

type trackTags struct {
	Title  string
	Artist string
	Album  string
}

// readTags reads title, artist and album. dhowden/tag is tried first; it
// chokes on some UTF-16 ID3 frames and on some FLAC and WAV files, which
// are then retried with id3v2 or taglib. Files without usable tags are
// titled after their base name.
func readTags(path string) trackTags {
	t, err := readWithTag(path)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".mp3":
			t, err = readWithID3v2(path)
		default:
			t, err = readWithTaglib(path)
		}
	}
	if err != nil {
		t = trackTags{}
	}
	if t.Title == "" {
		t.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t
}

func readWithTag(path string) (trackTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return trackTags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return trackTags{}, err
	}
	return trackTags{Title: m.Title(), Artist: m.Artist(), Album: m.Album()}, nil
}

func readWithID3v2(path string) (trackTags, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return trackTags{}, err
	}
	defer t.Close()
	return trackTags{Title: t.Title(), Artist: t.Artist(), Album: t.Album()}, nil
}

func readWithTaglib(path string) (trackTags, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return trackTags{}, err
	}
	first := func(key string) string {
		if v := raw[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	return trackTags{
		Title:  first(taglib.Title),
		Artist: first(taglib.Artist),
		Album:  first(taglib.Album),
	}, nil
}
