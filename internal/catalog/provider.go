package catalog

import (
	"context"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/errmsg"
)

// NoSongsMessage is the hint shown when no library track was found.
const NoSongsMessage = "No songs found on this device"

// Provider lists the library tracks, in display order.
type Provider interface {
	ListTracks(ctx context.Context) ([]Track, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]Track, error)

func (f ProviderFunc) ListTracks(ctx context.Context) ([]Track, error) { return f(ctx) }

// IndexProvider lists the tracks of a media index, optionally rescanning
// the library directories first. Files that vanished or became unreadable
// since the last scan are left out.
type IndexProvider struct {
	Index   *Index
	Sources []string
	Rescan  bool
}

func (p IndexProvider) ListTracks(ctx context.Context) ([]Track, error) {
	if p.Rescan {
		stats, err := p.Index.Refresh(ctx, p.Sources)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Library scan: %s added, %s updated, %s removed, %s skipped",
			humanize.Comma(int64(stats.Added)), humanize.Comma(int64(stats.Updated)),
			humanize.Comma(int64(stats.Removed)), humanize.Comma(int64(stats.Skipped)))
	}

	indexed, err := p.Index.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(indexed))
	for _, t := range indexed {
		if readable(t.Locator) {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

func readable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Catalog is the ordered track list handed to a session: the bundled
// samples first, then the library tracks.
type Catalog struct {
	tracks []Track
	denied bool
	err    error
}

// Load builds the catalog. It always succeeds with at least the samples:
// when the gate refuses access the library is not read at all, and when the
// provider fails its error is kept for Err.
func Load(ctx context.Context, provider Provider, gate Gate) *Catalog {
	c := &Catalog{tracks: Samples()}
	if provider == nil {
		return c
	}
	if gate != nil && !gate.Request(ctx) {
		logrus.Infof("Library access denied, using samples only")
		c.denied = true
		return c
	}

	library, err := provider.ListTracks(ctx)
	if err != nil {
		logrus.Warnf("Loading library tracks: %v", err)
		c.err = err
		return c
	}
	c.tracks = append(c.tracks, library...)
	logrus.Debugf("Catalog loaded: %s tracks", humanize.Comma(int64(len(c.tracks))))
	return c
}

// Tracks returns a copy of the track list.
func (c *Catalog) Tracks() []Track {
	return append([]Track(nil), c.tracks...)
}

func (c *Catalog) Len() int { return len(c.tracks) }

// OnlySamples reports whether no library track made it into the catalog.
// This drives the "no songs found" hint.
func (c *Catalog) OnlySamples() bool {
	for _, t := range c.tracks {
		if !IsSample(t) {
			return false
		}
	}
	return true
}

// Denied reports whether library access was refused.
func (c *Catalog) Denied() bool { return c.denied }

// Err returns the provider error, if loading the library failed.
func (c *Catalog) Err() error { return c.err }

// Notice returns the message to show the user after loading, if any.
func (c *Catalog) Notice() string {
	switch {
	case c.denied:
		return DeniedMessage
	case c.err != nil:
		return errmsg.Format(errmsg.OpCatalogLoad, c.err)
	default:
		return ""
	}
}
