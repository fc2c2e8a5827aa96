// Package catalog enumerates the tracks a session can play: the samples
// bundled into the binary followed by the audio files found in the
// configured library directories.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Track is one playable entry. Tracks are immutable once listed.
type Track struct {
	ID       int64
	Locator  string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// DisplayTitle returns the title, falling back to the locator.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Locator
}

var errBadDuration = errors.New("invalid duration")

// ParseDuration accepts "m:ss", "h:mm:ss" and plain millisecond counts
// such as "210000".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadDuration)
	}

	if !strings.Contains(s, ":") {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil || ms < 0 {
			return 0, fmt.Errorf("%w: %q", errBadDuration, s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", errBadDuration, s)
	}
	var total time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", errBadDuration, s)
		}
		// every field after the first is a 0-59 sexagesimal digit pair
		if i > 0 && (n > 59 || len(p) != 2) {
			return 0, fmt.Errorf("%w: %q", errBadDuration, s)
		}
		total = total*60 + time.Duration(n)*time.Second
	}
	return total, nil
}

// FormatMMSS renders d as zero-padded minutes and seconds ("03:30").
// Minutes are not wrapped into hours.
func FormatMMSS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// FormatDurationString renders a boundary duration string as mm:ss,
// or "00:00" when it cannot be parsed.
func FormatDurationString(s string) string {
	d, err := ParseDuration(s)
	if err != nil {
		return "00:00"
	}
	return FormatMMSS(d)
}
