package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, length time.Duration) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Encode(f, generators.Silence(format.SampleRate.N(length)), format))
}

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := OpenIndex(filepath.Join(t.TempDir(), "db", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestIndex_RefreshAndTracks(t *testing.T) {
	ctx := context.Background()
	lib := t.TempDir()
	writeWAV(t, filepath.Join(lib, "b", "second.wav"), 2*time.Second)
	writeWAV(t, filepath.Join(lib, "a", "first.wav"), 1500*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(lib, "a", "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "a", "broken.wav"), []byte("nope"), 0o600))

	ix := openTestIndex(t)
	stats, err := ix.Refresh(ctx, []string{lib})
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Added: 2, Skipped: 1}, stats)

	tracks, err := ix.Tracks(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, filepath.Join(lib, "a", "first.wav"), tracks[0].Locator)
	assert.Equal(t, "first", tracks[0].Title)
	assert.Equal(t, 1500*time.Millisecond, tracks[0].Duration)
	assert.Equal(t, "second", tracks[1].Title)
	assert.Equal(t, 2*time.Second, tracks[1].Duration)
	assert.Positive(t, tracks[0].ID)

	n, err := ix.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIndex_RefreshIncremental(t *testing.T) {
	ctx := context.Background()
	lib := t.TempDir()
	first := filepath.Join(lib, "first.wav")
	second := filepath.Join(lib, "second.wav")
	writeWAV(t, first, time.Second)
	writeWAV(t, second, time.Second)

	ix := openTestIndex(t)
	_, err := ix.Refresh(ctx, []string{lib})
	require.NoError(t, err)

	stats, err := ix.Refresh(ctx, []string{lib})
	require.NoError(t, err)
	assert.Equal(t, ScanStats{}, stats, "unchanged files are not re-read")

	writeWAV(t, first, 3*time.Second)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(first, later, later))
	require.NoError(t, os.Remove(second))

	stats, err = ix.Refresh(ctx, []string{lib})
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Updated: 1, Removed: 1}, stats)

	tracks, err := ix.Tracks(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 3*time.Second, tracks[0].Duration)
}

func TestIndex_RefreshMissingSource(t *testing.T) {
	ix := openTestIndex(t)
	stats, err := ix.Refresh(context.Background(), []string{filepath.Join(t.TempDir(), "gone")})
	require.NoError(t, err)
	assert.Equal(t, ScanStats{}, stats)
}

func TestIndex_RefreshCancelled(t *testing.T) {
	lib := t.TempDir()
	writeWAV(t, filepath.Join(lib, "a.wav"), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ix := openTestIndex(t)
	_, err := ix.Refresh(ctx, []string{lib})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex_ReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	lib := t.TempDir()
	writeWAV(t, filepath.Join(lib, "a.wav"), time.Second)
	path := filepath.Join(t.TempDir(), "index.db")

	ix, err := OpenIndex(path)
	require.NoError(t, err)
	_, err = ix.Refresh(ctx, []string{lib})
	require.NoError(t, err)
	require.NoError(t, ix.Close())

	ix, err = OpenIndex(path)
	require.NoError(t, err)
	defer ix.Close()
	n, err := ix.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
