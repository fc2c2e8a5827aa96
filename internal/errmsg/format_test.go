package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		err  error
		want string
	}{
		{"nil error", OpCatalogLoad, nil, ""},
		{"catalog", OpCatalogLoad, errors.New("disk I/O error"), "Failed to load songs: disk I/O error"},
		{"scan", OpLibraryScan, errors.New("permission denied"), "Failed to scan library: permission denied"},
		{"playback", OpPlaybackStart, errors.New("no audio device"), "Failed to start playback: no audio device"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.op, tt.err))
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("source unreadable")
	assert.Equal(t, "Failed to start playback 'Old Blues': source unreadable",
		FormatWith(OpPlaybackStart, "Old Blues", err))
	assert.Equal(t, "Failed to seek: source unreadable", FormatWith(OpPlaybackSeek, "", err))
	assert.Empty(t, FormatWith(OpPlaybackSeek, "x", nil))
}
