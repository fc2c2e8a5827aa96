package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGates(t *testing.T) {
	ctx := context.Background()
	assert.True(t, Allow().Granted())
	assert.True(t, Allow().Request(ctx))
	assert.False(t, Deny().Granted())
	assert.False(t, Deny().Request(ctx))
}

func TestDirGate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.mp3")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	tests := []struct {
		name string
		dirs []string
		want bool
	}{
		{"no directories", nil, true},
		{"readable directory", []string{dir}, true},
		{"missing directory", []string{dir, filepath.Join(dir, "missing")}, false},
		{"regular file", []string{file}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DirGate{Dirs: tt.dirs}
			assert.Equal(t, tt.want, g.Granted())
			assert.Equal(t, tt.want, g.Request(context.Background()))
		})
	}
}

func TestDirGate_NoPermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	assert.False(t, DirGate{Dirs: []string{dir}}.Granted())
}

func TestPromptGate_AsksOnce(t *testing.T) {
	asked := 0
	var question string
	g := NewPromptGate(Allow(), func(_ context.Context, q string) bool {
		asked++
		question = q
		return true
	})

	assert.False(t, g.Granted(), "nothing granted before asking")
	assert.True(t, g.Request(context.Background()))
	assert.True(t, g.Request(context.Background()))
	assert.True(t, g.Granted())
	assert.Equal(t, 1, asked)
	assert.Contains(t, question, RationaleMessage)
}

func TestPromptGate_Refused(t *testing.T) {
	g := NewPromptGate(Allow(), func(context.Context, string) bool { return false })
	assert.False(t, g.Request(context.Background()))
	assert.False(t, g.Granted())
}

func TestPromptGate_ConsentCannotOverrideFilesystem(t *testing.T) {
	g := NewPromptGate(Deny(), func(context.Context, string) bool { return true })
	assert.False(t, g.Request(context.Background()))
	assert.False(t, g.Granted())
}
