//go:build unix

package stderr

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureRelogs(t *testing.T) {
	out := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	t.Cleanup(func() { logrus.SetOutput(out) })
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	require.NoError(t, Start())
	require.NoError(t, Start(), "second Start is a no-op")
	_, err := os.Stderr.WriteString("ALSA lib pcm.c: underrun occurred\n\n")
	require.NoError(t, err)
	Stop()
	Stop()

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "stderr: ALSA lib pcm.c: underrun occurred", entries[0].Message)
}
