package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("dispatch %d", 3) }, "[DEBUG] dispatch 3\n"},
		{"info", func() { Info("loaded %s", "a.pdf") }, "[INFO] loaded a.pdf\n"},
		{"warn", func() { Warn("stale %v", true) }, "[WARN] stale true\n"},
		{"section", func() { Section("Search") }, "\n=== Search ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("a")
	Info("b")
	Warn("c")
	Section("d")

	assert.Zero(t, buf.Len())
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	capture(t, true)

	restore, err := ToFile(dir)
	require.NoError(t, err)
	Info("to file")
	restore()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Equal(t, "[INFO] to file\n", string(data))
}
