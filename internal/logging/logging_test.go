package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "store", "warn")

	l.Info("hidden")
	l.Warn("dataset %s missing", "x.geojson")
	l.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] store: dataset x.geojson missing")
	assert.Contains(t, out, "[ERROR] store: boom")

	l.SetLevel("debug")
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestManagerCreatesFiles(t *testing.T) {
	home := t.TempDir()
	m, err := NewManager(home, "info", 1, false)
	require.NoError(t, err)

	m.System.Info("started")
	m.Interaction.Info("click %s", "Kerala")
	require.NoError(t, m.Close())

	sys, err := os.ReadFile(filepath.Join(home, "logs", "system.log"))
	require.NoError(t, err)
	assert.Contains(t, string(sys), "system: started")

	ix, err := os.ReadFile(filepath.Join(m.Dir(), "interaction.log"))
	require.NoError(t, err)
	assert.Contains(t, string(ix), "interaction: click Kerala")
}

func TestRotateShiftsBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.log")
	require.NoError(t, os.WriteFile(path, []byte("current"), 0o644))
	require.NoError(t, os.WriteFile(path+".1", []byte("older"), 0o644))

	require.NoError(t, rotate(path, 3))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	b, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "current", string(b))
	b, err = os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "older", string(b))
}

func TestLoggerRotatesWhenFull(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.log")
	l, err := NewLogger(path, "system", "info", 1, false)
	require.NoError(t, err)
	defer l.Close()

	big := strings.Repeat("x", 1024*1024)
	l.Info("%s", big)
	l.Info("after rotation")

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "after rotation")
	assert.NotContains(t, string(b), big)
}
