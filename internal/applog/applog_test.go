package applog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, int8(logging.Debug), ParseLevel("debug"))
	assert.Equal(t, int8(logging.Warning), ParseLevel(" WARNING "))
	assert.Equal(t, int8(logging.Error), ParseLevel("error"))
	assert.Equal(t, int8(logging.Info), ParseLevel("bogus"))
	assert.Equal(t, int8(logging.Info), ParseLevel(""))
}

func TestNewWritesFileAndMirror(t *testing.T) {
	dir := t.TempDir()
	var mirror bytes.Buffer

	log, closer := New(dir, LevelInfo, &mirror)
	log.Info("upload started", "key", "up/20240101/abc")
	log.Debug("suppressed at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "upload started")
	assert.Contains(t, string(data), "up/20240101/abc")
	assert.NotContains(t, string(data), "suppressed at info level")
	assert.Contains(t, mirror.String(), "upload started")
}
