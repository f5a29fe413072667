package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/video-batch-uploader/internal/model"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("video/mp4"))
	assert.True(t, IsVideoFile("video/x-matroska"))
	assert.False(t, IsVideoFile("image/jpeg"))
	assert.False(t, IsVideoFile(""))
}

func TestDetectMimeType(t *testing.T) {
	dir := t.TempDir()

	mt, err := DetectMimeType(writeFile(t, dir, "clip.MKV", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "video/x-matroska", mt)

	// No extension: falls back to sniffing the content.
	mt, err = DetectMimeType(writeFile(t, dir, "noext", []byte("hello world, plain text")))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mt)
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b #tag.mp4", make([]byte, 10))
	writeFile(t, dir, "a @me.mov", make([]byte, 20))
	writeFile(t, dir, "notes.txt", []byte("not a video"))
	writeFile(t, dir, ".hidden.mp4", make([]byte, 5))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755))

	videos, err := ScanDirectory(dir)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "a @me.mov", videos[0].OriginalName)
	assert.Equal(t, "a", videos[0].CleanedName)
	assert.Equal(t, int64(20), videos[0].Size)
	assert.Equal(t, "video/quicktime", videos[0].MimeType)
	assert.Equal(t, model.VideoStatusPending, videos[0].Status)
	assert.NotEmpty(t, videos[0].ID)

	assert.Equal(t, "b", videos[1].CleanedName)
	assert.NotEqual(t, videos[0].ID, videos[1].ID)
}

func TestProcessVideoFilesReportsMissing(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.mp4", []byte("x"))

	videos, err := ProcessVideoFiles([]string{ok, filepath.Join(dir, "missing.mp4")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skipped 1 file(s)")
	require.Len(t, videos, 1)
	assert.Equal(t, ok, videos[0].Path)
}

func TestVideoExtensions(t *testing.T) {
	exts := VideoExtensions()
	assert.Contains(t, exts, ".mp4")
	assert.Contains(t, exts, ".mov")
	assert.IsNonDecreasing(t, exts)
}
