package media

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmedia "github.com/xfrr/goffmpeg/media"
)

func TestNewFFmpegCoverExtractorCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "covers")
	e, err := NewFFmpegCoverExtractor(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, e.OutputDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCoverPath(t *testing.T) {
	e := &FFmpegCoverExtractor{outputDir: "/tmp/covers"}
	p := e.coverPath("/videos/My Trip.mp4")

	assert.Equal(t, "/tmp/covers", filepath.Dir(p))
	assert.True(t, strings.HasPrefix(filepath.Base(p), "My Trip-"))
	assert.True(t, strings.HasSuffix(p, CoverSuffix+CoverExtension))
}

func TestConfigureCoverOutput(t *testing.T) {
	f := new(ffmedia.File)
	configureCoverOutput(f)

	assert.Equal(t, uint32(coverQScale), f.QScale())
	assert.Equal(t, coverFrames, f.Vframes())
	assert.True(t, f.SkipAudio())

	args := strings.Join(f.ToStrCommand(), " ")
	assert.Contains(t, args, "-qscale 2")
	assert.Contains(t, args, "-vframes 1")
	assert.Contains(t, args, "-an")
}

func TestExtractFirstFrame(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	dir := t.TempDir()
	video := filepath.Join(dir, "sample.mp4")
	gen := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "testsrc=size=320x240:rate=10",
		"-t", "1", "-pix_fmt", "yuv420p", video)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("could not generate sample video: %v: %s", err, out)
	}

	e, err := NewFFmpegCoverExtractor(filepath.Join(dir, "covers"))
	require.NoError(t, err)

	cover, err := e.ExtractFirstFrame(context.Background(), video)
	require.NoError(t, err)
	assert.Equal(t, 320, cover.Width)
	assert.Equal(t, 240, cover.Height)

	info, err := os.Stat(cover.Path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExtractFirstFrameMissingVideo(t *testing.T) {
	e, err := NewFFmpegCoverExtractor(t.TempDir())
	require.NoError(t, err)

	_, err = e.ExtractFirstFrame(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
