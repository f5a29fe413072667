package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ffmedia "github.com/xfrr/goffmpeg/media"
	"github.com/xfrr/goffmpeg/transcoder"
)

// Cover extraction constants
const (
	CoverSuffix        = "-cover"
	CoverExtension     = ".jpg"
	CoverMimeType      = "image/jpeg"
	CoverTimeout       = 30 * time.Second
	coverFrames        = 1
	coverQScale        = 2 // JPEG quantiser, lower is better
	videoCodecTypeName = "video"
)

// Cover is a still frame extracted from a video
type Cover struct {
	Path   string
	Width  int
	Height int
}

// CoverExtractor produces a cover image for a video file
type CoverExtractor interface {
	ExtractFirstFrame(ctx context.Context, videoPath string) (*Cover, error)
}

// FFmpegCoverExtractor writes the first frame of a video as JPEG using ffmpeg
type FFmpegCoverExtractor struct {
	outputDir string
	timeout   time.Duration
}

// NewFFmpegCoverExtractor creates an extractor writing covers into outputDir.
// An empty outputDir uses a fresh directory under os.TempDir.
func NewFFmpegCoverExtractor(outputDir string) (*FFmpegCoverExtractor, error) {
	if outputDir == "" {
		dir, err := os.MkdirTemp("", "video-covers-")
		if err != nil {
			return nil, fmt.Errorf("failed to create cover directory: %w", err)
		}
		outputDir = dir
	} else if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cover directory: %w", err)
	}
	return &FFmpegCoverExtractor{outputDir: outputDir, timeout: CoverTimeout}, nil
}

// OutputDir returns the directory covers are written to
func (e *FFmpegCoverExtractor) OutputDir() string {
	return e.outputDir
}

// ExtractFirstFrame grabs frame zero of videoPath
func (e *FFmpegCoverExtractor) ExtractFirstFrame(ctx context.Context, videoPath string) (*Cover, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	outputPath := e.coverPath(videoPath)

	trans := new(transcoder.Transcoder)
	if err := trans.Initialize(videoPath, outputPath); err != nil {
		return nil, fmt.Errorf("failed to load video: %w", err)
	}

	configureCoverOutput(trans.MediaFile())

	width, height := frameSize(trans)

	done := trans.Run(false)
	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("failed to capture first frame: %w", err)
		}
	case <-ctx.Done():
		_ = trans.Stop()
		return nil, fmt.Errorf("capturing first frame of %s: %w", filepath.Base(videoPath), ctx.Err())
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return nil, fmt.Errorf("failed to generate cover image for %s", filepath.Base(videoPath))
	}

	return &Cover{Path: outputPath, Width: width, Height: height}, nil
}

// configureCoverOutput asks for a single high quality still frame with no audio
func configureCoverOutput(f *ffmedia.File) {
	f.SetVframes(coverFrames)
	f.SetSkipAudio(true)
	f.SetQScale(coverQScale)
}

// coverPath names the cover after the video so concurrent extractions never collide
func (e *FFmpegCoverExtractor) coverPath(videoPath string) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	stamp := time.Now().UnixNano()
	return filepath.Join(e.outputDir, fmt.Sprintf("%s-%d%s%s", base, stamp, CoverSuffix, CoverExtension))
}

// frameSize reads the dimensions of the first video stream from ffprobe metadata
func frameSize(trans *transcoder.Transcoder) (int, int) {
	for _, stream := range trans.MediaFile().Metadata().Streams {
		if stream.CodecType == videoCodecTypeName {
			return stream.Width, stream.Height
		}
	}
	return 0, 0
}
