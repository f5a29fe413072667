package media

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/video-batch-uploader/internal/model"
)

// Known video extensions; mime.TypeByExtension depends on the host's tables
var videoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".wmv":  "video/x-ms-wmv",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",
}

// VideoExtensions returns the known video extensions, sorted
func VideoExtensions() []string {
	exts := make([]string, 0, len(videoMimeTypes))
	for ext := range videoMimeTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// sniffLength is how many bytes http.DetectContentType looks at
const sniffLength = 512

// IsVideoFile reports whether a MIME type denotes a video
func IsVideoFile(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/")
}

// DetectMimeType resolves the MIME type of a file by extension, falling back to content sniffing
func DetectMimeType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := videoMimeTypes[ext]; ok {
		return mt, nil
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base, nil
		}
		return mt, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLength)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return "application/octet-stream", nil
	}
	mt, _, err := mime.ParseMediaType(http.DetectContentType(buf[:n]))
	if err != nil {
		return "application/octet-stream", nil
	}
	return mt, nil
}

// NewVideoFile builds a descriptor for a single path. The second return value is
// false when the file is not a video.
func NewVideoFile(path string) (*model.VideoFile, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, false, nil
	}

	mimeType, err := DetectMimeType(path)
	if err != nil {
		return nil, false, err
	}
	if !IsVideoFile(mimeType) {
		return nil, false, nil
	}

	name := filepath.Base(path)
	now := time.Now()
	return &model.VideoFile{
		ID:           uuid.NewString(),
		Path:         path,
		OriginalName: name,
		CleanedName:  CleanFileName(name),
		Size:         info.Size(),
		MimeType:     mimeType,
		Status:       model.VideoStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, true, nil
}

// ProcessVideoFiles keeps the video files among paths, in order, and derives their titles.
// Paths that cannot be read are skipped and reported in the joined error.
func ProcessVideoFiles(paths []string) ([]*model.VideoFile, error) {
	var (
		videos []*model.VideoFile
		errs   []string
	)
	for _, p := range paths {
		v, ok, err := NewVideoFile(p)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if ok {
			videos = append(videos, v)
		}
	}
	if len(errs) > 0 {
		return videos, fmt.Errorf("skipped %d file(s): %s", len(errs), strings.Join(errs, "; "))
	}
	return videos, nil
}

// ScanDirectory returns the video files directly inside dir, sorted by name
func ScanDirectory(dir string) ([]*model.VideoFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return ProcessVideoFiles(paths)
}
