package upload

import (
	"path"
	"strings"

	"github.com/ytget/video-batch-uploader/internal/media"
)

// VideoExtension is appended to titles to form the uploaded video's file name
const VideoExtension = ".mp4"

// FileMetadata derives the filename and content type sent with an upload.
// Cover keys carry their own name and are JPEG; videos are named after the
// title and leave the content type to the provider.
func FileMetadata(key, title string) (fileName, mimeType string) {
	if strings.Contains(key, media.CoverSuffix) {
		return path.Base(key) + media.CoverExtension, media.CoverMimeType
	}
	if strings.TrimSpace(title) == "" {
		title = media.DefaultTitle
	}
	return title + VideoExtension, ""
}
