package model

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// UploadTask represents one in-flight object upload, keyed by its destination key
type UploadTask struct {
	Key        string
	FilePath   string     // local source file
	FileName   string     // filename metadata sent with the upload
	Size       int64      // source size in bytes
	Status     TaskStatus //
	Progress   float64    // 0 to 100
	Loaded     int64      // bytes acknowledged by the provider
	Total      int64      // bytes to transfer
	Attempt    int        // 1-based transfer attempt
	ETASec     int        // ETA in seconds, -1 if unknown
	URL        string     // public URL once completed
	LastError  string     // last error message if any
	StartedAt  time.Time  // when the first attempt started
	FinishedAt time.Time  // when the task reached a finished state
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (ut *UploadTask) GetETAString() string {
	if ut.ETASec <= 0 {
		return "—"
	}

	hours := ut.ETASec / 3600
	minutes := (ut.ETASec % 3600) / 60
	seconds := ut.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayName returns the filename metadata, the source file name, or the key in order of preference
func (ut *UploadTask) GetDisplayName() string {
	if ut.FileName != "" {
		return ut.FileName
	}

	if ut.FilePath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(ut.FilePath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	if ut.Key == "" {
		return ""
	}
	return path.Base(ut.Key)
}

// Percent returns progress rounded down to a whole percent
func (ut *UploadTask) Percent() int {
	return int(ut.Progress)
}
