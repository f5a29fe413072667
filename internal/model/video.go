package model

import (
	"strings"
	"time"
)

// VideoFile describes one selected local video and its progress through the upload pipeline.
// CleanedName is derived from OriginalName once and may be edited by the user before submission.
type VideoFile struct {
	ID           string      `json:"id"`
	Path         string      `json:"path"`
	OriginalName string      `json:"original_name"`
	CleanedName  string      `json:"cleaned_name"`
	Size         int64       `json:"size"`
	MimeType     string      `json:"mime_type"`
	Status       VideoStatus `json:"status"`
	Progress     float64     `json:"progress"` // video object upload, 0 to 100
	ETA          string      `json:"eta,omitempty"`
	VideoKey     string      `json:"video_key,omitempty"`
	CoverKey     string      `json:"cover_key,omitempty"`
	CoverPath    string      `json:"cover_path,omitempty"` // extracted frame on disk
	VideoURL     string      `json:"video_url,omitempty"`
	CoverURL     string      `json:"cover_url,omitempty"`
	Error        string      `json:"error,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// SetTitle replaces the user-facing title. Line breaks are flattened to spaces.
func (v *VideoFile) SetTitle(title string) {
	title = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(title)
	v.CleanedName = strings.TrimSpace(title)
	v.UpdatedAt = time.Now()
}

// UpdateStatus moves the video to a new pipeline status
func (v *VideoFile) UpdateStatus(status VideoStatus) {
	v.Status = status
	v.UpdatedAt = time.Now()
}

// Fail records an error and moves the video to the error status
func (v *VideoFile) Fail(err error) {
	if err != nil {
		v.Error = err.Error()
	}
	v.UpdateStatus(VideoStatusError)
}

// Reset returns a finished video to pending so it can be uploaded again
func (v *VideoFile) Reset() {
	v.Progress = 0
	v.ETA = ""
	v.VideoKey, v.CoverKey = "", ""
	v.VideoURL, v.CoverURL = "", ""
	v.Error = ""
	v.UpdateStatus(VideoStatusPending)
}
