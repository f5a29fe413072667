package model

import (
	"time"
)

// BatchStatus represents the aggregate status of a batch of videos
type BatchStatus string

const (
	BatchStatusReady     BatchStatus = "ready"
	BatchStatusUploading BatchStatus = "uploading"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusError     BatchStatus = "error"
)

// Batch represents the set of videos selected for one upload session
type Batch struct {
	Videos      []*VideoFile `json:"videos"`
	Status      BatchStatus  `json:"status"`
	TotalVideos int          `json:"total_videos"`
	Uploaded    int          `json:"uploaded"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewBatch creates a new empty batch
func NewBatch() *Batch {
	now := time.Now()
	return &Batch{
		Status:    BatchStatusReady,
		Videos:    make([]*VideoFile, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddVideo adds a video to the batch, ignoring paths that are already present
func (b *Batch) AddVideo(video *VideoFile) bool {
	for _, v := range b.Videos {
		if v.Path == video.Path {
			return false
		}
	}
	b.Videos = append(b.Videos, video)
	b.TotalVideos = len(b.Videos)
	b.UpdatedAt = time.Now()
	return true
}

// RemoveVideo removes a video from the batch by ID
func (b *Batch) RemoveVideo(videoID string) {
	for i, video := range b.Videos {
		if video.ID == videoID {
			b.Videos = append(b.Videos[:i], b.Videos[i+1:]...)
			b.TotalVideos = len(b.Videos)
			b.UpdatedAt = time.Now()
			break
		}
	}
}

// GetVideo returns a video by ID
func (b *Batch) GetVideo(videoID string) (*VideoFile, bool) {
	for _, video := range b.Videos {
		if video.ID == videoID {
			return video, true
		}
	}
	return nil, false
}

// Apply copies pipeline state from a snapshot onto the matching video
func (b *Batch) Apply(snapshot VideoFile) bool {
	video, ok := b.GetVideo(snapshot.ID)
	if !ok {
		return false
	}
	video.Status = snapshot.Status
	video.Progress = snapshot.Progress
	video.ETA = snapshot.ETA
	video.VideoKey = snapshot.VideoKey
	video.CoverKey = snapshot.CoverKey
	video.CoverPath = snapshot.CoverPath
	video.VideoURL = snapshot.VideoURL
	video.CoverURL = snapshot.CoverURL
	video.Error = snapshot.Error
	video.UpdatedAt = snapshot.UpdatedAt
	b.refresh()
	return true
}

// UpdateStatus updates the batch status
func (b *Batch) UpdateStatus(status BatchStatus) {
	b.Status = status
	b.UpdatedAt = time.Now()
}

// GetPendingVideos returns all videos that still need uploading, including failed and cancelled ones
func (b *Batch) GetPendingVideos() []*VideoFile {
	var pending []*VideoFile
	for _, video := range b.Videos {
		switch video.Status {
		case VideoStatusPending, VideoStatusError, VideoStatusCancelled:
			pending = append(pending, video)
		}
	}
	return pending
}

// GetCompletedVideos returns all completed videos
func (b *Batch) GetCompletedVideos() []*VideoFile {
	var completed []*VideoFile
	for _, video := range b.Videos {
		if video.Status == VideoStatusCompleted {
			completed = append(completed, video)
		}
	}
	return completed
}

// GetUploadProgress returns overall batch progress as percentage of completed videos
func (b *Batch) GetUploadProgress() float64 {
	if b.TotalVideos == 0 {
		return 0
	}

	completed := len(b.GetCompletedVideos())
	return float64(completed) / float64(b.TotalVideos) * 100
}

// IsReadyForUpload checks if the batch has something to upload
func (b *Batch) IsReadyForUpload() bool {
	return b.Status != BatchStatusUploading && len(b.GetPendingVideos()) > 0
}

// HasErrors checks if any video has errors
func (b *Batch) HasErrors() bool {
	for _, video := range b.Videos {
		if video.Status == VideoStatusError {
			return true
		}
	}
	return false
}

// refresh recomputes counters and the aggregate status after a video changed
func (b *Batch) refresh() {
	b.Uploaded = len(b.GetCompletedVideos())
	b.UpdatedAt = time.Now()

	if b.Status != BatchStatusUploading {
		return
	}
	for _, video := range b.Videos {
		if !video.Status.IsFinished() {
			return
		}
	}
	if b.HasErrors() {
		b.Status = BatchStatusError
	} else if b.Uploaded == b.TotalVideos {
		b.Status = BatchStatusCompleted
	} else {
		b.Status = BatchStatusReady
	}
}
