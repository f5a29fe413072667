package model

// TaskStatus represents the status of a single object upload
type TaskStatus string

const (
	// TaskStatusUploading means chunks are being transferred
	TaskStatusUploading TaskStatus = "uploading"

	// TaskStatusCompleted means the object is stored and has a public URL
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusCancelled means the upload was cancelled by the caller
	TaskStatusCancelled TaskStatus = "cancelled"

	// TaskStatusError means every attempt failed
	TaskStatusError TaskStatus = "error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is still transferring
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusUploading
}

// IsFinished returns true if the task is in a finished state (completed, cancelled, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusError
}

// VideoStatus represents the pipeline status of a selected video file
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing" // extracting the cover frame
	VideoStatusUploading  VideoStatus = "uploading"
	VideoStatusSubmitting VideoStatus = "submitting" // registering metadata with the backend
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusError      VideoStatus = "error"
	VideoStatusCancelled  VideoStatus = "cancelled"
)

// IsFinished reports whether the video left the pipeline
func (vs VideoStatus) IsFinished() bool {
	return vs == VideoStatusCompleted || vs == VideoStatusError || vs == VideoStatusCancelled
}
