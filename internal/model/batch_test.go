package model

import "testing"

func newTestVideo(id, path string) *VideoFile {
	return &VideoFile{ID: id, Path: path, Status: VideoStatusPending}
}

func TestBatch_AddRemoveVideo(t *testing.T) {
	b := NewBatch()

	if !b.AddVideo(newTestVideo("a", "/v/a.mp4")) {
		t.Fatal("expected first add to succeed")
	}
	if b.AddVideo(newTestVideo("b", "/v/a.mp4")) {
		t.Error("expected duplicate path to be ignored")
	}
	b.AddVideo(newTestVideo("c", "/v/c.mp4"))

	if b.TotalVideos != 2 {
		t.Fatalf("Expected 2 videos, got %d", b.TotalVideos)
	}

	b.RemoveVideo("a")
	if b.TotalVideos != 1 {
		t.Errorf("Expected 1 video after removal, got %d", b.TotalVideos)
	}
	if _, ok := b.GetVideo("a"); ok {
		t.Error("Expected video 'a' to be removed")
	}
}

func TestBatch_ProgressAndStatus(t *testing.T) {
	b := NewBatch()
	b.AddVideo(newTestVideo("a", "/v/a.mp4"))
	b.AddVideo(newTestVideo("b", "/v/b.mp4"))

	if !b.IsReadyForUpload() {
		t.Fatal("Expected batch with pending videos to be ready")
	}

	b.UpdateStatus(BatchStatusUploading)
	if b.IsReadyForUpload() {
		t.Error("Expected uploading batch not to be ready")
	}

	b.Apply(VideoFile{ID: "a", Status: VideoStatusCompleted, Progress: 100})
	if got := b.GetUploadProgress(); got != 50 {
		t.Errorf("Expected progress 50, got %v", got)
	}
	if b.Status != BatchStatusUploading {
		t.Errorf("Expected batch to stay uploading, got %s", b.Status)
	}

	b.Apply(VideoFile{ID: "b", Status: VideoStatusCompleted, Progress: 100})
	if b.Status != BatchStatusCompleted {
		t.Errorf("Expected batch completed, got %s", b.Status)
	}
	if b.Uploaded != 2 {
		t.Errorf("Expected 2 uploaded, got %d", b.Uploaded)
	}
}

func TestBatch_ErrorStatus(t *testing.T) {
	b := NewBatch()
	b.AddVideo(newTestVideo("a", "/v/a.mp4"))
	b.AddVideo(newTestVideo("b", "/v/b.mp4"))
	b.UpdateStatus(BatchStatusUploading)

	b.Apply(VideoFile{ID: "a", Status: VideoStatusError, Error: "boom"})
	b.Apply(VideoFile{ID: "b", Status: VideoStatusCompleted})

	if !b.HasErrors() {
		t.Error("Expected batch to report errors")
	}
	if b.Status != BatchStatusError {
		t.Errorf("Expected batch status error, got %s", b.Status)
	}
	if pending := b.GetPendingVideos(); len(pending) != 1 || pending[0].ID != "a" {
		t.Errorf("Expected failed video to be uploadable again, got %v", pending)
	}
	if !b.IsReadyForUpload() {
		t.Error("Expected batch with a failed video to be ready")
	}
	if b.Apply(VideoFile{ID: "missing"}) {
		t.Error("Expected Apply on unknown ID to return false")
	}
}

func TestVideoFile_SetTitleAndReset(t *testing.T) {
	v := newTestVideo("a", "/v/a.mp4")
	v.SetTitle("  Line one\nline two\t ")
	if v.CleanedName != "Line one line two" {
		t.Errorf("Unexpected title %q", v.CleanedName)
	}

	v.VideoURL = "https://cdn/x"
	v.Fail(nil)
	if v.Status != VideoStatusError {
		t.Errorf("Expected error status, got %s", v.Status)
	}

	v.Reset()
	if v.Status != VideoStatusPending || v.VideoURL != "" || v.Error != "" {
		t.Errorf("Reset did not clear state: %+v", v)
	}
}
