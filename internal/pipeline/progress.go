package pipeline

import (
	"sync"
	"time"

	"github.com/ytget/video-batch-uploader/internal/model"
	"github.com/ytget/video-batch-uploader/internal/upload"
)

// progressTracker turns upload progress events for video keys into video snapshots
type progressTracker struct {
	p *Pipeline

	mu     sync.Mutex
	videos map[string]model.VideoFile
}

func newProgressTracker(p *Pipeline) *progressTracker {
	return &progressTracker{p: p, videos: make(map[string]model.VideoFile)}
}

func (t *progressTracker) track(key string, v model.VideoFile) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.videos[key] = v
}

// untrack stops following key and returns the last progress seen
func (t *progressTracker) untrack(key string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	v := t.videos[key]
	delete(t.videos, key)
	return v.Progress
}

// OnEvent implements upload.Observer
func (t *progressTracker) OnEvent(e upload.Event) {
	if e.Kind != upload.EventProgress {
		return
	}

	t.mu.Lock()
	v, ok := t.videos[e.Key]
	if !ok {
		t.mu.Unlock()
		return
	}
	v.Progress = e.Progress
	v.ETA = e.Task.GetETAString()
	v.UpdatedAt = time.Now()
	t.videos[e.Key] = v
	t.mu.Unlock()

	t.p.notify(&v)
}
