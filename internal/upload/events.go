package upload

import (
	"github.com/ytget/video-batch-uploader/internal/model"
)

// EventKind identifies what happened to an upload
type EventKind string

const (
	EventProgress EventKind = "progress"
	EventComplete EventKind = "complete"
	EventError    EventKind = "error"
	EventCancel   EventKind = "cancel"
)

// Event is delivered to observers for every task change
type Event struct {
	Kind     EventKind
	Key      string
	Progress float64 // 0 to 100
	Loaded   int64
	Total    int64
	Attempt  int
	Result   *Result // set for EventComplete
	Err      error   // set for EventError
	Task     model.UploadTask
}

// Observer receives upload events. OnEvent is called synchronously from the
// goroutine driving the upload and must not call Cancel for the same key.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

// OnEvent implements Observer
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Result describes a stored object
type Result struct {
	Key      string
	Hash     string
	URL      string
	FileName string
	Size     int64
}
