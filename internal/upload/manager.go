package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ytget/video-batch-uploader/internal/model"
	"github.com/ytget/video-batch-uploader/internal/objstore"
)

var (
	// ErrCancelled is returned by Upload when the task was cancelled
	ErrCancelled = errors.New("upload cancelled")

	// ErrTaskExists is returned when an upload for the key is already running
	ErrTaskExists = errors.New("upload already in progress")
)

// Source is the local file to upload
type Source struct {
	Path  string
	Size  int64 // stat'ed when zero
	Title string
}

type taskState struct {
	task   model.UploadTask
	cancel context.CancelFunc

	// serializes state change plus event emission so observers see events in order
	emitMu       sync.Mutex
	attemptStart time.Time
}

type observerEntry struct {
	id int
	o  Observer
}

// Manager runs uploads and tracks their state
type Manager struct {
	transport objstore.Transport
	cfg       Config
	log       logging.Logger

	tasks map[string]*taskState
	mu    sync.RWMutex

	observers []observerEntry
	nextObsID int
	obsMu     sync.RWMutex
}

// New creates a manager that stores objects through transport
func New(transport objstore.Transport, cfg Config, log logging.Logger) *Manager {
	return &Manager{
		transport: transport,
		cfg:       cfg.normalize(),
		log:       log,
		tasks:     make(map[string]*taskState),
	}
}

// Config returns the effective configuration
func (m *Manager) Config() Config {
	return m.cfg
}

// Subscribe registers o for all future events and returns a function removing it
func (m *Manager) Subscribe(o Observer) func() {
	m.obsMu.Lock()
	id := m.nextObsID
	m.nextObsID++
	m.observers = append(m.observers, observerEntry{id: id, o: o})
	m.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.obsMu.Lock()
			defer m.obsMu.Unlock()
			for i, e := range m.observers {
				if e.id == id {
					m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (m *Manager) emit(e Event) {
	m.obsMu.RLock()
	observers := make([]Observer, len(m.observers))
	for i, entry := range m.observers {
		observers[i] = entry.o
	}
	m.obsMu.RUnlock()

	for _, o := range observers {
		o.OnEvent(e)
	}
}

// Upload stores src under key and blocks until it is stored, cancelled or out of attempts.
// Cancelling ctx cancels the task.
func (m *Manager) Upload(ctx context.Context, src Source, token, key string) (*Result, error) {
	if key == "" {
		return nil, fmt.Errorf("upload key is empty")
	}
	if src.Size <= 0 {
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, fmt.Errorf("could not stat %s: %w", src.Path, err)
		}
		src.Size = info.Size()
	}
	fileName, mimeType := FileMetadata(key, src.Title)

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ts := &taskState{
		task: model.UploadTask{
			Key:       key,
			FilePath:  src.Path,
			FileName:  fileName,
			Size:      src.Size,
			Status:    model.TaskStatusUploading,
			Total:     src.Size,
			ETASec:    -1,
			StartedAt: time.Now(),
		},
		cancel: cancel,
	}

	m.mu.Lock()
	if existing, ok := m.tasks[key]; ok && existing.task.Status.IsActive() {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrTaskExists, key)
	}
	m.tasks[key] = ts
	m.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { m.cancelTask(ts) })
	defer stop()

	req := objstore.PutRequest{
		Token:       token,
		Key:         key,
		Path:        src.Path,
		Size:        src.Size,
		FileName:    fileName,
		MimeType:    mimeType,
		ChunkSize:   m.cfg.ChunkSize,
		Concurrency: m.cfg.MaxConcurrent,
	}

	m.log.Info("upload started", "key", key, "file", src.Path, "size", src.Size, "transport", m.transport.Name())

	var lastErr error
	for attempt := 1; attempt <= m.cfg.RetryCount; attempt++ {
		if attempt > 1 && m.cfg.RetryDelay > 0 {
			select {
			case <-time.After(m.cfg.RetryDelay):
			case <-taskCtx.Done():
			}
		}
		if !m.beginAttempt(ts, attempt) {
			return nil, ErrCancelled
		}

		res, err := m.transport.Put(taskCtx, req, func(loaded, total int64) {
			m.updateProgress(ts, attempt, loaded, total)
		})
		if err == nil {
			return m.complete(ts, res)
		}
		if taskCtx.Err() != nil || m.isCancelled(ts) {
			return nil, ErrCancelled
		}

		lastErr = err
		m.log.Warning("upload attempt failed", "key", key, "attempt", attempt, "of", m.cfg.RetryCount, "error", err.Error())
	}

	return nil, m.fail(ts, lastErr)
}

// beginAttempt resets progress for a new attempt. It reports false if the task was cancelled.
func (m *Manager) beginAttempt(ts *taskState, attempt int) bool {
	ts.emitMu.Lock()
	defer ts.emitMu.Unlock()

	m.mu.Lock()
	if ts.task.Status != model.TaskStatusUploading {
		m.mu.Unlock()
		return false
	}
	ts.task.Attempt = attempt
	ts.task.Progress = 0
	ts.task.Loaded = 0
	ts.task.ETASec = -1
	ts.attemptStart = time.Now()
	snapshot := ts.task
	m.mu.Unlock()

	if attempt > 1 {
		m.log.Info("retrying upload", "key", snapshot.Key, "attempt", attempt)
		m.emit(progressEvent(snapshot))
	}
	return true
}

func (m *Manager) updateProgress(ts *taskState, attempt int, loaded, total int64) {
	ts.emitMu.Lock()
	defer ts.emitMu.Unlock()

	m.mu.Lock()
	if ts.task.Status != model.TaskStatusUploading || ts.task.Attempt != attempt {
		m.mu.Unlock()
		return
	}
	if total <= 0 {
		total = ts.task.Total
	}
	loaded = min(max(loaded, 0), total)
	if loaded < ts.task.Loaded {
		// parts can be acknowledged out of order
		m.mu.Unlock()
		return
	}

	ts.task.Loaded = loaded
	ts.task.Total = total
	if total > 0 {
		ts.task.Progress = float64(loaded) / float64(total) * 100
	}
	ts.task.ETASec = estimateETA(time.Since(ts.attemptStart), loaded, total)
	snapshot := ts.task
	m.mu.Unlock()

	m.emit(progressEvent(snapshot))
}

func (m *Manager) complete(ts *taskState, res objstore.PutResult) (*Result, error) {
	ts.emitMu.Lock()
	defer ts.emitMu.Unlock()

	m.mu.Lock()
	if ts.task.Status != model.TaskStatusUploading {
		m.mu.Unlock()
		return nil, ErrCancelled
	}
	key := ts.task.Key
	if res.Key != "" {
		key = res.Key
	}
	raisedProgress := ts.task.Progress < 100
	ts.task.Loaded = ts.task.Total
	ts.task.Progress = 100
	ts.task.ETASec = 0
	ts.task.Status = model.TaskStatusCompleted
	ts.task.URL = m.cfg.ObjectURL(key)
	ts.task.FinishedAt = time.Now()
	snapshot := ts.task
	m.mu.Unlock()

	result := &Result{
		Key:      key,
		Hash:     res.Hash,
		URL:      snapshot.URL,
		FileName: snapshot.FileName,
		Size:     snapshot.Size,
	}

	m.log.Info("upload completed", "file", snapshot.GetDisplayName(), "key", key, "url", result.URL, "attempts", snapshot.Attempt)
	if raisedProgress {
		m.emit(progressEvent(snapshot))
	}
	m.emit(Event{
		Kind:     EventComplete,
		Key:      snapshot.Key,
		Progress: 100,
		Loaded:   snapshot.Loaded,
		Total:    snapshot.Total,
		Attempt:  snapshot.Attempt,
		Result:   result,
		Task:     snapshot,
	})
	return result, nil
}

func (m *Manager) fail(ts *taskState, err error) error {
	ts.emitMu.Lock()
	defer ts.emitMu.Unlock()

	m.mu.Lock()
	if ts.task.Status != model.TaskStatusUploading {
		m.mu.Unlock()
		return ErrCancelled
	}
	ts.task.Status = model.TaskStatusError
	ts.task.LastError = err.Error()
	ts.task.FinishedAt = time.Now()
	snapshot := ts.task
	m.mu.Unlock()

	m.log.Error("upload failed", "file", snapshot.GetDisplayName(), "key", snapshot.Key, "attempts", snapshot.Attempt, "error", err.Error())
	m.emit(Event{
		Kind:     EventError,
		Key:      snapshot.Key,
		Progress: snapshot.Progress,
		Loaded:   snapshot.Loaded,
		Total:    snapshot.Total,
		Attempt:  snapshot.Attempt,
		Err:      err,
		Task:     snapshot,
	})
	return err
}

func (m *Manager) isCancelled(ts *taskState) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ts.task.Status == model.TaskStatusCancelled
}

// Cancel stops the upload for key. Unknown or finished keys are ignored.
func (m *Manager) Cancel(key string) {
	m.mu.RLock()
	ts, ok := m.tasks[key]
	m.mu.RUnlock()
	if ok {
		m.cancelTask(ts)
	}
}

// CancelAll cancels every active upload
func (m *Manager) CancelAll() {
	m.mu.RLock()
	active := make([]*taskState, 0, len(m.tasks))
	for _, ts := range m.tasks {
		if ts.task.Status.IsActive() {
			active = append(active, ts)
		}
	}
	m.mu.RUnlock()

	for _, ts := range active {
		m.cancelTask(ts)
	}
}

func (m *Manager) cancelTask(ts *taskState) {
	ts.emitMu.Lock()
	defer ts.emitMu.Unlock()

	m.mu.Lock()
	if ts.task.Status.IsFinished() {
		m.mu.Unlock()
		return
	}
	ts.cancel()
	ts.task.Status = model.TaskStatusCancelled
	ts.task.FinishedAt = time.Now()
	if m.tasks[ts.task.Key] == ts {
		delete(m.tasks, ts.task.Key)
	}
	snapshot := ts.task
	m.mu.Unlock()

	m.log.Info("upload cancelled", "key", snapshot.Key)
	m.emit(Event{
		Kind:     EventCancel,
		Key:      snapshot.Key,
		Progress: snapshot.Progress,
		Loaded:   snapshot.Loaded,
		Total:    snapshot.Total,
		Attempt:  snapshot.Attempt,
		Task:     snapshot,
	})
}

// TaskStatus returns a snapshot of the task for key
func (m *Manager) TaskStatus(key string) (model.UploadTask, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ts, ok := m.tasks[key]
	if !ok {
		return model.UploadTask{}, false
	}
	return ts.task, true
}

// AllTasks returns snapshots of all tracked tasks ordered by start time
func (m *Manager) AllTasks() []model.UploadTask {
	m.mu.RLock()
	tasks := make([]model.UploadTask, 0, len(m.tasks))
	for _, ts := range m.tasks {
		tasks = append(tasks, ts.task)
	}
	m.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].StartedAt.Equal(tasks[j].StartedAt) {
			return tasks[i].Key < tasks[j].Key
		}
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// Prune drops finished tasks and returns how many were removed
func (m *Manager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for key, ts := range m.tasks {
		if ts.task.Status.IsFinished() {
			delete(m.tasks, key)
			n++
		}
	}
	return n
}

func progressEvent(t model.UploadTask) Event {
	return Event{
		Kind:     EventProgress,
		Key:      t.Key,
		Progress: t.Progress,
		Loaded:   t.Loaded,
		Total:    t.Total,
		Attempt:  t.Attempt,
		Task:     t,
	}
}

// estimateETA returns remaining seconds at the observed rate, or -1 if unknown
func estimateETA(elapsed time.Duration, loaded, total int64) int {
	if loaded <= 0 || elapsed <= 0 {
		return -1
	}
	rate := float64(loaded) / elapsed.Seconds()
	return int(float64(total-loaded) / rate)
}
