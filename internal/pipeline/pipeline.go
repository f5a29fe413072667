// Package pipeline drives a batch of videos through cover extraction,
// object upload and backend registration.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/video-batch-uploader/internal/api"
	"github.com/ytget/video-batch-uploader/internal/media"
	"github.com/ytget/video-batch-uploader/internal/model"
	"github.com/ytget/video-batch-uploader/internal/upload"
)

var (
	// ErrNotLicensed is returned by Run when the license gate is closed
	ErrNotLicensed = errors.New("license is not valid")

	// ErrBusy is returned by Run while another batch is running
	ErrBusy = errors.New("a batch is already running")
)

// Defaults
const (
	DefaultKeyPrefix        = "videos"
	DefaultMaxParallelFiles = 2
	createTimeLayout        = "2006-01-02 15:04:05"
	keyDateLayout           = "20060102"
)

// LicenseGate reports whether uploads are allowed
type LicenseGate interface {
	IsValid() bool
}

// Backend issues upload tokens and registers uploaded videos
type Backend interface {
	GetUploadToken(ctx context.Context, authorization string) (string, error)
	SubmitVideo(ctx context.Context, v api.Video) (map[string]any, error)
}

// Uploader stores files as objects
type Uploader interface {
	Upload(ctx context.Context, src upload.Source, token, key string) (*upload.Result, error)
	Subscribe(o upload.Observer) func()
	CancelAll()
	Prune() int
}

// Options tune a Pipeline
type Options struct {
	KeyPrefix        string
	MaxParallelFiles int
	KeepCovers       bool // leave extracted cover files on disk
}

// Summary counts the outcome of one Run
type Summary struct {
	Total     int
	Completed int
	Failed    int
	Cancelled int
}

// Pipeline uploads batches of videos
type Pipeline struct {
	license  LicenseGate
	backend  Backend
	uploader Uploader
	covers   media.CoverExtractor
	log      logging.Logger
	opts     Options
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	cancel   context.CancelFunc
	onUpdate func(model.VideoFile)
}

// New creates a pipeline
func New(license LicenseGate, backend Backend, uploader Uploader, covers media.CoverExtractor, opts Options, log logging.Logger) *Pipeline {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if opts.MaxParallelFiles <= 0 {
		opts.MaxParallelFiles = DefaultMaxParallelFiles
	}
	return &Pipeline{
		license:  license,
		backend:  backend,
		uploader: uploader,
		covers:   covers,
		log:      log,
		opts:     opts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SetUpdateCallback sets the function receiving a snapshot after every video state change.
// It is called from worker goroutines.
func (p *Pipeline) SetUpdateCallback(callback func(model.VideoFile)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = callback
}

func (p *Pipeline) notify(v *model.VideoFile) {
	p.mu.Lock()
	callback := p.onUpdate
	p.mu.Unlock()
	if callback != nil {
		callback(*v)
	}
}

// Running reports whether a batch is in progress
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Cancel stops the running batch. Videos not yet finished end as cancelled.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	p.log.Info("cancelling batch")
	cancel()
	p.uploader.CancelAll()
}

// Run uploads files and registers each with the backend. Failures of single
// files are recorded on the returned snapshots and do not stop the others.
func (p *Pipeline) Run(ctx context.Context, authorization string, files []model.VideoFile) ([]model.VideoFile, Summary, error) {
	summary := Summary{Total: len(files)}

	if !p.license.IsValid() {
		return nil, summary, ErrNotLicensed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return nil, summary, ErrBusy
	}
	p.cancel = cancel
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
	}()

	p.log.Info("batch started", "files", len(files))

	token, err := p.backend.GetUploadToken(ctx, authorization)
	if err != nil {
		p.log.Error("could not get upload token", "error", err.Error())
		return nil, summary, fmt.Errorf("could not get upload token: %w", err)
	}

	results := make([]model.VideoFile, len(files))
	tracker := newProgressTracker(p)
	unsubscribe := p.uploader.Subscribe(tracker)
	defer unsubscribe()

	var g errgroup.Group
	g.SetLimit(p.opts.MaxParallelFiles)
	for i := range files {
		v := files[i]
		v.Reset()
		results[i] = v
		p.notify(&v)

		g.Go(func() error {
			results[i] = p.process(ctx, token, v, tracker)
			return nil
		})
	}
	g.Wait()
	p.uploader.Prune()

	for _, v := range results {
		switch v.Status {
		case model.VideoStatusCompleted:
			summary.Completed++
		case model.VideoStatusCancelled:
			summary.Cancelled++
		default:
			summary.Failed++
		}
	}
	p.log.Info("batch finished", "completed", summary.Completed, "failed", summary.Failed, "cancelled", summary.Cancelled)
	return results, summary, nil
}

// process runs one video to a finished status
func (p *Pipeline) process(ctx context.Context, token string, v model.VideoFile, tracker *progressTracker) model.VideoFile {
	if ctx.Err() != nil {
		return p.cancelled(&v)
	}

	title := v.CleanedName
	if title == "" {
		title = media.DefaultTitle
	}

	v.UpdateStatus(model.VideoStatusProcessing)
	p.notify(&v)

	cover, err := p.covers.ExtractFirstFrame(ctx, v.Path)
	if err != nil {
		if ctx.Err() != nil {
			return p.cancelled(&v)
		}
		return p.failed(&v, fmt.Errorf("cover extraction failed: %w", err))
	}
	v.CoverPath = cover.Path
	if !p.opts.KeepCovers {
		defer os.Remove(cover.Path)
	}

	now := p.now()
	v.VideoKey = path.Join(p.opts.KeyPrefix, now.Format(keyDateLayout), p.newID())
	v.CoverKey = v.VideoKey + media.CoverSuffix
	v.UpdateStatus(model.VideoStatusUploading)
	tracker.track(v.VideoKey, v)
	p.notify(&v)

	var videoRes, coverRes *upload.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videoRes, err = p.uploader.Upload(gctx, upload.Source{Path: v.Path, Size: v.Size, Title: title}, token, v.VideoKey)
		if err != nil {
			return fmt.Errorf("video upload failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		coverRes, err = p.uploader.Upload(gctx, upload.Source{Path: cover.Path, Title: title}, token, v.CoverKey)
		if err != nil {
			return fmt.Errorf("cover upload failed: %w", err)
		}
		return nil
	})
	err = g.Wait()
	v.Progress = tracker.untrack(v.VideoKey)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, upload.ErrCancelled) {
			return p.cancelled(&v)
		}
		return p.failed(&v, err)
	}

	v.VideoURL = videoRes.URL
	v.CoverURL = coverRes.URL
	v.Progress = 100
	v.UpdateStatus(model.VideoStatusSubmitting)
	p.notify(&v)

	_, err = p.backend.SubmitVideo(ctx, api.Video{
		Title:      title,
		VideoURL:   v.VideoURL,
		CoverURL:   v.CoverURL,
		VideoKey:   v.VideoKey,
		CoverKey:   v.CoverKey,
		FileSize:   v.Size,
		CreateTime: now.Format(createTimeLayout),
	})
	if err != nil {
		if ctx.Err() != nil {
			return p.cancelled(&v)
		}
		return p.failed(&v, fmt.Errorf("submit failed: %w", err))
	}

	v.UpdateStatus(model.VideoStatusCompleted)
	p.log.Info("video uploaded", "title", title, "url", v.VideoURL)
	p.notify(&v)
	return v
}

func (p *Pipeline) failed(v *model.VideoFile, err error) model.VideoFile {
	p.log.Error("video failed", "path", v.Path, "error", err.Error())
	v.Fail(err)
	p.notify(v)
	return *v
}

func (p *Pipeline) cancelled(v *model.VideoFile) model.VideoFile {
	v.UpdateStatus(model.VideoStatusCancelled)
	p.notify(v)
	return *v
}
