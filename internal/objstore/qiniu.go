package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/qiniu/go-sdk/v7/storage"
	"github.com/qiniu/go-sdk/v7/storagev2/uptoken"
	"golang.org/x/sync/errgroup"
)

// DefaultRegion is the Qiniu region used when none is configured (South China)
const DefaultRegion = "z2"

// MinPartSize is the smallest part the multipart API accepts
const MinPartSize = 1 << 20

// DefaultPartWorkers bounds in-flight parts of one upload when neither the
// request nor the transport sets a limit
const DefaultPartWorkers = 4

var qiniuRegions = map[string]storage.Region{
	"z0":  storage.ZoneHuadong,
	"z1":  storage.ZoneHuabei,
	"z2":  storage.ZoneHuanan,
	"na0": storage.ZoneBeimei,
	"as0": storage.ZoneXinjiapo,
}

// QiniuOptions configures the Qiniu transport
type QiniuOptions struct {
	Region        string
	UseHTTPS      bool
	UseCdnDomains bool
	Workers       int    // parts of one upload in flight, unless the request sets its own
	UpHost        string // overrides the region's upload host, e.g. "http://127.0.0.1:9000"
}

// Qiniu uploads through the Qiniu multipart (resumable v2) API.
// Parts are scheduled here rather than by the SDK, whose worker pool is
// process-wide, so every Put gets its own concurrency limit.
type Qiniu struct {
	cfg      storage.Config
	uploader *storage.ResumeUploaderV2
	workers  int
	upHost   string
}

// NewQiniu creates a Qiniu transport for the given region
func NewQiniu(opts QiniuOptions) (*Qiniu, error) {
	if opts.Region == "" {
		opts.Region = DefaultRegion
	}
	region, ok := qiniuRegions[opts.Region]
	if !ok {
		return nil, fmt.Errorf("unknown qiniu region %q", opts.Region)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultPartWorkers
	}

	q := &Qiniu{
		cfg: storage.Config{
			Region:        &region,
			UseHTTPS:      opts.UseHTTPS,
			UseCdnDomains: opts.UseCdnDomains,
		},
		workers: opts.Workers,
		upHost:  opts.UpHost,
	}
	q.uploader = storage.NewResumeUploaderV2(&q.cfg)
	return q, nil
}

// Name implements Transport
func (q *Qiniu) Name() string { return ProviderQiniu }

// Put uploads req.Path in parts of req.ChunkSize, raised to MinPartSize, with at
// most req.Concurrency parts in flight. Progress is reported as parts finish.
func (q *Qiniu) Put(ctx context.Context, req PutRequest, progress ProgressFunc) (PutResult, error) {
	parser := uptoken.NewParser(req.Token)
	ak, err := parser.GetAccessKey(ctx)
	if err != nil {
		return PutResult{}, fmt.Errorf("qiniu upload token: %w", err)
	}
	policy, err := parser.GetPutPolicy(ctx)
	if err != nil {
		return PutResult{}, fmt.Errorf("qiniu upload token: %w", err)
	}
	bucket, err := policy.GetBucketName()
	if err != nil {
		return PutResult{}, fmt.Errorf("qiniu upload token: %w", err)
	}

	upHost := q.upHost
	if upHost == "" {
		if upHost, err = q.uploader.UpHost(ak, bucket); err != nil {
			return PutResult{}, fmt.Errorf("qiniu upload host: %w", err)
		}
	}

	f, err := os.Open(req.Path)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	size := req.Size
	if size <= 0 {
		info, err := f.Stat()
		if err != nil {
			return PutResult{}, err
		}
		size = info.Size()
	}

	var init storage.InitPartsRet
	if err := q.uploader.InitParts(ctx, req.Token, upHost, bucket, req.Key, true, &init); err != nil {
		return PutResult{}, fmt.Errorf("qiniu upload %s: init: %w", req.Key, err)
	}

	part := max(req.ChunkSize, MinPartSize)
	parts, err := q.putParts(ctx, f, req, upHost, bucket, init.UploadID, part, size, progress)
	if err != nil {
		return PutResult{}, fmt.Errorf("qiniu upload %s: %w", req.Key, err)
	}

	extra := &storage.RputV2Extra{
		MimeType:   req.MimeType,
		Metadata:   map[string]string{"x-qn-meta-fname": req.FileName},
		Progresses: parts,
	}
	var ret storage.PutRet
	if err := q.uploader.CompleteParts(ctx, req.Token, upHost, &ret, bucket, req.Key, true, init.UploadID, extra); err != nil {
		return PutResult{}, fmt.Errorf("qiniu upload %s: complete: %w", req.Key, err)
	}

	key := ret.Key
	if key == "" {
		key = req.Key
	}
	return PutResult{Key: key, Hash: ret.Hash}, nil
}

// putParts uploads every part of f and returns them in part-number order
func (q *Qiniu) putParts(ctx context.Context, f io.ReaderAt, req PutRequest, upHost, bucket, uploadID string, part, size int64, progress ProgressFunc) ([]storage.UploadPartInfo, error) {
	workers := req.Concurrency
	if workers <= 0 {
		workers = q.workers
	}

	count := max(partCount(size, part), 1)
	parts := make([]storage.UploadPartInfo, count)

	var mu sync.Mutex
	var loaded int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range parts {
		n := int64(i + 1)
		g.Go(func() error {
			length := partSize(n, part, size)
			body := io.NewSectionReader(f, (n-1)*part, length)

			var ret storage.UploadPartsRet
			if err := q.uploader.UploadParts(gctx, req.Token, upHost, bucket, req.Key, true, uploadID, n, "", &ret, body, int(length)); err != nil {
				return fmt.Errorf("part %d: %w", n, err)
			}
			parts[i] = storage.UploadPartInfo{Etag: ret.Etag, PartNumber: n}

			// serialized so the callback never sees loaded go backwards
			mu.Lock()
			defer mu.Unlock()
			loaded += length
			if progress != nil {
				progress(loaded, size)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}
