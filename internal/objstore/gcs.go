package objstore

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS uploads to a Google Cloud Storage bucket using resumable writes.
// Credentials come from the credentials file or the environment, never from the upload token.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a GCS transport for bucket
func NewGCS(ctx context.Context, bucket, credentialsFile string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket not configured")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// Name implements Transport
func (g *GCS) Name() string { return ProviderGCS }

// Close releases the underlying client
func (g *GCS) Close() error { return g.client.Close() }

// Put implements Transport
func (g *GCS) Put(ctx context.Context, req PutRequest, progress ProgressFunc) (PutResult, error) {
	f, err := os.Open(req.Path)
	if err != nil {
		return PutResult{}, fmt.Errorf("could not open %s: %w", req.Path, err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(req.Key).NewWriter(ctx)
	if req.ChunkSize > 0 {
		w.ChunkSize = int(req.ChunkSize)
	}
	w.ContentType = req.MimeType
	w.Metadata = map[string]string{"fname": req.FileName}
	if progress != nil {
		w.ProgressFunc = func(n int64) { progress(min(n, req.Size), req.Size) }
	}

	if _, err := io.Copy(w, f); err != nil {
		cancel()
		w.Close()
		return PutResult{}, fmt.Errorf("gcs upload %s: %w", req.Key, err)
	}
	if err := w.Close(); err != nil {
		return PutResult{}, fmt.Errorf("gcs upload %s: %w", req.Key, err)
	}

	res := PutResult{Key: req.Key}
	if attrs := w.Attrs(); attrs != nil {
		res.Hash = attrs.Etag
	}
	return res, nil
}
