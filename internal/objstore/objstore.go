// Package objstore adapts object-storage SDKs to the single Put operation
// the upload manager needs.
package objstore

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by New
const (
	ProviderQiniu = "qiniu"
	ProviderGCS   = "gcs"
)

// PutRequest describes one object upload
type PutRequest struct {
	Token       string // upload credential; ignored by transports with their own auth
	Key         string
	Path        string
	Size        int64
	FileName    string
	MimeType    string // empty lets the provider choose
	ChunkSize   int64
	Concurrency int
}

// PutResult is what the provider reports for a stored object
type PutResult struct {
	Key  string
	Hash string
}

// ProgressFunc receives bytes stored so far out of total
type ProgressFunc func(loaded, total int64)

// Transport stores local files as objects
type Transport interface {
	Name() string
	Put(ctx context.Context, req PutRequest, progress ProgressFunc) (PutResult, error)
}

// Options selects and configures a transport
type Options struct {
	Provider      string
	Region        string
	UseHTTPS      bool
	UseCdnDomains bool
	Concurrency   int

	Bucket          string
	CredentialsFile string
}

// New builds the transport named by opts.Provider
func New(ctx context.Context, opts Options) (Transport, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderQiniu:
		return NewQiniu(QiniuOptions{
			Region:        opts.Region,
			UseHTTPS:      opts.UseHTTPS,
			UseCdnDomains: opts.UseCdnDomains,
			Workers:       opts.Concurrency,
		})
	case ProviderGCS:
		return NewGCS(ctx, opts.Bucket, opts.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", opts.Provider)
	}
}

// partCount returns how many parts of size chunk cover total bytes
func partCount(total, chunk int64) int {
	return int((total + chunk - 1) / chunk)
}

// partSize returns the size of the 1-based part n of an object of size total
func partSize(n, chunk, total int64) int64 {
	start := (n - 1) * chunk
	if start >= total {
		return 0
	}
	return min(chunk, total-start)
}
