package upload

import (
	"strings"
	"time"
)

// Defaults applied by Config.normalize
const (
	DefaultMaxConcurrent = 6
	DefaultRetryCount    = 3
	DefaultRetryDelay    = time.Second
	DefaultRegion        = "z2"

	// MaxChunkSize is also the default chunk size
	MaxChunkSize int64 = 1 << 20
)

// Config controls how uploads are performed
type Config struct {
	Domain        string        // public URL prefix for stored objects
	MaxConcurrent int           // parts in flight per file
	ChunkSize     int64         // part size in bytes, at most MaxChunkSize
	RetryCount    int           // total attempts per upload
	RetryDelay    time.Duration // pause between attempts
	Region        string
	UseCdnDomains bool
}

// DefaultConfig returns the configuration used when nothing is customized
func DefaultConfig() Config {
	return Config{
		MaxConcurrent: DefaultMaxConcurrent,
		ChunkSize:     MaxChunkSize,
		RetryCount:    DefaultRetryCount,
		RetryDelay:    DefaultRetryDelay,
		Region:        DefaultRegion,
		UseCdnDomains: true,
	}
}

func (c Config) normalize() Config {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.ChunkSize <= 0 || c.ChunkSize > MaxChunkSize {
		c.ChunkSize = MaxChunkSize
	}
	if c.RetryCount <= 0 {
		c.RetryCount = DefaultRetryCount
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	c.Domain = strings.TrimRight(c.Domain, "/")
	return c
}

// ObjectURL joins the public domain and key
func (c Config) ObjectURL(key string) string {
	return strings.TrimRight(c.Domain, "/") + "/" + key
}
