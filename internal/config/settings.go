package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/video-batch-uploader/internal/api"
	"github.com/ytget/video-batch-uploader/internal/applog"
	"github.com/ytget/video-batch-uploader/internal/objstore"
	"github.com/ytget/video-batch-uploader/internal/pipeline"
	"github.com/ytget/video-batch-uploader/internal/upload"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL       = "api_base_url"
	KeyAuthorization    = "authorization"
	KeyCDNDomain        = "cdn_domain"
	KeyStorageProvider  = "storage_provider"
	KeyRegion           = "storage_region"
	KeyGCSBucket        = "gcs_bucket"
	KeyGCSCredentials   = "gcs_credentials_file"
	KeyKeyPrefix        = "key_prefix"
	KeyChunkConcurrency = "chunk_concurrency"
	KeyChunkSizeKB      = "chunk_size_kb"
	KeyRetryCount       = "retry_count"
	KeyParallelFiles    = "parallel_files"
	KeyLanguage         = "app_language"
	KeyLogLevel         = "log_level"
)

// Default values
const (
	DefaultStorageProvider  = objstore.ProviderQiniu
	DefaultChunkConcurrency = upload.DefaultMaxConcurrent
	DefaultChunkSizeKB      = int(upload.MaxChunkSize / 1024)
	DefaultRetryCount       = upload.DefaultRetryCount
	DefaultParallelFiles    = pipeline.DefaultMaxParallelFiles
	DefaultLanguage         = "system"
	DefaultLogLevel         = applog.LevelInfo
)

// Limits applied by setters
const (
	MinChunkConcurrency = 1
	MaxChunkConcurrency = 10
	MinChunkSizeKB      = 64
	MaxChunkSizeKB      = 1024
	MinRetryCount       = 1
	MaxRetryCount       = 10
	MinParallelFiles    = 1
	MaxParallelFiles    = 5
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

func (s *Settings) prefs() fyne.Preferences {
	return s.app.Preferences()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// GetAPIBaseURL returns the backend root URL
func (s *Settings) GetAPIBaseURL() string {
	return s.prefs().StringWithFallback(KeyAPIBaseURL, api.DefaultBaseURL)
}

// SetAPIBaseURL sets the backend root URL, empty restores the default
func (s *Settings) SetAPIBaseURL(url string) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		url = api.DefaultBaseURL
	}
	s.prefs().SetString(KeyAPIBaseURL, url)
}

// GetAuthorization returns the stored Authorization header value
func (s *Settings) GetAuthorization() string {
	return s.prefs().String(KeyAuthorization)
}

// SetAuthorization stores the Authorization header value
func (s *Settings) SetAuthorization(auth string) {
	s.prefs().SetString(KeyAuthorization, strings.TrimSpace(auth))
}

// GetCDNDomain returns the public URL prefix of uploaded objects. It has no default
// and must be configured before uploading.
func (s *Settings) GetCDNDomain() string {
	return s.prefs().String(KeyCDNDomain)
}

// SetCDNDomain sets the public URL prefix of uploaded objects
func (s *Settings) SetCDNDomain(domain string) {
	s.prefs().SetString(KeyCDNDomain, strings.TrimRight(strings.TrimSpace(domain), "/"))
}

// GetStorageProvider returns qiniu or gcs
func (s *Settings) GetStorageProvider() string {
	p := s.prefs().StringWithFallback(KeyStorageProvider, DefaultStorageProvider)
	if p != objstore.ProviderQiniu && p != objstore.ProviderGCS {
		return DefaultStorageProvider
	}
	return p
}

// SetStorageProvider sets the storage provider, ignoring unknown names
func (s *Settings) SetStorageProvider(provider string) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider != objstore.ProviderQiniu && provider != objstore.ProviderGCS {
		return
	}
	s.prefs().SetString(KeyStorageProvider, provider)
}

// GetStorageProviderOptions returns the supported providers
func (s *Settings) GetStorageProviderOptions() []string {
	return []string{objstore.ProviderQiniu, objstore.ProviderGCS}
}

// GetRegion returns the Qiniu region ID
func (s *Settings) GetRegion() string {
	return s.prefs().StringWithFallback(KeyRegion, objstore.DefaultRegion)
}

// SetRegion sets the Qiniu region ID
func (s *Settings) SetRegion(region string) {
	region = strings.TrimSpace(region)
	if region == "" {
		region = objstore.DefaultRegion
	}
	s.prefs().SetString(KeyRegion, region)
}

// GetRegionOptions returns the known Qiniu region IDs
func (s *Settings) GetRegionOptions() []string {
	return []string{"z0", "z1", "z2", "na0", "as0"}
}

// GetGCSBucket returns the bucket used by the gcs provider
func (s *Settings) GetGCSBucket() string {
	return s.prefs().String(KeyGCSBucket)
}

// SetGCSBucket sets the bucket used by the gcs provider
func (s *Settings) SetGCSBucket(bucket string) {
	s.prefs().SetString(KeyGCSBucket, strings.TrimSpace(bucket))
}

// GetGCSCredentialsFile returns the service account file path, empty for application default credentials
func (s *Settings) GetGCSCredentialsFile() string {
	return s.prefs().String(KeyGCSCredentials)
}

// SetGCSCredentialsFile sets the service account file path
func (s *Settings) SetGCSCredentialsFile(path string) {
	s.prefs().SetString(KeyGCSCredentials, strings.TrimSpace(path))
}

// GetKeyPrefix returns the object key prefix
func (s *Settings) GetKeyPrefix() string {
	return s.prefs().StringWithFallback(KeyKeyPrefix, pipeline.DefaultKeyPrefix)
}

// SetKeyPrefix sets the object key prefix
func (s *Settings) SetKeyPrefix(prefix string) {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = pipeline.DefaultKeyPrefix
	}
	s.prefs().SetString(KeyKeyPrefix, prefix)
}

// GetChunkConcurrency returns how many parts of one file upload at once
func (s *Settings) GetChunkConcurrency() int {
	return clamp(s.prefs().IntWithFallback(KeyChunkConcurrency, DefaultChunkConcurrency), MinChunkConcurrency, MaxChunkConcurrency)
}

// SetChunkConcurrency sets how many parts of one file upload at once
func (s *Settings) SetChunkConcurrency(n int) {
	s.prefs().SetInt(KeyChunkConcurrency, clamp(n, MinChunkConcurrency, MaxChunkConcurrency))
}

// GetChunkSizeKB returns the part size in KiB
func (s *Settings) GetChunkSizeKB() int {
	return clamp(s.prefs().IntWithFallback(KeyChunkSizeKB, DefaultChunkSizeKB), MinChunkSizeKB, MaxChunkSizeKB)
}

// SetChunkSizeKB sets the part size in KiB
func (s *Settings) SetChunkSizeKB(kb int) {
	s.prefs().SetInt(KeyChunkSizeKB, clamp(kb, MinChunkSizeKB, MaxChunkSizeKB))
}

// GetRetryCount returns the number of attempts per upload
func (s *Settings) GetRetryCount() int {
	return clamp(s.prefs().IntWithFallback(KeyRetryCount, DefaultRetryCount), MinRetryCount, MaxRetryCount)
}

// SetRetryCount sets the number of attempts per upload
func (s *Settings) SetRetryCount(n int) {
	s.prefs().SetInt(KeyRetryCount, clamp(n, MinRetryCount, MaxRetryCount))
}

// GetParallelFiles returns how many videos are processed at once
func (s *Settings) GetParallelFiles() int {
	return clamp(s.prefs().IntWithFallback(KeyParallelFiles, DefaultParallelFiles), MinParallelFiles, MaxParallelFiles)
}

// SetParallelFiles sets how many videos are processed at once
func (s *Settings) SetParallelFiles(n int) {
	s.prefs().SetInt(KeyParallelFiles, clamp(n, MinParallelFiles, MaxParallelFiles))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"zh":     "中文",
		"en":     "English",
	}
}

// GetLogLevel returns the log level name
func (s *Settings) GetLogLevel() string {
	return s.prefs().StringWithFallback(KeyLogLevel, DefaultLogLevel)
}

// SetLogLevel sets the log level name
func (s *Settings) SetLogLevel(level string) {
	s.prefs().SetString(KeyLogLevel, strings.ToLower(strings.TrimSpace(level)))
}

// UploadConfig assembles the upload manager configuration
func (s *Settings) UploadConfig() upload.Config {
	cfg := upload.DefaultConfig()
	cfg.Domain = s.GetCDNDomain()
	cfg.MaxConcurrent = s.GetChunkConcurrency()
	cfg.ChunkSize = int64(s.GetChunkSizeKB()) * 1024
	cfg.RetryCount = s.GetRetryCount()
	cfg.Region = s.GetRegion()
	return cfg
}

// StorageOptions assembles the transport selection
func (s *Settings) StorageOptions() objstore.Options {
	return objstore.Options{
		Provider:        s.GetStorageProvider(),
		Region:          s.GetRegion(),
		UseHTTPS:        true,
		UseCdnDomains:   true,
		Concurrency:     s.GetChunkConcurrency(),
		Bucket:          s.GetGCSBucket(),
		CredentialsFile: s.GetGCSCredentialsFile(),
	}
}

// PipelineOptions assembles the batch pipeline options
func (s *Settings) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		KeyPrefix:        s.GetKeyPrefix(),
		MaxParallelFiles: s.GetParallelFiles(),
	}
}
