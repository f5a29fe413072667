package ui

import (
	"os"
	"strings"

	"github.com/ytget/video-batch-uploader/internal/license"
	"github.com/ytget/video-batch-uploader/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyAddFolder          = "add_folder"
	KeyAddFile            = "add_file"
	KeyUploadAll          = "upload_all"
	KeyCancelAll          = "cancel_all"
	KeyClear              = "clear"
	KeyRemove             = "remove"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyAuthorization      = "authorization"
	KeyAuthorizationHint  = "authorization_hint"
	KeyNoVideos           = "no_videos"
	KeyOverallProgress    = "overall_progress"
	KeySkippedFiles       = "skipped_files"
	KeyNothingToUpload    = "nothing_to_upload"
	KeyMissingAuth        = "missing_auth"
	KeyMissingDomain      = "missing_domain"
	KeyBatchFinished      = "batch_finished"
	KeyBatchFailed        = "batch_failed"
	KeyUploadInProgress   = "upload_in_progress"
	KeySettingsSaved      = "settings_saved"
	KeyLicense            = "license"
	KeyLicenseTitle       = "license_title"
	KeyLicenseExpires     = "license_expires"
	KeyLicenseTrial       = "license_trial"
	KeyLicenseInvalid     = "license_invalid"
	KeyLicenseKeyHint     = "license_key_hint"
	KeyActivate           = "activate"
	KeyActivated          = "activated"
	KeyLicenseExpired     = "license_expired"
	KeyInvalidKey         = "invalid_key"
	KeyLicenseWriteFailed = "license_write_failed"
	KeyTitleHint          = "title_hint"
	KeyAPIBaseURL         = "api_base_url"
	KeyCDNDomain          = "cdn_domain"
	KeyStorageProvider    = "storage_provider"
	KeyRegion             = "region"
	KeyGCSBucket          = "gcs_bucket"
	KeyGCSCredentials     = "gcs_credentials"
	KeyKeyPrefix          = "key_prefix"
	KeyChunkConcurrency   = "chunk_concurrency"
	KeyChunkSize          = "chunk_size"
	KeyRetryCount         = "retry_count"
	KeyParallelFiles      = "parallel_files"
	KeyLogLevel           = "log_level"
	KeyUploadSection      = "upload_section"
	KeyServerSection      = "server_section"
	KeyInterfaceSection   = "interface_section"
	KeyRestartHint        = "restart_hint"
	KeyShowLogs           = "show_logs"
	KeyShowLicenseFile    = "show_license_file"
	KeyPreview            = "preview"

	keyStatusPrefix = "status_"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "zh",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage guesses the UI language from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			if strings.HasPrefix(strings.ToLower(v), "zh") {
				return "zh"
			}
			return "en"
		}
	}
	return "zh"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if text, found := l.texts[l.currentLanguage][key]; found {
		return text
	}
	if text, found := l.texts["en"][key]; found {
		return text
	}
	return key
}

// StatusText returns the label for a video status
func (l *Localization) StatusText(status model.VideoStatus) string {
	return l.GetText(keyStatusPrefix + string(status))
}

// ActivationText returns the message for an activation result
func (l *Localization) ActivationText(res license.Result) string {
	switch res.Code {
	case license.CodeActivated:
		return l.GetText(KeyActivated)
	case license.CodeExpired:
		return l.GetText(KeyLicenseExpired)
	case license.CodeInvalidKey:
		return l.GetText(KeyInvalidKey)
	case license.CodeWriteFailed:
		return l.GetText(KeyLicenseWriteFailed)
	}
	return res.Message
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"zh": "中文",
		"en": "English",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["zh"] = map[string]string{
		KeyAppTitle:           "视频批量上传工具",
		KeySettings:           "设置",
		KeyFile:               "文件",
		KeyLanguage:           "语言",
		KeyAddFolder:          "选择文件夹",
		KeyAddFile:            "添加视频",
		KeyUploadAll:          "全部上传",
		KeyCancelAll:          "取消上传",
		KeyClear:              "清空列表",
		KeyRemove:             "移除",
		KeySave:               "保存",
		KeyCancel:             "取消",
		KeyBrowse:             "浏览",
		KeyAuthorization:      "授权令牌",
		KeyAuthorizationHint:  "粘贴后台授权令牌",
		KeyNoVideos:           "请选择包含视频的文件夹",
		KeyOverallProgress:    "已完成 %d / %d",
		KeySkippedFiles:       "部分文件已跳过",
		KeyNothingToUpload:    "没有待上传的视频",
		KeyMissingAuth:        "请先填写授权令牌",
		KeyMissingDomain:      "请先在设置中填写 CDN 域名",
		KeyBatchFinished:      "上传完成：成功 %d，失败 %d，取消 %d",
		KeyBatchFailed:        "上传失败",
		KeyUploadInProgress:   "正在上传，请稍候",
		KeySettingsSaved:      "设置已保存",
		KeyLicense:            "授权",
		KeyLicenseTitle:       "软件授权",
		KeyLicenseExpires:     "到期时间：%s",
		KeyLicenseTrial:       "（试用）",
		KeyLicenseInvalid:     "授权已过期，请输入激活码",
		KeyLicenseKeyHint:     "输入激活码",
		KeyActivate:           "激活",
		KeyActivated:          "激活成功",
		KeyLicenseExpired:     "授权已过期",
		KeyInvalidKey:         "无效的激活码",
		KeyLicenseWriteFailed: "保存授权失败",
		KeyTitleHint:          "视频标题",
		KeyAPIBaseURL:         "接口地址",
		KeyCDNDomain:          "CDN 域名",
		KeyStorageProvider:    "存储服务",
		KeyRegion:             "存储区域",
		KeyGCSBucket:          "GCS 存储桶",
		KeyGCSCredentials:     "GCS 凭据文件",
		KeyKeyPrefix:          "对象前缀",
		KeyChunkConcurrency:   "分片并发数",
		KeyChunkSize:          "分片大小 (KB)",
		KeyRetryCount:         "重试次数",
		KeyParallelFiles:      "同时上传文件数",
		KeyLogLevel:           "日志级别",
		KeyUploadSection:      "上传设置",
		KeyServerSection:      "服务器设置",
		KeyInterfaceSection:   "界面设置",
		KeyRestartHint:        "日志级别在重启后生效",
		KeyShowLogs:           "打开日志目录",
		KeyShowLicenseFile:    "打开许可证位置",
		KeyPreview:            "预览",

		keyStatusPrefix + string(model.VideoStatusPending):    "等待上传",
		keyStatusPrefix + string(model.VideoStatusProcessing): "提取封面",
		keyStatusPrefix + string(model.VideoStatusUploading):  "上传中",
		keyStatusPrefix + string(model.VideoStatusSubmitting): "提交中",
		keyStatusPrefix + string(model.VideoStatusCompleted):  "已完成",
		keyStatusPrefix + string(model.VideoStatusError):      "失败",
		keyStatusPrefix + string(model.VideoStatusCancelled):  "已取消",
	}

	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Video Batch Uploader",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyAddFolder:          "Open Folder",
		KeyAddFile:            "Add Video",
		KeyUploadAll:          "Upload All",
		KeyCancelAll:          "Cancel",
		KeyClear:              "Clear",
		KeyRemove:             "Remove",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyAuthorization:      "Authorization",
		KeyAuthorizationHint:  "Paste the backend authorization token",
		KeyNoVideos:           "Choose a folder containing videos",
		KeyOverallProgress:    "%d / %d completed",
		KeySkippedFiles:       "Some files were skipped",
		KeyNothingToUpload:    "No videos waiting for upload",
		KeyMissingAuth:        "Enter the authorization token first",
		KeyMissingDomain:      "Set the CDN domain in Settings first",
		KeyBatchFinished:      "Upload finished: %d succeeded, %d failed, %d cancelled",
		KeyBatchFailed:        "Upload failed",
		KeyUploadInProgress:   "An upload is in progress",
		KeySettingsSaved:      "Settings saved",
		KeyLicense:            "License",
		KeyLicenseTitle:       "License",
		KeyLicenseExpires:     "Expires: %s",
		KeyLicenseTrial:       " (trial)",
		KeyLicenseInvalid:     "The license has expired, enter an activation key",
		KeyLicenseKeyHint:     "Activation key",
		KeyActivate:           "Activate",
		KeyActivated:          "Activation succeeded",
		KeyLicenseExpired:     "License expired",
		KeyInvalidKey:         "Invalid activation key",
		KeyLicenseWriteFailed: "Failed to save license",
		KeyTitleHint:          "Video title",
		KeyAPIBaseURL:         "API base URL",
		KeyCDNDomain:          "CDN domain",
		KeyStorageProvider:    "Storage provider",
		KeyRegion:             "Region",
		KeyGCSBucket:          "GCS bucket",
		KeyGCSCredentials:     "GCS credentials file",
		KeyKeyPrefix:          "Key prefix",
		KeyChunkConcurrency:   "Chunk concurrency",
		KeyChunkSize:          "Chunk size (KB)",
		KeyRetryCount:         "Attempts per file",
		KeyParallelFiles:      "Files in parallel",
		KeyLogLevel:           "Log level",
		KeyUploadSection:      "Upload",
		KeyServerSection:      "Server",
		KeyInterfaceSection:   "Interface",
		KeyRestartHint:        "Log level applies after restart",
		KeyShowLogs:           "Show logs",
		KeyShowLicenseFile:    "Show license file",
		KeyPreview:            "Preview",

		keyStatusPrefix + string(model.VideoStatusPending):    "Pending",
		keyStatusPrefix + string(model.VideoStatusProcessing): "Extracting cover",
		keyStatusPrefix + string(model.VideoStatusUploading):  "Uploading",
		keyStatusPrefix + string(model.VideoStatusSubmitting): "Submitting",
		keyStatusPrefix + string(model.VideoStatusCompleted):  "Completed",
		keyStatusPrefix + string(model.VideoStatusError):      "Failed",
		keyStatusPrefix + string(model.VideoStatusCancelled):  "Cancelled",
	}
}
