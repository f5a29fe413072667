package ui

import "fmt"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconUpload   = "⬆"
	IconStop     = "⏹"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✔"
	IconLicense  = "🔑"
	IconPlay     = "▶"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	StatusLabelWidth  float32 = 150
	SizeLabelWidth    float32 = 80
	PercentLabelWidth float32 = 48
	ProgressBarWidth  float32 = 160

	WindowWidth  float32 = 960
	WindowHeight float32 = 640

	DialogWidth  float32 = 520
	DialogHeight float32 = 560
)

// File size formatting
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}
