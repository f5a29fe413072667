package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/video-batch-uploader/internal/license"
	"github.com/ytget/video-batch-uploader/internal/model"
)

func TestLocalizationTablesMatch(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["zh"] {
		_, ok := l.texts["en"][key]
		assert.True(t, ok, "missing en text for %q", key)
	}
	for key := range l.texts["en"] {
		_, ok := l.texts["zh"][key]
		assert.True(t, ok, "missing zh text for %q", key)
	}
}

func TestLocalizationFallback(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "zh", l.GetCurrentLanguage())

	l.SetLanguage("fr")
	assert.Equal(t, "zh", l.GetCurrentLanguage(), "unknown languages are ignored")

	l.SetLanguage("en")
	assert.Equal(t, "Uploading", l.StatusText(model.VideoStatusUploading))
	assert.Equal(t, "no_such_key", l.GetText("no_such_key"))
}

func TestSystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")

	t.Setenv("LANG", "zh_CN.UTF-8")
	assert.Equal(t, "zh", systemLanguage())

	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, "en", systemLanguage())

	t.Setenv("LANG", "")
	assert.Equal(t, "zh", systemLanguage())
}

func TestActivationText(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("en")

	assert.Equal(t, l.GetText(KeyActivated), l.ActivationText(license.Result{Success: true, Code: license.CodeActivated}))
	assert.Equal(t, l.GetText(KeyInvalidKey), l.ActivationText(license.Result{Code: license.CodeInvalidKey}))
	assert.Equal(t, "raw", l.ActivationText(license.Result{Code: "other", Message: "raw"}))
}

func TestVideoRowUpdate(t *testing.T) {
	test.NewTempApp(t)

	l := NewLocalization()
	l.SetLanguage("en")
	video := model.VideoFile{ID: "v1", OriginalName: "clip.mp4", CleanedName: "clip", Size: 2048, Status: model.VideoStatusPending}

	var edited string
	row := NewVideoRow(video, l)
	row.SetCallbacks(func(id, title string) { edited = id + ":" + title }, nil)
	assert.Equal(t, DashPlaceholder, row.percentLabel.Text)

	row.titleEntry.SetText("my  title\n")
	assert.Equal(t, "v1:my  title", edited)

	video.Status = model.VideoStatusUploading
	video.Progress = 42.7
	row.Update(video)
	assert.Equal(t, "my  title", row.video.CleanedName, "updates keep the edited title")
	assert.Equal(t, "42%", row.percentLabel.Text)
	assert.True(t, row.titleEntry.Disabled())
	assert.True(t, row.removeBtn.Disabled())

	video.Status = model.VideoStatusError
	video.Error = "network"
	row.Update(video)
	assert.True(t, row.errorLabel.Visible())
	assert.False(t, row.removeBtn.Disabled())
}
