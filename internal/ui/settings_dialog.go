package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/video-batch-uploader/internal/applog"
	"github.com/ytget/video-batch-uploader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	apiBaseEntry     *widget.Entry
	cdnDomainEntry   *widget.Entry
	providerSelect   *widget.Select
	regionSelect     *widget.Select
	bucketEntry      *widget.Entry
	credentialsEntry *widget.Entry
	keyPrefixEntry   *widget.Entry
	concurrencyEntry *widget.Entry
	chunkSizeEntry   *widget.Entry
	retryEntry       *widget.Entry
	parallelEntry    *widget.Entry
	languageSelect   *widget.Select
	logLevelSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.apiBaseEntry = widget.NewEntry()
	sd.cdnDomainEntry = widget.NewEntry()
	sd.cdnDomainEntry.SetPlaceHolder("https://cdn.example.com")

	sd.providerSelect = widget.NewSelect(sd.settings.GetStorageProviderOptions(), nil)
	sd.regionSelect = widget.NewSelect(sd.settings.GetRegionOptions(), nil)
	sd.bucketEntry = widget.NewEntry()

	sd.credentialsEntry = widget.NewEntry()
	browseBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseCredentials)
	credentialsRow := container.NewBorder(nil, nil, nil, browseBtn, sd.credentialsEntry)

	sd.keyPrefixEntry = widget.NewEntry()
	sd.concurrencyEntry = numericEntry(config.MinChunkConcurrency, config.MaxChunkConcurrency)
	sd.chunkSizeEntry = numericEntry(config.MinChunkSizeKB, config.MaxChunkSizeKB)
	sd.retryEntry = numericEntry(config.MinRetryCount, config.MaxRetryCount)
	sd.parallelEntry = numericEntry(config.MinParallelFiles, config.MaxParallelFiles)

	languages := make([]string, 0)
	for code := range sd.settings.GetLanguageOptions() {
		languages = append(languages, code)
	}
	sort.Strings(languages)
	sd.languageSelect = widget.NewSelect(languages, nil)
	sd.logLevelSelect = widget.NewSelect(applog.Levels(), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyAPIBaseURL), sd.apiBaseEntry),
		widget.NewFormItem(l.GetText(KeyCDNDomain), sd.cdnDomainEntry),
		widget.NewFormItem(l.GetText(KeyStorageProvider), sd.providerSelect),
		widget.NewFormItem(l.GetText(KeyRegion), sd.regionSelect),
		widget.NewFormItem(l.GetText(KeyGCSBucket), sd.bucketEntry),
		widget.NewFormItem(l.GetText(KeyGCSCredentials), credentialsRow),
		widget.NewFormItem(l.GetText(KeyKeyPrefix), sd.keyPrefixEntry),
	)
	uploadForm := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyChunkConcurrency), sd.concurrencyEntry),
		widget.NewFormItem(l.GetText(KeyChunkSize), sd.chunkSizeEntry),
		widget.NewFormItem(l.GetText(KeyRetryCount), sd.retryEntry),
		widget.NewFormItem(l.GetText(KeyParallelFiles), sd.parallelEntry),
	)
	interfaceForm := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(l.GetText(KeyLogLevel), sd.logLevelSelect),
	)
	hint := widget.NewLabel(l.GetText(KeyRestartHint))
	hint.Importance = widget.LowImportance

	content := container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle(l.GetText(KeyServerSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		widget.NewSeparator(),
		widget.NewLabelWithStyle(l.GetText(KeyUploadSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		uploadForm,
		widget.NewSeparator(),
		widget.NewLabelWithStyle(l.GetText(KeyInterfaceSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		interfaceForm,
		hint,
	))

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// numericEntry creates an entry that hints its accepted range
func numericEntry(lo, hi int) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(strconv.Itoa(lo) + "-" + strconv.Itoa(hi))
	e.Validator = func(s string) error {
		_, err := strconv.Atoi(s)
		return err
	}
	return e
}

func (sd *SettingsDialog) loadCurrentSettings() {
	s := sd.settings
	sd.apiBaseEntry.SetText(s.GetAPIBaseURL())
	sd.cdnDomainEntry.SetText(s.GetCDNDomain())
	sd.providerSelect.SetSelected(s.GetStorageProvider())
	sd.regionSelect.SetSelected(s.GetRegion())
	sd.bucketEntry.SetText(s.GetGCSBucket())
	sd.credentialsEntry.SetText(s.GetGCSCredentialsFile())
	sd.keyPrefixEntry.SetText(s.GetKeyPrefix())
	sd.concurrencyEntry.SetText(strconv.Itoa(s.GetChunkConcurrency()))
	sd.chunkSizeEntry.SetText(strconv.Itoa(s.GetChunkSizeKB()))
	sd.retryEntry.SetText(strconv.Itoa(s.GetRetryCount()))
	sd.parallelEntry.SetText(strconv.Itoa(s.GetParallelFiles()))
	sd.languageSelect.SetSelected(s.GetLanguage())
	sd.logLevelSelect.SetSelected(s.GetLogLevel())
}

func (sd *SettingsDialog) onBrowseCredentials() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		sd.credentialsEntry.SetText(rc.URI().Path())
	}, sd.window)
}

// setInt parses text and applies it with setter, ignoring invalid numbers
func setInt(text string, setter func(int)) {
	if n, err := strconv.Atoi(text); err == nil {
		setter(n)
	}
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	s := sd.settings

	s.SetAPIBaseURL(sd.apiBaseEntry.Text)
	s.SetCDNDomain(sd.cdnDomainEntry.Text)
	if sd.providerSelect.Selected != "" {
		s.SetStorageProvider(sd.providerSelect.Selected)
	}
	if sd.regionSelect.Selected != "" {
		s.SetRegion(sd.regionSelect.Selected)
	}
	s.SetGCSBucket(sd.bucketEntry.Text)
	s.SetGCSCredentialsFile(sd.credentialsEntry.Text)
	s.SetKeyPrefix(sd.keyPrefixEntry.Text)

	setInt(sd.concurrencyEntry.Text, s.SetChunkConcurrency)
	setInt(sd.chunkSizeEntry.Text, s.SetChunkSizeKB)
	setInt(sd.retryEntry.Text, s.SetRetryCount)
	setInt(sd.parallelEntry.Text, s.SetParallelFiles)

	if sd.languageSelect.Selected != "" {
		s.SetLanguage(sd.languageSelect.Selected)
	}
	if sd.logLevelSelect.Selected != "" {
		s.SetLogLevel(sd.logLevelSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
