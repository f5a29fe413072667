package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/ausocean/utils/logging"

	"github.com/ytget/video-batch-uploader/internal/config"
	"github.com/ytget/video-batch-uploader/internal/license"
	"github.com/ytget/video-batch-uploader/internal/media"
	"github.com/ytget/video-batch-uploader/internal/model"
	"github.com/ytget/video-batch-uploader/internal/pipeline"
	"github.com/ytget/video-batch-uploader/internal/platform"
)

// PipelineFactory builds a pipeline from the current settings. release frees
// whatever the pipeline holds (storage clients) once the batch is over.
type PipelineFactory func(ctx context.Context) (p *pipeline.Pipeline, release func(), err error)

// Deps are the services the UI drives
type Deps struct {
	Settings    *config.Settings
	License     *license.Store
	NewPipeline PipelineFactory
	Log         logging.Logger
	LogFile     string // revealed from the File menu when set
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	license      *license.Store
	newPipeline  PipelineFactory
	log          logging.Logger
	logFile      string

	batch *model.Batch
	rows  map[string]*VideoRow

	authEntry    *widget.Entry
	addFolderBtn *widget.Button
	addFileBtn   *widget.Button
	uploadBtn    *widget.Button
	cancelBtn    *widget.Button
	clearBtn     *widget.Button
	settingsBtn  *widget.Button
	licenseBtn   *widget.Button
	listBox      *fyne.Container
	emptyLabel   *widget.Label
	overallBar   *widget.ProgressBar
	overallLabel *widget.Label
	licenseLabel *widget.Label

	mu     sync.Mutex
	active *pipeline.Pipeline
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, deps Deps) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(deps.Settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     deps.Settings,
		localization: localization,
		license:      deps.License,
		newPipeline:  deps.NewPipeline,
		log:          deps.Log,
		logFile:      deps.LogFile,
		batch:        model.NewBatch(),
		rows:         make(map[string]*VideoRow),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization
	ui.createMenu()

	ui.authEntry = widget.NewPasswordEntry()
	ui.authEntry.SetPlaceHolder(l.GetText(KeyAuthorizationHint))
	ui.authEntry.SetText(ui.settings.GetAuthorization())
	ui.authEntry.OnChanged = ui.settings.SetAuthorization

	ui.addFolderBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyAddFolder), ui.onAddFolder)
	ui.addFileBtn = widget.NewButton(l.GetText(KeyAddFile), ui.onAddFile)
	ui.uploadBtn = widget.NewButton(IconUpload+" "+l.GetText(KeyUploadAll), ui.onUploadAll)
	ui.uploadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(IconStop+" "+l.GetText(KeyCancelAll), ui.onCancelAll)
	ui.cancelBtn.Importance = widget.DangerImportance
	ui.clearBtn = widget.NewButton(l.GetText(KeyClear), ui.onClear)
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance
	ui.licenseBtn = widget.NewButton(IconLicense, func() { ui.showLicense(false) })
	ui.licenseBtn.Importance = widget.LowImportance

	authRow := container.NewBorder(nil, nil,
		widget.NewLabel(l.GetText(KeyAuthorization)),
		container.NewHBox(ui.licenseBtn, ui.settingsBtn),
		ui.authEntry,
	)
	toolbar := container.NewHBox(
		ui.addFolderBtn,
		ui.addFileBtn,
		ui.clearBtn,
		layout.NewSpacer(),
		ui.cancelBtn,
		ui.uploadBtn,
	)

	ui.emptyLabel = widget.NewLabel(l.GetText(KeyNoVideos))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter
	ui.listBox = container.NewVBox(ui.emptyLabel)

	ui.overallBar = widget.NewProgressBar()
	ui.overallBar.Max = 100
	ui.overallLabel = widget.NewLabel("")
	ui.licenseLabel = widget.NewLabel("")
	ui.licenseLabel.Importance = widget.LowImportance
	footer := container.NewBorder(nil, nil, ui.overallLabel, ui.licenseLabel, ui.overallBar)

	content := container.NewBorder(
		container.NewVBox(authRow, toolbar, widget.NewSeparator()),
		footer,
		nil,
		nil,
		container.NewVScroll(ui.listBox),
	)
	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.updateOverall()
	ui.updateLicenseLabel()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	licenseItem := fyne.NewMenuItem(ui.localization.GetText(KeyLicense), func() { ui.showLicense(false) })

	fileItems := []*fyne.MenuItem{settingsItem, licenseItem, fyne.NewMenuItemSeparator()}
	fileItems = append(fileItems, fyne.NewMenuItem(ui.localization.GetText(KeyShowLicenseFile), func() {
		ui.reveal(ui.license.Path())
	}))
	if ui.logFile != "" {
		fileItems = append(fileItems, fyne.NewMenuItem(ui.localization.GetText(KeyShowLogs), func() {
			ui.reveal(ui.logFile)
		}))
	}

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		item := fyne.NewMenuItem(name, func() { ui.onLanguageChange(code) })
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), fileItems...),
		languageMenu,
	))
}

func (ui *RootUI) reveal(path string) {
	if err := platform.RevealFile(path); err != nil {
		ui.log.Warning("could not reveal file", "path", path, "error", err.Error())
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onPreview(id string) {
	v, ok := ui.batch.GetVideo(id)
	if !ok {
		return
	}
	path := v.Path
	go func() {
		if err := platform.OpenFile(path); err != nil {
			ui.log.Warning("could not open video", "path", path, "error", err.Error())
			fyne.Do(func() { dialog.ShowError(err, ui.window) })
		}
	}()
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.authEntry.SetPlaceHolder(l.GetText(KeyAuthorizationHint))
	ui.addFolderBtn.SetText(IconFolder + " " + l.GetText(KeyAddFolder))
	ui.addFileBtn.SetText(l.GetText(KeyAddFile))
	ui.uploadBtn.SetText(IconUpload + " " + l.GetText(KeyUploadAll))
	ui.cancelBtn.SetText(IconStop + " " + l.GetText(KeyCancelAll))
	ui.clearBtn.SetText(l.GetText(KeyClear))
	ui.emptyLabel.SetText(l.GetText(KeyNoVideos))
	for _, v := range ui.batch.Videos {
		if row, ok := ui.rows[v.ID]; ok {
			row.Update(*v)
		}
	}
	ui.updateOverall()
	ui.updateLicenseLabel()
}

// CheckLicense opens the blocking activation dialog when the license is not valid
func (ui *RootUI) CheckLicense() bool {
	valid := ui.license.IsValid()
	ui.updateLicenseLabel()
	if !valid {
		ui.showLicense(true)
	}
	return valid
}

// OnLicenseChanged reacts to the periodic license check. Safe to call from any goroutine.
func (ui *RootUI) OnLicenseChanged(valid bool) {
	fyne.Do(func() {
		ui.updateLicenseLabel()
		if valid {
			return
		}
		ui.log.Warning("license lapsed during session")
		ui.onCancelAll()
		ui.showLicense(true)
	})
}

func (ui *RootUI) showLicense(required bool) {
	NewLicenseDialog(ui.license, ui.window, ui.localization, func() {
		ui.updateLicenseLabel()
	}).Show(required)
}

func (ui *RootUI) updateLicenseLabel() {
	rec := ui.license.Read()
	if rec == nil {
		ui.licenseLabel.SetText("")
		return
	}
	text := fmt.Sprintf(ui.localization.GetText(KeyLicenseExpires), displayDate(rec.ExpirationDate))
	if rec.IsTrial {
		text += ui.localization.GetText(KeyLicenseTrial)
	}
	ui.licenseLabel.SetText(text)
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

func (ui *RootUI) onAddFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		videos, err := media.ScanDirectory(uri.Path())
		ui.addVideos(videos, err)
	}, ui.window)
}

func (ui *RootUI) onAddFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		videos, err := media.ProcessVideoFiles([]string{path})
		ui.addVideos(videos, err)
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter(media.VideoExtensions()))
	fd.Show()
}

// addVideos appends new videos to the batch; scanErr lists files that were skipped
func (ui *RootUI) addVideos(videos []*model.VideoFile, scanErr error) {
	if ui.isRunning() {
		dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyUploadInProgress), ui.window)
		return
	}

	added := 0
	for _, v := range videos {
		if !ui.batch.AddVideo(v) {
			continue
		}
		row := NewVideoRow(*v, ui.localization)
		row.SetCallbacks(ui.onTitleChanged, ui.onRemoveVideo)
		row.SetPreview(ui.onPreview)
		ui.rows[v.ID] = row
		added++
	}
	ui.log.Info("videos added", "added", added, "total", len(ui.batch.Videos))

	if scanErr != nil {
		ui.log.Warning("some files skipped", "error", scanErr.Error())
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeySkippedFiles), scanErr), ui.window)
	}
	ui.rebuildList()
}

func (ui *RootUI) onTitleChanged(id, title string) {
	if v, ok := ui.batch.GetVideo(id); ok {
		v.SetTitle(title)
	}
}

func (ui *RootUI) onRemoveVideo(id string) {
	v, ok := ui.batch.GetVideo(id)
	if !ok {
		return
	}
	if ui.isRunning() && !v.Status.IsFinished() {
		return
	}
	ui.batch.RemoveVideo(id)
	delete(ui.rows, id)
	ui.rebuildList()
}

func (ui *RootUI) onClear() {
	if ui.isRunning() {
		return
	}
	ui.batch = model.NewBatch()
	ui.rows = make(map[string]*VideoRow)
	ui.rebuildList()
}

func (ui *RootUI) rebuildList() {
	objects := make([]fyne.CanvasObject, 0, len(ui.batch.Videos))
	for _, v := range ui.batch.Videos {
		if row, ok := ui.rows[v.ID]; ok {
			objects = append(objects, row)
		}
	}
	if len(objects) == 0 {
		objects = append(objects, ui.emptyLabel)
	}
	ui.listBox.Objects = objects
	ui.listBox.Refresh()
	ui.updateOverall()
}

func (ui *RootUI) isRunning() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.active != nil
}

func (ui *RootUI) onUploadAll() {
	l := ui.localization

	if ui.isRunning() {
		return
	}
	if !ui.CheckLicense() {
		return
	}
	auth := strings.TrimSpace(ui.authEntry.Text)
	if auth == "" {
		dialog.ShowInformation(l.GetText(KeyAppTitle), l.GetText(KeyMissingAuth), ui.window)
		return
	}
	if ui.settings.GetCDNDomain() == "" {
		dialog.ShowInformation(l.GetText(KeyAppTitle), l.GetText(KeyMissingDomain), ui.window)
		return
	}

	pending := ui.batch.GetPendingVideos()
	if len(pending) == 0 {
		dialog.ShowInformation(l.GetText(KeyAppTitle), l.GetText(KeyNothingToUpload), ui.window)
		return
	}
	files := make([]model.VideoFile, len(pending))
	for i, v := range pending {
		files[i] = *v
	}

	p, release, err := ui.newPipeline(context.Background())
	if err != nil {
		ui.log.Error("could not prepare upload", "error", err.Error())
		dialog.ShowError(err, ui.window)
		return
	}
	p.SetUpdateCallback(ui.onVideoUpdate)

	ui.mu.Lock()
	ui.active = p
	ui.mu.Unlock()
	ui.batch.UpdateStatus(model.BatchStatusUploading)
	ui.updateOverall()

	go ui.runBatch(p, release, auth, files)
}

// runBatch runs on its own goroutine until the pipeline returns
func (ui *RootUI) runBatch(p *pipeline.Pipeline, release func(), auth string, files []model.VideoFile) {
	defer release()

	_, summary, err := p.Run(context.Background(), auth, files)

	fyne.Do(func() {
		ui.mu.Lock()
		ui.active = nil
		ui.mu.Unlock()

		l := ui.localization
		switch {
		case errors.Is(err, pipeline.ErrNotLicensed):
			ui.batch.UpdateStatus(model.BatchStatusReady)
			ui.showLicense(true)
		case err != nil:
			ui.batch.UpdateStatus(model.BatchStatusReady)
			dialog.ShowError(fmt.Errorf("%s: %w", l.GetText(KeyBatchFailed), err), ui.window)
		default:
			msg := fmt.Sprintf(l.GetText(KeyBatchFinished), summary.Completed, summary.Failed, summary.Cancelled)
			dialog.ShowInformation(l.GetText(KeyAppTitle), msg, ui.window)
		}
		ui.updateOverall()
	})
}

// onVideoUpdate receives pipeline snapshots on worker goroutines
func (ui *RootUI) onVideoUpdate(v model.VideoFile) {
	fyne.Do(func() {
		if !ui.batch.Apply(v) {
			return
		}
		if row, ok := ui.rows[v.ID]; ok {
			row.Update(v)
		}
		ui.updateOverall()
	})
}

func (ui *RootUI) onCancelAll() {
	ui.mu.Lock()
	p := ui.active
	ui.mu.Unlock()
	if p != nil {
		p.Cancel()
	}
}

func (ui *RootUI) updateOverall() {
	b := ui.batch
	ui.overallBar.SetValue(b.GetUploadProgress())
	ui.overallLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyOverallProgress), b.Uploaded, b.TotalVideos))

	running := ui.isRunning()
	if running {
		ui.uploadBtn.Disable()
		ui.cancelBtn.Enable()
		ui.addFolderBtn.Disable()
		ui.addFileBtn.Disable()
		ui.clearBtn.Disable()
	} else {
		ui.cancelBtn.Disable()
		ui.addFolderBtn.Enable()
		ui.addFileBtn.Enable()
		ui.clearBtn.Enable()
		if b.IsReadyForUpload() {
			ui.uploadBtn.Enable()
		} else {
			ui.uploadBtn.Disable()
		}
	}
}
