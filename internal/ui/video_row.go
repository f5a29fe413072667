package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/video-batch-uploader/internal/model"
)

// VideoRow shows one selected video with an editable title
type VideoRow struct {
	widget.BaseWidget

	video        model.VideoFile
	localization *Localization

	titleEntry   *widget.Entry
	nameLabel    *widget.Label
	sizeLabel    *widget.Label
	statusLabel  *widget.Label
	percentLabel *widget.Label
	progressBar  *widget.ProgressBar
	removeBtn    *widget.Button
	previewBtn   *widget.Button
	errorLabel   *widget.Label

	onTitleChanged func(id, title string)
	onRemove       func(id string)
	onPreview      func(id string)
}

// NewVideoRow creates a row for video
func NewVideoRow(video model.VideoFile, localization *Localization) *VideoRow {
	r := &VideoRow{
		video:        video,
		localization: localization,
	}
	r.ExtendBaseWidget(r)
	r.createUI()
	r.updateFromVideo()
	return r
}

// SetCallbacks sets the row actions
func (r *VideoRow) SetCallbacks(onTitleChanged func(id, title string), onRemove func(id string)) {
	r.onTitleChanged = onTitleChanged
	r.onRemove = onRemove
}

// SetPreview sets the action opening the video in a player
func (r *VideoRow) SetPreview(onPreview func(id string)) {
	r.onPreview = onPreview
}

// Update replaces the displayed state. The title entry keeps user edits.
func (r *VideoRow) Update(video model.VideoFile) {
	video.CleanedName = r.video.CleanedName
	r.video = video
	r.updateFromVideo()
	r.Refresh()
}

func (r *VideoRow) createUI() {
	r.titleEntry = widget.NewEntry()
	r.titleEntry.SetPlaceHolder(r.localization.GetText(KeyTitleHint))
	r.titleEntry.SetText(r.video.CleanedName)
	r.titleEntry.OnChanged = func(text string) {
		r.video.SetTitle(text)
		if r.onTitleChanged != nil {
			r.onTitleChanged(r.video.ID, r.video.CleanedName)
		}
	}

	r.nameLabel = widget.NewLabel("")
	r.nameLabel.Truncation = fyne.TextTruncateEllipsis
	r.nameLabel.Importance = widget.LowImportance

	r.sizeLabel = widget.NewLabel("")
	r.sizeLabel.Alignment = fyne.TextAlignTrailing
	r.statusLabel = widget.NewLabel("")
	r.percentLabel = widget.NewLabel("")
	r.percentLabel.Alignment = fyne.TextAlignTrailing
	r.progressBar = widget.NewProgressBar()
	r.progressBar.Max = 100
	r.progressBar.TextFormatter = func() string { return "" }

	r.errorLabel = widget.NewLabel("")
	r.errorLabel.Importance = widget.DangerImportance
	r.errorLabel.Wrapping = fyne.TextWrapWord
	r.errorLabel.Hide()

	r.removeBtn = widget.NewButton(IconClose, func() {
		if r.onRemove != nil {
			r.onRemove(r.video.ID)
		}
	})
	r.removeBtn.Importance = widget.LowImportance

	r.previewBtn = widget.NewButton(IconPlay, func() {
		if r.onPreview != nil {
			r.onPreview(r.video.ID)
		}
	})
	r.previewBtn.Importance = widget.LowImportance
}

func (r *VideoRow) updateFromVideo() {
	v := r.video

	r.nameLabel.SetText(v.OriginalName)
	r.sizeLabel.SetText(formatFileSize(v.Size))

	status := r.localization.StatusText(v.Status)
	switch v.Status {
	case model.VideoStatusError:
		r.statusLabel.Importance = widget.DangerImportance
		status = IconError + " " + status
	case model.VideoStatusCompleted:
		r.statusLabel.Importance = widget.SuccessImportance
		status = IconDone + " " + status
	case model.VideoStatusUploading:
		r.statusLabel.Importance = widget.HighImportance
		if v.ETA != "" && v.ETA != DashPlaceholder {
			status += MiddleDotSeparator + v.ETA
		}
	case model.VideoStatusProcessing, model.VideoStatusSubmitting:
		r.statusLabel.Importance = widget.HighImportance
	default:
		r.statusLabel.Importance = widget.MediumImportance
	}
	r.statusLabel.SetText(status)

	percent := min(max(int(v.Progress), 0), 100)
	r.progressBar.SetValue(float64(percent))
	if v.Status == model.VideoStatusPending {
		r.percentLabel.SetText(DashPlaceholder)
	} else {
		r.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
	}

	if v.Error != "" {
		r.errorLabel.SetText(v.Error)
		r.errorLabel.Show()
	} else {
		r.errorLabel.Hide()
	}

	// titles are frozen while the video is in the pipeline
	busy := !v.Status.IsFinished() && v.Status != model.VideoStatusPending
	if busy {
		r.titleEntry.Disable()
		r.removeBtn.Disable()
	} else {
		r.titleEntry.Enable()
		r.removeBtn.Enable()
	}
}

// CreateRenderer implements fyne.Widget
func (r *VideoRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(SizeLabelWidth, r.sizeLabel),
		fixedWidth(StatusLabelWidth, r.statusLabel),
		fixedWidth(ProgressBarWidth, container.NewVBox(layoutSpacer(), r.progressBar)),
		fixedWidth(PercentLabelWidth, r.percentLabel),
		r.previewBtn,
		r.removeBtn,
	)
	top := container.NewBorder(nil, nil, nil, info, r.titleEntry)
	content := container.NewVBox(top, r.nameLabel, r.errorLabel, widget.NewSeparator())
	return widget.NewSimpleRenderer(content)
}

func layoutSpacer() fyne.CanvasObject {
	s := canvas.NewRectangle(color.Transparent)
	s.SetMinSize(fyne.NewSize(0, 4))
	return s
}
