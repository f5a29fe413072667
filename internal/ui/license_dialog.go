package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/video-batch-uploader/internal/license"
)

// LicenseDialog shows the license state and accepts activation keys
type LicenseDialog struct {
	store        *license.Store
	window       fyne.Window
	localization *Localization
	onActivated  func()

	dialog       dialog.Dialog
	expiryLabel  *widget.Label
	messageLabel *widget.Label
	keyEntry     *widget.Entry
}

// NewLicenseDialog creates the dialog; onActivated runs after a successful activation
func NewLicenseDialog(store *license.Store, window fyne.Window, localization *Localization, onActivated func()) *LicenseDialog {
	return &LicenseDialog{
		store:        store,
		window:       window,
		localization: localization,
		onActivated:  onActivated,
	}
}

// Show displays the dialog. A required dialog has no dismiss button and
// only closes after a successful activation.
func (d *LicenseDialog) Show(required bool) {
	d.createUI(required)
	d.refreshExpiry()
	d.dialog.Show()
	d.window.Canvas().Focus(d.keyEntry)
}

func (d *LicenseDialog) createUI(required bool) {
	l := d.localization

	d.expiryLabel = widget.NewLabel("")
	d.messageLabel = widget.NewLabel("")
	d.messageLabel.Wrapping = fyne.TextWrapWord

	d.keyEntry = widget.NewMultiLineEntry()
	d.keyEntry.SetPlaceHolder(l.GetText(KeyLicenseKeyHint))
	d.keyEntry.SetMinRowsVisible(3)
	d.keyEntry.Wrapping = fyne.TextWrapBreak

	activateBtn := widget.NewButton(l.GetText(KeyActivate), d.onActivate)
	activateBtn.Importance = widget.HighImportance

	content := container.NewVBox(
		d.expiryLabel,
		d.keyEntry,
		activateBtn,
		d.messageLabel,
	)

	if required {
		d.messageLabel.SetText(l.GetText(KeyLicenseInvalid))
		d.messageLabel.Importance = widget.DangerImportance
		d.dialog = dialog.NewCustomWithoutButtons(l.GetText(KeyLicenseTitle), content, d.window)
	} else {
		d.dialog = dialog.NewCustom(l.GetText(KeyLicenseTitle), l.GetText(KeyCancel), content, d.window)
	}
	d.dialog.Resize(fyne.NewSize(DialogWidth, 0))
}

func (d *LicenseDialog) refreshExpiry() {
	rec := d.store.Read()
	if rec == nil {
		d.expiryLabel.SetText(fmt.Sprintf(d.localization.GetText(KeyLicenseExpires), DashPlaceholder))
		return
	}
	text := fmt.Sprintf(d.localization.GetText(KeyLicenseExpires), displayDate(rec.ExpirationDate))
	if rec.IsTrial {
		text += d.localization.GetText(KeyLicenseTrial)
	}
	d.expiryLabel.SetText(text)
}

func (d *LicenseDialog) onActivate() {
	res := d.store.Activate(d.keyEntry.Text)
	d.messageLabel.SetText(d.localization.ActivationText(res))
	d.refreshExpiry()

	if !res.Success {
		d.messageLabel.Importance = widget.DangerImportance
		d.messageLabel.Refresh()
		return
	}
	d.messageLabel.Importance = widget.SuccessImportance
	d.messageLabel.Refresh()
	d.dialog.Hide()
	dialog.ShowInformation(d.localization.GetText(KeyLicenseTitle), d.localization.GetText(KeyActivated), d.window)
	if d.onActivated != nil {
		d.onActivated()
	}
}

// displayDate renders a stored expiration as a local date, falling back to the raw text
func displayDate(s string) string {
	t, err := license.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Local().Format(license.DateLayout)
}
