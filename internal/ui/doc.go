// Package ui contains the Fyne desktop interface: the license gate, video
// selection, per-video rows with editable titles and progress, and settings.
// Pipeline callbacks arrive on worker goroutines and are marshalled onto the
// UI goroutine with fyne.Do.
package ui
