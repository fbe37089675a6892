package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/editaudio/internal/processor"
)

// ClipList is a custom widget showing the clips selected on a card
type ClipList struct {
	widget.BaseWidget

	container   *fyne.Container
	rows        *fyne.Container
	statusLabel *widget.Label

	clips []processor.Clip
}

// NewClipList creates an empty clip list
func NewClipList() *ClipList {
	l := &ClipList{}

	l.rows = container.NewVBox()
	l.statusLabel = widget.NewLabel("No card previewed")

	l.container = container.NewBorder(nil, l.statusLabel, nil, nil, l.rows)

	l.ExtendBaseWidget(l)
	return l
}

// CreateRenderer implements fyne.Widget
func (l *ClipList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.container)
}

// SetClips replaces the shown clips
func (l *ClipList) SetClips(clips []processor.Clip) {
	l.clips = clips
	l.rows.RemoveAll()

	missing := 0
	for i, clip := range clips {
		text := fmt.Sprintf("%d. %s", i+1, clip.Name)
		if !clip.Tags.Empty() {
			text += "  " + clip.Tags.String()
		}

		row := widget.NewLabel(text)
		if clip.Missing {
			row.SetText(text + "  (missing)")
			row.Importance = widget.WarningImportance
			missing++
		}
		l.rows.Add(row)
	}

	switch {
	case len(clips) == 0:
		l.statusLabel.SetText("No audio selected")
	case missing > 0:
		l.statusLabel.SetText(fmt.Sprintf("%d clip(s), %d missing: nothing will be opened", len(clips), missing))
	default:
		l.statusLabel.SetText(fmt.Sprintf("%d clip(s)", len(clips)))
	}
	l.Refresh()
}

// Clips returns the shown clips
func (l *ClipList) Clips() []processor.Clip {
	return l.clips
}

// Status returns the summary line below the clips
func (l *ClipList) Status() string {
	return l.statusLabel.Text
}
