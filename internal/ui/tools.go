package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/overlay"
)

// toolbar is the column of overlay controls pinned to the top right.
type toolbar struct {
	box     *fyne.Container
	layer   *fyne.Container
	buttons map[overlay.ControlID]*widget.Button
}

func newToolbar() *toolbar {
	box := container.NewVBox()
	// Leave room above the buttons like the page overlay does.
	gap := canvas.NewRectangle(color.Transparent)
	gap.SetMinSize(fyne.NewSize(63, 60))
	column := container.NewVBox(gap, box, layout.NewSpacer())
	return &toolbar{
		box:     box,
		layer:   container.NewBorder(nil, nil, nil, column),
		buttons: make(map[overlay.ControlID]*widget.Button),
	}
}

func (t *toolbar) mount(id overlay.ControlID, label string, onActivate func()) {
	if old, ok := t.buttons[id]; ok {
		t.box.Remove(old)
	}
	btn := widget.NewButton(label, onActivate)
	btn.Importance = widget.HighImportance
	t.buttons[id] = btn
	t.box.Add(btn)
}

func (t *toolbar) unmount(id overlay.ControlID) {
	if btn, ok := t.buttons[id]; ok {
		t.box.Remove(btn)
		delete(t.buttons, id)
	}
}

func (t *toolbar) button(id overlay.ControlID) *widget.Button {
	return t.buttons[id]
}
