package overlay

// Mode is the active tool. Exactly one mapping from input to drawing is
// active at a time.
type Mode int

const (
	ModePencil Mode = iota
	ModeOval
)

func (m Mode) String() string {
	switch m {
	case ModePencil:
		return "pencil"
	case ModeOval:
		return "oval"
	default:
		return "unknown"
	}
}

// ControlID names a toolbar control.
type ControlID string

const (
	ControlReset  ControlID = "reset"
	ControlOval   ControlID = "oval"
	ControlPencil ControlID = "pencil"
	ControlRedraw ControlID = "redraw"
)

// Controls lists the toolbar in display order.
var Controls = []ControlID{ControlReset, ControlOval, ControlPencil, ControlRedraw}

var controlLabels = map[ControlID]string{
	ControlReset:  "Reset",
	ControlOval:   "Oval",
	ControlPencil: "Pencil",
	ControlRedraw: "ReDraw",
}

// Label is the button text for a control.
func (id ControlID) Label() string {
	return controlLabels[id]
}
