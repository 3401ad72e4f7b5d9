package saver

const (
	BusyLabel   = "Downloading... (Please Wait)"
	BusyOpacity = 0.7
)

// An Affordance is the control that started a download, e.g. a button. It is put into a busy state for the duration
// of the download.
type Affordance interface {
	Label() string
	SetLabel(label string)
	Opacity() float64
	SetOpacity(opacity float64)
	Enabled() bool
	SetEnabled(enabled bool)
}

type affordanceState struct {
	label   string
	opacity float64
	enabled bool
}

func captureAffordance(a Affordance) affordanceState {
	return affordanceState{
		label:   a.Label(),
		opacity: a.Opacity(),
		enabled: a.Enabled(),
	}
}

func (s affordanceState) restore(a Affordance) {
	a.SetEnabled(s.enabled)
	a.SetOpacity(s.opacity)
	a.SetLabel(s.label)
}

func setBusy(a Affordance) {
	a.SetEnabled(false)
	a.SetLabel(BusyLabel)
	a.SetOpacity(BusyOpacity)
}
