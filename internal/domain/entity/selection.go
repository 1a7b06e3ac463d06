package entity

// SelectionState is the derived progress of an in-flight booking
// selection.
type SelectionState string

const (
	SelectionStateIdle      SelectionState = "idle"
	SelectionStateSelecting SelectionState = "selecting"
	SelectionStateReady     SelectionState = "ready"
)

// BookingSelection is the transient doctor/date/time choice driving the
// booking wizard. It is only ever replaced through Reduce, which keeps
// the date-clears-time invariant in one place.
type BookingSelection struct {
	Doctor    *Doctor   `json:"doctor"`
	Date      string    `json:"date,omitempty"`
	Time      *SlotTime `json:"time,omitempty"`
	ModalOpen bool      `json:"modal_open"`
}

// SelectionAction is a transition applied to a BookingSelection.
type SelectionAction interface {
	isSelectionAction()
}

// OpenModal starts a fresh selection for a doctor and opens the modal.
type OpenModal struct {
	Doctor *Doctor
}

// SetDate picks a date. Any previously chosen time is discarded.
type SetDate struct {
	Date string
}

// SetTime picks a time of day. Ignored while no date is selected: there
// is no valid selection with a time but no date.
type SetTime struct {
	Time SlotTime
}

// CloseModal closes the modal but retains the selection values.
type CloseModal struct{}

// ResetSelection unconditionally returns the selection to idle.
type ResetSelection struct{}

func (OpenModal) isSelectionAction()      {}
func (SetDate) isSelectionAction()        {}
func (SetTime) isSelectionAction()        {}
func (CloseModal) isSelectionAction()     {}
func (ResetSelection) isSelectionAction() {}

// Reduce applies an action to a selection and returns the next
// selection. It never mutates its input.
func Reduce(sel BookingSelection, action SelectionAction) BookingSelection {
	switch a := action.(type) {
	case OpenModal:
		return BookingSelection{Doctor: a.Doctor, ModalOpen: true}
	case SetDate:
		sel.Date = a.Date
		sel.Time = nil
		return sel
	case SetTime:
		if sel.Date == "" {
			return sel
		}
		t := a.Time
		sel.Time = &t
		return sel
	case CloseModal:
		sel.ModalOpen = false
		return sel
	case ResetSelection:
		return BookingSelection{}
	}
	return sel
}

// State derives the machine state from the selection shape.
func (s BookingSelection) State() SelectionState {
	switch {
	case s.Doctor == nil:
		return SelectionStateIdle
	case s.Date != "" && s.Time != nil:
		return SelectionStateReady
	default:
		return SelectionStateSelecting
	}
}

// IsReady reports whether doctor, date and time are all set.
func (s BookingSelection) IsReady() bool {
	return s.State() == SelectionStateReady
}
