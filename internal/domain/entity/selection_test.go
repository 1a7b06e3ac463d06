package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_OpenModalStartsFresh(t *testing.T) {
	doc := &Doctor{ID: "1", Name: "Dr. Sarah Mitchell"}

	// Open on top of a dirty selection must discard date and time.
	dirty := BookingSelection{
		Doctor: &Doctor{ID: "9"},
		Date:   "2025-01-10",
		Time:   &SlotTime{Time: "09:00"},
	}

	sel := Reduce(dirty, OpenModal{Doctor: doc})

	assert.Equal(t, doc, sel.Doctor)
	assert.Empty(t, sel.Date)
	assert.Nil(t, sel.Time)
	assert.True(t, sel.ModalOpen)
	assert.Equal(t, SelectionStateSelecting, sel.State())
}

func TestReduce_SetDateClearsTime(t *testing.T) {
	sel := BookingSelection{
		Doctor: &Doctor{ID: "1"},
		Date:   "2025-01-10",
		Time:   &SlotTime{Time: "09:00", SlotID: "5"},
	}

	sel = Reduce(sel, SetDate{Date: "2025-01-11"})

	assert.Equal(t, "2025-01-11", sel.Date)
	assert.Nil(t, sel.Time, "choosing a date must always clear the time")
	assert.Equal(t, SelectionStateSelecting, sel.State())
}

func TestReduce_SetTimeWithoutDateIsNoOp(t *testing.T) {
	sel := BookingSelection{Doctor: &Doctor{ID: "1"}}

	next := Reduce(sel, SetTime{Time: SlotTime{Time: "09:00"}})

	assert.Nil(t, next.Time)
	assert.Equal(t, sel, next)
}

func TestReduce_SetTimeAfterDateReachesReady(t *testing.T) {
	sel := BookingSelection{Doctor: &Doctor{ID: "1"}, ModalOpen: true}

	sel = Reduce(sel, SetDate{Date: "2025-01-10"})
	sel = Reduce(sel, SetTime{Time: SlotTime{Time: "09:00", SlotID: "5"}})

	require.NotNil(t, sel.Time)
	assert.Equal(t, "09:00", sel.Time.Time)
	assert.Equal(t, SelectionStateReady, sel.State())
	assert.True(t, sel.IsReady())
}

func TestReduce_CloseModalRetainsSelection(t *testing.T) {
	sel := BookingSelection{
		Doctor:    &Doctor{ID: "1"},
		Date:      "2025-01-10",
		Time:      &SlotTime{Time: "09:00"},
		ModalOpen: true,
	}

	sel = Reduce(sel, CloseModal{})

	assert.False(t, sel.ModalOpen)
	assert.Equal(t, "2025-01-10", sel.Date)
	assert.NotNil(t, sel.Time)
}

func TestReduce_OpenThenResetRoundTrip(t *testing.T) {
	sel := Reduce(BookingSelection{}, OpenModal{Doctor: &Doctor{ID: "1"}})
	sel = Reduce(sel, SetDate{Date: "2025-01-10"})
	sel = Reduce(sel, ResetSelection{})

	assert.Equal(t, BookingSelection{}, sel)
	assert.Equal(t, SelectionStateIdle, sel.State())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	original := BookingSelection{
		Doctor: &Doctor{ID: "1"},
		Date:   "2025-01-10",
		Time:   &SlotTime{Time: "09:00"},
	}
	copied := original

	_ = Reduce(original, SetDate{Date: "2025-02-01"})

	assert.Equal(t, copied, original)
}

func TestSlotTime_IsPlaceholder(t *testing.T) {
	assert.True(t, SlotTime{Time: "09:00"}.IsPlaceholder())
	assert.True(t, SlotTime{Time: "09:00", SlotID: "mock_1736463600_3"}.IsPlaceholder())
	assert.False(t, SlotTime{Time: "09:00", SlotID: "42"}.IsPlaceholder())
}
