package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSkinProfileConcernCap(t *testing.T) {
	t.Run("Add Up To Three", func(t *testing.T) {
		var p SkinProfile
		assert.True(t, p.AddConcern(ConcernAcne))
		assert.True(t, p.AddConcern(ConcernAging))
		assert.True(t, p.AddConcern(ConcernDryness))
		assert.Len(t, p.Concerns, 3)
	})

	t.Run("Fourth Is NoOp", func(t *testing.T) {
		p := SkinProfile{Concerns: []SkinConcern{ConcernAcne, ConcernAging, ConcernDryness}}
		ok := p.AddConcern(ConcernSensitivity)
		assert.False(t, ok)
		assert.Len(t, p.Concerns, 3, "model must not grow past the cap")
	})

	t.Run("Duplicate Add Keeps Length", func(t *testing.T) {
		p := SkinProfile{Concerns: []SkinConcern{ConcernAcne}}
		ok := p.AddConcern(ConcernAcne)
		assert.True(t, ok)
		assert.Len(t, p.Concerns, 1)
	})

	t.Run("Checked Boxes Stay Togglable At Cap", func(t *testing.T) {
		p := SkinProfile{Concerns: []SkinConcern{ConcernAcne, ConcernAging, ConcernDryness}}
		p.RemoveConcern(ConcernAging)
		assert.Len(t, p.Concerns, 2)
		assert.True(t, p.AddConcern(ConcernSensitivity), "frees a spot after removal")
	})

	t.Run("Unknown Concern Rejected", func(t *testing.T) {
		var p SkinProfile
		assert.False(t, p.AddConcern(SkinConcern("wrinkle-free")))
		assert.Empty(t, p.Concerns)
	})
}

func TestScheduleClear(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	s := Schedule{Date: &date, TimeSlot: "2:00 PM", Format: FormatWhatsApp}

	s.Clear()

	assert.Nil(t, s.Date)
	assert.Empty(t, s.TimeSlot, "clearing the date also clears the chosen slot")
	assert.Equal(t, FormatWhatsApp, s.Format, "format survives a date reset")
}

func TestDraftSubmitReady(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	complete := func() *BookingDraft {
		return &BookingDraft{
			State: StateSchedule,
			Personal: PersonalInfo{
				FirstName: "Ada",
				LastName:  "Obi",
				Email:     "ada@example.com",
				Phone:     "08012345678",
				AgeRange:  "25-34",
				Gender:    "female",
			},
			Skin: SkinProfile{
				SkinType: SkinTypeOily,
				Concerns: []SkinConcern{ConcernAcne},
			},
			Schedule: Schedule{
				Date:     &date,
				TimeSlot: "3:00 PM",
				Format:   FormatWhatsApp,
			},
			TermsAgreed: true,
		}
	}

	t.Run("All Blocks Valid", func(t *testing.T) {
		assert.True(t, complete().SubmitReady())
	})

	t.Run("Terms Not Agreed", func(t *testing.T) {
		d := complete()
		d.TermsAgreed = false
		assert.False(t, d.SubmitReady())
	})

	t.Run("Missing Slot", func(t *testing.T) {
		d := complete()
		d.Schedule.TimeSlot = ""
		assert.False(t, d.SubmitReady())
	})

	t.Run("Missing Concerns", func(t *testing.T) {
		d := complete()
		d.Skin.Concerns = nil
		assert.False(t, d.SubmitReady())
	})
}

func TestDraftSlotSelectable(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("Ready", func(t *testing.T) {
		d := BookingDraft{
			Schedule:           Schedule{Date: &date},
			AvailabilityStatus: AvailabilityReady,
		}
		assert.True(t, d.SlotSelectable())
	})

	t.Run("Fetch Failed Blocks Selection", func(t *testing.T) {
		d := BookingDraft{
			Schedule:           Schedule{Date: &date},
			AvailabilityStatus: AvailabilityFailed,
		}
		assert.False(t, d.SlotSelectable())
	})

	t.Run("Fetch Pending Blocks Selection", func(t *testing.T) {
		d := BookingDraft{
			Schedule:           Schedule{Date: &date},
			AvailabilityStatus: AvailabilityPending,
		}
		assert.False(t, d.SlotSelectable())
	})

	t.Run("No Date", func(t *testing.T) {
		d := BookingDraft{AvailabilityStatus: AvailabilityReady}
		assert.False(t, d.SlotSelectable())
	})
}
