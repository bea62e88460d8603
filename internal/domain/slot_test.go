package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotTableRoundTrip(t *testing.T) {
	t.Run("Label To Range And Back", func(t *testing.T) {
		for _, label := range SlotLabels() {
			timeRange, ok := SlotRange(label)
			require.True(t, ok, "label %q must map to a range", label)

			back, ok := SlotLabel(timeRange)
			require.True(t, ok, "range %q must map back to a label", timeRange)
			assert.Equal(t, label, back)
		}
	})

	t.Run("Known Mapping", func(t *testing.T) {
		timeRange, ok := SlotRange("2:00 PM")
		require.True(t, ok)
		assert.Equal(t, "2:00 PM - 3:00 PM", timeRange)
	})

	t.Run("Ranges Are Unique", func(t *testing.T) {
		seen := make(map[string]string)
		for _, label := range SlotLabels() {
			timeRange, _ := SlotRange(label)
			prev, dup := seen[timeRange]
			assert.False(t, dup, "range %q mapped from both %q and %q", timeRange, prev, label)
			seen[timeRange] = label
		}
	})

	t.Run("Unknown Label", func(t *testing.T) {
		_, ok := SlotRange("1:00 PM")
		assert.False(t, ok)

		_, ok = SlotLabel("1:00 PM - 2:00 PM")
		assert.False(t, ok)
	})
}

func TestIsSlotFree(t *testing.T) {
	booked := []BookedSlot{
		{Date: "2026-09-07", TimeRange: "2:00 PM - 3:00 PM"},
		{Date: "2026-09-08", TimeRange: "3:00 PM - 4:00 PM"},
	}

	t.Run("Occupied Slot", func(t *testing.T) {
		assert.False(t, IsSlotFree("2026-09-07", "2:00 PM", booked))
	})

	t.Run("Free Slot Same Date", func(t *testing.T) {
		assert.True(t, IsSlotFree("2026-09-07", "3:00 PM", booked))
	})

	t.Run("Same Slot Different Date", func(t *testing.T) {
		assert.True(t, IsSlotFree("2026-09-09", "2:00 PM", booked))
	})

	t.Run("Unknown Label Is Never Free", func(t *testing.T) {
		assert.False(t, IsSlotFree("2026-09-07", "7:00 PM", booked))
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := IsSlotFree("2026-09-07", "2:00 PM", booked)
		second := IsSlotFree("2026-09-07", "2:00 PM", booked)
		assert.Equal(t, first, second, "pure function, same args same result")
	})

	t.Run("Empty Booked List", func(t *testing.T) {
		assert.True(t, IsSlotFree("2026-09-07", "10:00 AM", nil))
	})
}

func TestIsBookableDate(t *testing.T) {
	// 2026-09-02 — среда
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	t.Run("Weekend Rejected", func(t *testing.T) {
		saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
		sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
		assert.False(t, IsBookableDate(saturday, now))
		assert.False(t, IsBookableDate(sunday, now))
	})

	t.Run("Today Rejected", func(t *testing.T) {
		today := time.Date(2026, 9, 2, 23, 0, 0, 0, time.UTC)
		assert.False(t, IsBookableDate(today, now), "date must be strictly future")
	})

	t.Run("Past Rejected", func(t *testing.T) {
		yesterday := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		assert.False(t, IsBookableDate(yesterday, now))
	})

	t.Run("Next Weekday Accepted", func(t *testing.T) {
		tomorrow := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
		assert.True(t, IsBookableDate(tomorrow, now))
	})

	t.Run("Next Monday Accepted", func(t *testing.T) {
		monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		assert.True(t, IsBookableDate(monday, now))
	})
}
