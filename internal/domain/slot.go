package domain

import "time"

// BookedSlot represents another customer's confirmed reservation.
// Read-only for this service, used only for conflict exclusion.
type BookedSlot struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	TimeRange string `json:"time_range"` // канонический диапазон, например "2:00 PM - 3:00 PM"
}

// slotEntry пара "лейбл слота" -> "канонический диапазон"
type slotEntry struct {
	Label string
	Range string
}

// slotTable фиксированная таблица из 4 часовых слотов
// Лейбл показывается пользователю, диапазон — формат внешнего API
var slotTable = []slotEntry{
	{Label: "10:00 AM", Range: "10:00 AM - 11:00 AM"},
	{Label: "12:00 PM", Range: "12:00 PM - 1:00 PM"},
	{Label: "2:00 PM", Range: "2:00 PM - 3:00 PM"},
	{Label: "3:00 PM", Range: "3:00 PM - 4:00 PM"},
}

// SlotLabels возвращает лейблы всех слотов в фиксированном порядке
func SlotLabels() []string {
	labels := make([]string, len(slotTable))
	for i, e := range slotTable {
		labels[i] = e.Label
	}
	return labels
}

// SlotRanges возвращает канонические диапазоны всех слотов в фиксированном порядке
func SlotRanges() []string {
	ranges := make([]string, len(slotTable))
	for i, e := range slotTable {
		ranges[i] = e.Range
	}
	return ranges
}

// SlotRange маппит лейбл слота в канонический диапазон
// Второе значение false, если лейбл не из таблицы
func SlotRange(label string) (string, bool) {
	for _, e := range slotTable {
		if e.Label == label {
			return e.Range, true
		}
	}
	return "", false
}

// SlotLabel обратный маппинг: канонический диапазон -> лейбл
func SlotLabel(timeRange string) (string, bool) {
	for _, e := range slotTable {
		if e.Range == timeRange {
			return e.Label, true
		}
	}
	return "", false
}

// IsSlotFree проверяет, что слот не занят ни одним из переданных бронирований
// Чистая функция: сравнение даты и диапазона строковое, точное
func IsSlotFree(date, slotLabel string, booked []BookedSlot) bool {
	timeRange, ok := SlotRange(slotLabel)
	if !ok {
		return false
	}

	for _, b := range booked {
		if b.Date == date && b.TimeRange == timeRange {
			return false
		}
	}

	return true
}

// IsWeekend returns true for Saturday and Sunday
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBookableDate проверяет инвариант даты записи:
// только будний день и строго позже сегодняшнего
func IsBookableDate(date, now time.Time) bool {
	if IsWeekend(date) {
		return false
	}

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.After(nowOnly)
}
