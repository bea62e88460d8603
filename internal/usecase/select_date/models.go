package select_date

import (
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// Request модель запроса на выбор даты консультации
type Request struct {
	Token string
	Date  time.Time
}

// Response результат выбора даты
// Stale == true означает, что за время запроса занятых слотов была выбрана
// другая дата и этот ответ отброшен: кэш черновика не тронут
type Response struct {
	Date               string // YYYY-MM-DD
	BookedSlots        []domain.BookedSlot
	AvailabilityStatus domain.AvailabilityStatus
	Stale              bool
}
