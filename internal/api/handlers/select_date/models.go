package select_date

import (
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
	selectDate "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/select_date"
)

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Date string `json:"date"` // "2026-09-14"
}

// BookedSlotView занятый слот в ответе
type BookedSlotView struct {
	Date      string `json:"date"`
	TimeRange string `json:"timeRange"`
}

// SelectDateResponse HTTP response model
// Stale == true означает, что пока ответ внешнего API был в пути,
// пользователь выбрал другую дату: этот результат отброшен
type SelectDateResponse struct {
	Date               string           `json:"date"`
	BookedSlots        []BookedSlotView `json:"bookedSlots"`
	AvailabilityStatus string           `json:"availabilityStatus,omitempty"`
	Stale              bool             `json:"stale,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectDateRequest) ToUseCaseRequest(token string) (*selectDate.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &selectDate.Request{
		Token: token,
		Date:  date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectDate.Response) *SelectDateResponse {
	booked := make([]BookedSlotView, len(resp.BookedSlots))
	for i, b := range resp.BookedSlots {
		booked[i] = BookedSlotView{
			Date:      b.Date,
			TimeRange: b.TimeRange,
		}
	}

	return &SelectDateResponse{
		Date:               resp.Date,
		BookedSlots:        booked,
		AvailabilityStatus: string(resp.AvailabilityStatus),
		Stale:              resp.Stale,
	}
}
