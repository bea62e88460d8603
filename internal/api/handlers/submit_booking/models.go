package submit_booking

import (
	submitBooking "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/submit_booking"
)

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	AuthorizationURL string  `json:"authorizationUrl"`
	Amount           float64 `json:"amount"`
}

// SlotConflictResponse тело ответа 409 при занятом слоте
// bookedSlots — свежий список, чтобы клиент перерисовал выбор слота
type SlotConflictResponse struct {
	Error       string           `json:"error"`
	BookedSlots []BookedSlotView `json:"bookedSlots"`
}

// BookedSlotView занятый слот в ответе
type BookedSlotView struct {
	Date      string `json:"date"`
	TimeRange string `json:"timeRange"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		AuthorizationURL: resp.AuthorizationURL,
		Amount:           resp.Amount,
	}
}

// FromConflictError конвертирует конфликт слота в HTTP response
func FromConflictError(message string, cerr *submitBooking.ConflictError) *SlotConflictResponse {
	booked := make([]BookedSlotView, len(cerr.BookedSlots))
	for i, b := range cerr.BookedSlots {
		booked[i] = BookedSlotView{
			Date:      b.Date,
			TimeRange: b.TimeRange,
		}
	}

	return &SlotConflictResponse{
		Error:       message,
		BookedSlots: booked,
	}
}
