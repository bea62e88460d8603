package consultationapi

import "github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"

// BookedTimesResponse ответ внешнего API на запрос занятых слотов
type BookedTimesResponse struct {
	Code        int                 `json:"code"`
	BookedTimes []domain.BookedSlot `json:"booked_times"`
}

// InitiateRequest параметры инициации консультации
// Отправляется form-urlencoded, skin_concerns склеивается в строку через запятую
// только здесь, на транспортной границе
type InitiateRequest struct {
	Name              string
	Email             string
	Phone             string
	AgeRange          string
	Gender            string
	SkinType          string
	SkinConcerns      string // comma-joined
	Channel           string
	Date              string // YYYY-MM-DD
	TimeRange         string // канонический диапазон слота
	SuccessRedirect   string
	CurrentProducts   string
	AdditionalDetails string
}

// InitiateResponse ответ внешнего API на инициацию
// При code == 200 заполнены authorization_url и amount_calculated,
// иначе message содержит причину отказа
type InitiateResponse struct {
	Code             int     `json:"code"`
	AuthorizationURL string  `json:"authorization_url"`
	AmountCalculated float64 `json:"amount_calculated"`
	Message          string  `json:"message"`
}
