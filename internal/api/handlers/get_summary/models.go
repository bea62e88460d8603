package get_summary

import (
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// SummaryResponse HTTP response model
// Отдаётся ровно один раз: повторный запрос вернёт 404
type SummaryResponse struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Date      string  `json:"date"`
	TimeRange string  `json:"timeRange"`
	Channel   string  `json:"channel"`
	Amount    float64 `json:"amount"`
}

// FromDomainSummary конвертирует domain сводку в HTTP response
func FromDomainSummary(s *domain.BookingSummary) *SummaryResponse {
	return &SummaryResponse{
		Name:      s.Name,
		Email:     s.Email,
		Date:      s.Date,
		TimeRange: s.TimeRange,
		Channel:   s.Channel,
		Amount:    s.Amount,
	}
}
