package submit_booking

import "time"

// Config параметры сабмита
type Config struct {
	// APIToken токен авторизации внешнего API консультаций
	APIToken string
	// PublicBaseURL публичный адрес сайта для success-редиректа после оплаты
	PublicBaseURL string
	// SuccessPath путь страницы успеха относительно PublicBaseURL
	SuccessPath string
	// SummaryTTL срок жизни сводки брони
	SummaryTTL time.Duration
}

// Request запрос на сабмит анкеты
type Request struct {
	Token string
}

// Response результат успешного сабмита
type Response struct {
	// AuthorizationURL адрес платёжной страницы для редиректа
	AuthorizationURL string
	// Amount сумма к оплате, рассчитанная внешним API
	Amount float64
}
