package advance_step

import (
	"github.com/go-playground/validator/v10"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// Грубые сообщения шаговых баннеров
// На гейте между шагами пофилдовые ошибки не показываются, только одно сообщение
const (
	stepErrPersonalInfo = "Please fill in all required fields correctly"
	stepErrSkinProfile  = "Please select your skin type and at least one skin concern"
)

var validate = validator.New()

// personalGatePassed проверяет гейт первого шага:
// все поля заполнены и проходят пофилдовую валидацию
// (email по формату, телефон ровно 11 цифр)
func personalGatePassed(p *domain.PersonalInfo) bool {
	if !p.Complete() {
		return false
	}
	return validate.Struct(p) == nil
}

// skinGatePassed проверяет гейт второго шага:
// тип кожи выбран, проблем от 1 до 3 и все из фиксированного набора
func skinGatePassed(s *domain.SkinProfile) bool {
	if !s.Complete() {
		return false
	}
	if !s.SkinType.IsValid() {
		return false
	}
	if len(s.Concerns) > domain.MaxSkinConcerns {
		return false
	}
	for _, c := range s.Concerns {
		if !c.IsValid() {
			return false
		}
	}
	return true
}
