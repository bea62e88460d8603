package submit_booking

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

var validate = validator.New()

// Пофилдовые сообщения локальной перепроверки перед сабмитом
const (
	msgRequired       = "This field is required"
	msgInvalidEmail   = "Please enter a valid email address"
	msgInvalidPhone   = "Phone number must be exactly 11 digits"
	msgInvalidSkin    = "Please select a valid skin type"
	msgInvalidConcern = "Please select 1 to 3 skin concerns"
	msgInvalidDate    = "Please pick a weekday after today"
	msgInvalidSlot    = "Please pick an available time slot"
	msgInvalidFormat  = "Please choose a consultation format"
	msgTermsRequired  = "You must agree to the terms to continue"
)

// validateDraft перепроверяет всю анкету локально, без сетевых запросов
// Сабмит не доверяет состоянию мастера: каждое поле проверяется заново
func validateDraft(d *domain.BookingDraft, now time.Time) map[string]string {
	fields := map[string]string{}

	// Шаг 1: персональные данные
	if err := validate.Struct(&d.Personal); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[personalFieldName(fe.Field())] = personalFieldMessage(fe)
			}
		} else {
			fields["personal"] = msgRequired
		}
	}

	// Шаг 2: профиль кожи
	if !d.Skin.SkinType.IsValid() {
		fields["skin_type"] = msgInvalidSkin
	}
	if len(d.Skin.Concerns) < domain.MinSkinConcerns || len(d.Skin.Concerns) > domain.MaxSkinConcerns {
		fields["skin_concerns"] = msgInvalidConcern
	} else {
		for _, c := range d.Skin.Concerns {
			if !c.IsValid() {
				fields["skin_concerns"] = msgInvalidConcern
				break
			}
		}
	}

	// Шаг 3: расписание
	if d.Schedule.Date == nil || !domain.IsBookableDate(*d.Schedule.Date, now) {
		fields["date"] = msgInvalidDate
	}
	if _, ok := domain.SlotRange(d.Schedule.TimeSlot); !ok {
		fields["time_slot"] = msgInvalidSlot
	}
	if !d.Schedule.Format.IsValid() {
		fields["format"] = msgInvalidFormat
	}

	// Согласие с условиями
	if !d.TermsAgreed {
		fields["terms"] = msgTermsRequired
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func personalFieldName(structField string) string {
	switch structField {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "AgeRange":
		return "age_range"
	case "Gender":
		return "gender"
	default:
		return strings.ToLower(structField)
	}
}

func personalFieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Tag() == "required":
		return msgRequired
	case fe.Field() == "Email":
		return msgInvalidEmail
	case fe.Field() == "Phone":
		return msgInvalidPhone
	default:
		return msgRequired
	}
}
