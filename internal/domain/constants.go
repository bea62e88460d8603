package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxSkinConcerns = 3
	MinSkinConcerns = 1
	PhoneDigitCount = 11
	MaxFreeTextLen  = 1000
)

// SkinType фиксированный набор типов кожи анкеты
type SkinType string

const (
	SkinTypeOily        SkinType = "oily"
	SkinTypeDry         SkinType = "dry"
	SkinTypeCombination SkinType = "combination"
	SkinTypeSensitive   SkinType = "sensitive"
	SkinTypeNormal      SkinType = "normal"
)

// SkinTypes список допустимых типов кожи
var SkinTypes = []SkinType{
	SkinTypeOily,
	SkinTypeDry,
	SkinTypeCombination,
	SkinTypeSensitive,
	SkinTypeNormal,
}

// IsValid returns true if the skin type is one of the fixed set
func (t SkinType) IsValid() bool {
	for _, known := range SkinTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SkinConcern фиксированный набор проблем кожи, в анкете выбирается от 1 до 3
type SkinConcern string

const (
	ConcernAcne              SkinConcern = "acne"
	ConcernHyperpigmentation SkinConcern = "hyperpigmentation"
	ConcernAging             SkinConcern = "aging"
	ConcernDryness           SkinConcern = "dryness"
	ConcernSensitivity       SkinConcern = "sensitivity"
	ConcernUnevenTexture     SkinConcern = "uneven-texture"
	ConcernDarkCircles       SkinConcern = "dark-circles"
)

// SkinConcerns список допустимых проблем кожи
var SkinConcerns = []SkinConcern{
	ConcernAcne,
	ConcernHyperpigmentation,
	ConcernAging,
	ConcernDryness,
	ConcernSensitivity,
	ConcernUnevenTexture,
	ConcernDarkCircles,
}

// IsValid returns true if the concern is one of the fixed set
func (c SkinConcern) IsValid() bool {
	for _, known := range SkinConcerns {
		if c == known {
			return true
		}
	}
	return false
}

// ConsultationFormat формат консультации, у каждого фиксированная цена
type ConsultationFormat string

const (
	FormatVideoCall ConsultationFormat = "video-call"
	FormatWhatsApp  ConsultationFormat = "whatsapp"
)

// formatPrices фиксированные цены форматов (NGN)
var formatPrices = map[ConsultationFormat]float64{
	FormatVideoCall: 15000.00,
	FormatWhatsApp:  10000.00,
}

// formatChannels токены каналов для внешнего API
var formatChannels = map[ConsultationFormat]string{
	FormatVideoCall: "video_call",
	FormatWhatsApp:  "whatsapp",
}

// IsValid returns true if the format is one of the fixed set
func (f ConsultationFormat) IsValid() bool {
	_, ok := formatPrices[f]
	return ok
}

// Price возвращает фиксированную цену формата
func (f ConsultationFormat) Price() float64 {
	return formatPrices[f]
}

// Channel возвращает токен канала для внешнего API
func (f ConsultationFormat) Channel() string {
	return formatChannels[f]
}
