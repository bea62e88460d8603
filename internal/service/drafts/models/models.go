package models

import (
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// Request модели

// UpdateStepRequest частичное обновление полей текущего шага мастера
// Указатель nil означает "поле не трогать"
type UpdateStepRequest struct {
	// Шаг 1: персональные данные
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AgeRange  *string `json:"ageRange,omitempty"`
	Gender    *string `json:"gender,omitempty"`

	// Шаг 2: профиль кожи
	SkinType          *string   `json:"skinType,omitempty"`
	SkinConcerns      *[]string `json:"skinConcerns,omitempty"`
	CurrentProducts   *string   `json:"currentProducts,omitempty"`
	AdditionalDetails *string   `json:"additionalDetails,omitempty"`

	// Шаг 3: расписание и согласие
	TimeSlot    *string `json:"timeSlot,omitempty"`
	Format      *string `json:"format,omitempty"`
	TermsAgreed *bool   `json:"termsAgreed,omitempty"`
}

// TouchesPersonal возвращает true, если запрос меняет поля первого шага
func (r *UpdateStepRequest) TouchesPersonal() bool {
	return r.FirstName != nil || r.LastName != nil || r.Email != nil ||
		r.Phone != nil || r.AgeRange != nil || r.Gender != nil
}

// TouchesSkin возвращает true, если запрос меняет поля второго шага
func (r *UpdateStepRequest) TouchesSkin() bool {
	return r.SkinType != nil || r.SkinConcerns != nil ||
		r.CurrentProducts != nil || r.AdditionalDetails != nil
}

// TouchesSchedule возвращает true, если запрос меняет поля третьего шага
func (r *UpdateStepRequest) TouchesSchedule() bool {
	return r.TimeSlot != nil || r.Format != nil || r.TermsAgreed != nil
}

// Response модели

// PersonalInfoView персональные данные в ответе
type PersonalInfoView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AgeRange  string `json:"ageRange"`
	Gender    string `json:"gender"`
}

// SkinProfileView профиль кожи в ответе
type SkinProfileView struct {
	SkinType          string   `json:"skinType"`
	SkinConcerns      []string `json:"skinConcerns"`
	CurrentProducts   string   `json:"currentProducts"`
	AdditionalDetails string   `json:"additionalDetails"`
}

// SlotView слот в ответе: лейбл, канонический диапазон и доступность
// Available всегда false, пока свежий список занятых слотов не получен
type SlotView struct {
	Label     string `json:"label"`
	TimeRange string `json:"timeRange"`
	Available bool   `json:"available"`
}

// ScheduleView расписание в ответе
type ScheduleView struct {
	Date     string     `json:"date"` // YYYY-MM-DD, пустая строка если не выбрана
	TimeSlot string     `json:"timeSlot"`
	Format   string     `json:"format"`
	Price    float64    `json:"price"` // цена выбранного формата, 0 если формат не выбран
	Slots    []SlotView `json:"slots"`
}

// DraftResponse полное состояние черновика для рендеринга мастера
type DraftResponse struct {
	Token              string           `json:"token"`
	State              string           `json:"state"`
	StepOrdinal        int              `json:"stepOrdinal"`
	Personal           PersonalInfoView `json:"personal"`
	Skin               SkinProfileView  `json:"skin"`
	Schedule           ScheduleView     `json:"schedule"`
	TermsAgreed        bool             `json:"termsAgreed"`
	StepError          string           `json:"stepError,omitempty"`
	AvailabilityStatus string           `json:"availabilityStatus"`
	ExpiresAt          time.Time        `json:"expiresAt"`
}

// FromDomainDraft конвертирует domain черновик в response
func FromDomainDraft(d *domain.BookingDraft) *DraftResponse {
	concerns := make([]string, len(d.Skin.Concerns))
	for i, c := range d.Skin.Concerns {
		concerns[i] = string(c)
	}

	dateStr := d.Schedule.DateString()

	labels := domain.SlotLabels()
	slots := make([]SlotView, len(labels))
	for i, label := range labels {
		timeRange, _ := domain.SlotRange(label)
		slots[i] = SlotView{
			Label:     label,
			TimeRange: timeRange,
			// Fail-closed: без свежего списка занятых слотов ничего не доступно
			Available: d.SlotSelectable() && domain.IsSlotFree(dateStr, label, d.BookedSlots),
		}
	}

	var price float64
	if d.Schedule.Format.IsValid() {
		price = d.Schedule.Format.Price()
	}

	return &DraftResponse{
		Token:       d.Token,
		State:       string(d.State),
		StepOrdinal: d.State.Ordinal(),
		Personal: PersonalInfoView{
			FirstName: d.Personal.FirstName,
			LastName:  d.Personal.LastName,
			Email:     d.Personal.Email,
			Phone:     d.Personal.Phone,
			AgeRange:  d.Personal.AgeRange,
			Gender:    d.Personal.Gender,
		},
		Skin: SkinProfileView{
			SkinType:          string(d.Skin.SkinType),
			SkinConcerns:      concerns,
			CurrentProducts:   d.Skin.CurrentProducts,
			AdditionalDetails: d.Skin.AdditionalDetails,
		},
		Schedule: ScheduleView{
			Date:     dateStr,
			TimeSlot: d.Schedule.TimeSlot,
			Format:   string(d.Schedule.Format),
			Price:    price,
			Slots:    slots,
		},
		TermsAgreed:        d.TermsAgreed,
		StepError:          d.StepError,
		AvailabilityStatus: string(d.AvailabilityStatus),
		ExpiresAt:          d.ExpiresAt,
	}
}
