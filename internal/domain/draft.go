package domain

import (
	"strings"
	"time"
)

// AvailabilityStatus состояние кэша занятых слотов для выбранной даты
type AvailabilityStatus string

const (
	AvailabilityNone    AvailabilityStatus = "none"    // дата не выбрана
	AvailabilityPending AvailabilityStatus = "pending" // запрос к внешнему API в пути
	AvailabilityReady   AvailabilityStatus = "ready"   // кэш заполнен, слоты можно выбирать
	AvailabilityFailed  AvailabilityStatus = "failed"  // запрос упал, выбор слота заблокирован
)

// PersonalInfo персональные данные первого шага анкеты
type PersonalInfo struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,len=11,number"`
	AgeRange  string `validate:"required"`
	Gender    string `validate:"required"`
}

// Complete returns true if every personal field is filled in
func (p *PersonalInfo) Complete() bool {
	return strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		strings.TrimSpace(p.Email) != "" &&
		strings.TrimSpace(p.Phone) != "" &&
		strings.TrimSpace(p.AgeRange) != "" &&
		strings.TrimSpace(p.Gender) != ""
}

// FullName returns first and last name joined with a single space
func (p *PersonalInfo) FullName() string {
	return strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName)
}

// SkinProfile данные второго шага анкеты
// Concerns хранится списком, в строку склеивается только на транспортной границе
type SkinProfile struct {
	SkinType          SkinType
	Concerns          []SkinConcern
	CurrentProducts   string // опционально
	AdditionalDetails string // опционально
}

// Complete returns true if the skin type is set and at least one concern is chosen
func (s *SkinProfile) Complete() bool {
	return s.SkinType != "" && len(s.Concerns) >= MinSkinConcerns
}

// HasConcern проверяет, выбрана ли проблема
func (s *SkinProfile) HasConcern(c SkinConcern) bool {
	for _, existing := range s.Concerns {
		if existing == c {
			return true
		}
	}
	return false
}

// AddConcern добавляет проблему кожи
// При достигнутом лимите в 3 или неизвестном значении — no-op, возвращает false
func (s *SkinProfile) AddConcern(c SkinConcern) bool {
	if !c.IsValid() {
		return false
	}
	if s.HasConcern(c) {
		return true
	}
	if len(s.Concerns) >= MaxSkinConcerns {
		return false
	}
	s.Concerns = append(s.Concerns, c)
	return true
}

// RemoveConcern снимает выбор проблемы, уже выбранные всегда можно снять
func (s *SkinProfile) RemoveConcern(c SkinConcern) {
	for i, existing := range s.Concerns {
		if existing == c {
			s.Concerns = append(s.Concerns[:i], s.Concerns[i+1:]...)
			return
		}
	}
}

// Schedule данные третьего шага анкеты
type Schedule struct {
	Date     *time.Time // только будний день, строго позже сегодняшнего
	TimeSlot string     // лейбл из фиксированной таблицы слотов, пустой = не выбран
	Format   ConsultationFormat
}

// Complete returns true if date, time slot and format are all chosen
func (s *Schedule) Complete() bool {
	return s.Date != nil && s.TimeSlot != "" && s.Format != ""
}

// DateString возвращает дату в формате YYYY-MM-DD, пустую строку если дата не выбрана
func (s *Schedule) DateString() string {
	if s.Date == nil {
		return ""
	}
	return s.Date.Format(DateFormat)
}

// Clear сбрасывает дату и выбранный слот
// Вызывается при выборе выходного дня: выходные не бронируются никогда
func (s *Schedule) Clear() {
	s.Date = nil
	s.TimeSlot = ""
}

// BookingDraft черновик анкеты, живёт от открытия мастера до сабмита или ухода со страницы
type BookingDraft struct {
	Token string
	State WizardState

	Personal    PersonalInfo
	Skin        SkinProfile
	Schedule    Schedule
	TermsAgreed bool

	// StepError грубая ошибка шага ("заполните обязательные поля"),
	// отличается от пофилдовых ошибок валидации
	StepError string

	// Кэш занятых слотов для Schedule.Date
	// Пишет его только контроллер: по завершении fetch или при ConflictError на сабмите
	BookedSlots        []BookedSlot
	AvailabilityStatus AvailabilityStatus
	AvailabilitySeq    int64 // номер последнего запроса занятых слотов, старые ответы отбрасываются

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true if the draft lifetime has passed
func (d *BookingDraft) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// SlotSelectable проверяет, можно ли сейчас выбирать временной слот
// При упавшем запросе занятых слотов выбор заблокирован до успешного повтора (fail-closed)
func (d *BookingDraft) SlotSelectable() bool {
	return d.Schedule.Date != nil && d.AvailabilityStatus == AvailabilityReady
}

// SubmitReady проверяет, что все четыре блока анкеты заполнены и согласие получено
// Свежесть слота проверяется отдельно повторным запросом занятых слотов
func (d *BookingDraft) SubmitReady() bool {
	return d.Personal.Complete() &&
		d.Skin.Complete() &&
		d.Schedule.Complete() &&
		d.TermsAgreed
}

// BookingSummary минимальная сводка брони для страницы успеха после оплаты
// Пишется перед редиректом на оплату, читается страницей успеха один раз
type BookingSummary struct {
	Token     string
	Name      string
	Email     string
	Date      string
	TimeRange string
	Channel   string
	Amount    float64
	CreatedAt time.Time
	ExpiresAt time.Time
}
