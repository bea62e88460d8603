package submit_booking

import (
	"errors"
	"fmt"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

var (
	ErrDraftNotFound           = errors.New("submit_booking: draft not found")
	ErrDraftExpired            = errors.New("submit_booking: draft expired")
	ErrAlreadySubmitted        = errors.New("submit_booking: draft already submitted")
	ErrWrongState              = errors.New("submit_booking: draft is not at the schedule step")
	ErrValidationFailed        = errors.New("submit_booking: draft failed validation")
	ErrSlotConflict            = errors.New("submit_booking: selected slot is already booked")
	ErrAvailabilityUnavailable = errors.New("submit_booking: failed to verify slot availability")
	ErrPaymentRejected         = errors.New("submit_booking: payment initiation rejected")
	ErrPaymentUnavailable      = errors.New("submit_booking: failed to reach payment initiation")
	ErrInternal                = errors.New("submit_booking: internal error")
)

// ValidationError ошибка локальной перепроверки анкеты перед сабмитом
// Fields содержит пофилдовые сообщения для отображения пользователю
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submit_booking: draft failed validation (%d fields)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ConflictError выбранный слот занят по свежим данным внешнего API
// BookedSlots — свежий список занятых слотов, чтобы пользователь выбрал другой
type ConflictError struct {
	BookedSlots []domain.BookedSlot
}

func (e *ConflictError) Error() string {
	return "submit_booking: selected slot is already booked"
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
