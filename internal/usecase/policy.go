package usecase

import (
	"fmt"
	"time"

	"lesson-booking/pkg/timeslot"
	"lesson-booking/pkg/utils"
)

// BookingPolicy is the scheduling policy shared by the booking and schedule
// services: lead time, advance window, business hours and slot geometry.
type BookingPolicy struct {
	MinNotice       time.Duration
	MaxAdvance      time.Duration
	Hours           timeslot.BusinessHours
	SlotInterval    time.Duration
	LessonDuration  time.Duration
	PaymentRequired bool
	Location        *time.Location
}

func NewBookingPolicy(cfg utils.BookingConfig) (BookingPolicy, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return BookingPolicy{}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return BookingPolicy{
		MinNotice:  time.Duration(cfg.MinNoticeHours) * time.Hour,
		MaxAdvance: time.Duration(cfg.MaxAdvanceDays) * 24 * time.Hour,
		Hours: timeslot.BusinessHours{
			OpenHour:  cfg.BusinessHoursStart,
			CloseHour: cfg.BusinessHoursEnd,
			Location:  loc,
		},
		SlotInterval:    time.Duration(cfg.SlotIntervalMinutes) * time.Minute,
		LessonDuration:  time.Duration(cfg.LessonDurationMinutes) * time.Minute,
		PaymentRequired: cfg.PaymentRequired,
		Location:        loc,
	}, nil
}

// ValidateWindow runs every timing rule against a proposed [start, end)
// window. All checks happen before any mutation.
func (p BookingPolicy) ValidateWindow(start, end, now time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}
	if start.Sub(now) < p.MinNotice {
		return ErrInsufficientNotice
	}
	if start.Sub(now) > p.MaxAdvance {
		return ErrTooFarInAdvance
	}
	if !p.Hours.Contains(start) {
		return ErrOutsideBusinessHours
	}
	return nil
}
