package utils

import (
	"errors"
	"time"
)

// BookingDateLayout is the wire format for booking timestamps: minute
// precision, no seconds, no zone.
const BookingDateLayout = "2006-01-02T15:04"

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DDTHH:MM")

// ParseBookingDate parses YYYY-MM-DDTHH:MM; a bare YYYY-MM-DD is accepted
// and normalized to midnight.
func ParseBookingDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(BookingDateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
