package booking

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether s is one of the persisted status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Type distinguishes app bookings from walk-in reservations entered by the
// turf owner. Offline bookings block a slot no matter what their status is.
type Type string

const (
	TypeOnline  Type = "ONLINE"
	TypeOffline Type = "OFFLINE"
)

// Valid reports whether t is one of the persisted booking types.
func (t Type) Valid() bool {
	return t == TypeOnline || t == TypeOffline
}

// Booking reserves a turf for a contiguous [StartTime, EndTime) interval on
// BookingDate. Dates are YYYY-MM-DD and times HH:MM; both are fixed-width
// strings so lexicographic comparison in SQL matches chronological order.
type Booking struct {
	gorm.Model
	UserID        uint    `gorm:"index;not null" json:"user_id"`
	TurfID        uint    `gorm:"index:idx_turf_date,priority:1;not null" json:"turf_id"`
	BookingDate   string  `gorm:"type:VARCHAR(10);index:idx_turf_date,priority:2;not null" json:"booking_date"`
	StartTime     string  `gorm:"type:VARCHAR(5);not null" json:"start_time"`
	EndTime       string  `gorm:"type:VARCHAR(5);not null" json:"end_time"`
	TotalAmount   float64 `json:"total_amount"`
	Status        Status  `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	BookingType   Type    `gorm:"type:VARCHAR(20);default:'ONLINE'" json:"booking_type"`
	FullName      string  `json:"full_name"`
	PhoneNumber   string  `json:"phone_number"`
	Email         string  `json:"email"`
	PaymentMethod string  `json:"payment_method"`
}

// BookingDetails is a booking joined with its user and turf for owner/admin
// listings.
type BookingDetails struct {
	Booking
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	UserEmail     string `json:"user_email"`
	TurfName      string `json:"turf_name"`
	TurfLocation  string `json:"turf_location"`
}

const (
	dateLayout = "2006-01-02"
)

// parseClock converts an HH:MM wall-clock string to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return h*60 + m, nil
}

// formatClock is the inverse of parseClock, clamped to the same day.
func formatClock(minutes int) string {
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CreateBookingRequest is the payload for a single online booking.
type CreateBookingRequest struct {
	TurfID        uint   `json:"turf_id" binding:"required"`
	BookingDate   string `json:"booking_date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	PaymentMethod string `json:"payment_method"`
}

// OfflineBookingRequest is the payload for an owner-entered walk-in booking.
type OfflineBookingRequest struct {
	TurfID    uint     `json:"turf_id" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	StartTime string   `json:"start_time" binding:"required"`
	EndTime   string   `json:"end_time" binding:"required"`
	Amount    *float64 `json:"amount"`
}

// MultiBookingRequest books several one-hour slots on one date in a single
// request, after the payment flow completed.
type MultiBookingRequest struct {
	TurfID        uint        `json:"turf_id" binding:"required"`
	BookingDate   string      `json:"booking_date" binding:"required"`
	Slots         []SlotStart `json:"slots" binding:"required,min=1,dive"`
	PaymentMethod string      `json:"payment_method"`
	FullName      string      `json:"full_name"`
	PhoneNumber   string      `json:"phone_number"`
	Email         string      `json:"email"`
}

type SlotStart struct {
	StartTime string `json:"start_time" binding:"required"`
}

// UpdateStatusRequest changes a booking's status.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}
