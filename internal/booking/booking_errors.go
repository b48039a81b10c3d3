package booking

import "errors"

// Engine failures, mapped to HTTP statuses by the controller.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTurfNotFound    = errors.New("turf not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTurfInactive means the turf exists but has not been approved.
	ErrTurfInactive = errors.New("turf is not available for booking")

	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime     = errors.New("invalid time, expected HH:MM")
	ErrPastDate        = errors.New("booking date cannot be in the past")
	ErrPastSlot        = errors.New("you cannot book past time slots, please select an upcoming time slot")
	ErrInvalidInterval = errors.New("end time must be after start time")

	// ErrSlotTaken means the requested interval overlaps a blocking booking.
	ErrSlotTaken = errors.New("time slot is not available")

	ErrNotOwner      = errors.New("turf does not belong to this owner")
	ErrNotOffline    = errors.New("booking is not an offline booking")
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrCancelCompleted guards the one forbidden transition.
	ErrCancelCompleted = errors.New("cannot cancel completed booking")
)
