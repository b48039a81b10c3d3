package booking

import (
	"time"

	"github.com/yagnamodi22/book-by-truf-backend/internal/turf"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
)

// TurfDirectory resolves turfs for availability and authorization checks.
type TurfDirectory interface {
	FindByID(id uint) (*turf.Turf, error)
}

// UserDirectory resolves user accounts.
type UserDirectory interface {
	FindByID(id uint) (*user.User, error)
	Count() (int64, error)
}

const lateNightEndHour = 3 // slots starting 00:00-02:59 get the late-night exception

// Offline bookings carry placeholder contact fields; the real customer is
// whoever walked in.
const (
	offlineFullName      = "Offline Booking"
	offlinePaymentMethod = "CASH"
)

// Service is the booking engine. It owns booking creation, status
// transitions and slot-availability queries; turf and user lookups go
// through the injected directories.
type Service struct {
	bookings BookingStore
	turfs    TurfDirectory
	users    UserDirectory
	now      func() time.Time
}

// NewService wires the booking engine to its collaborators.
func NewService(bookings BookingStore, turfs TurfDirectory, users UserDirectory) *Service {
	return &Service{
		bookings: bookings,
		turfs:    turfs,
		users:    users,
		now:      time.Now,
	}
}

// CreateBooking validates and persists a single online booking with status
// PENDING. The total amount is price-per-hour times the duration rounded up
// to whole hours.
func (s *Service) CreateBooking(userID, turfID uint, date, start, end, fullName, phone, email, paymentMethod string) (*Booking, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	t, err := s.turfs.FindByID(turfID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTurfNotFound
	}
	if !t.IsActive {
		return nil, ErrTurfInactive
	}

	startMin, err := parseClock(start)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endMin, err := parseClock(end)
	if err != nil {
		return nil, ErrInvalidTime
	}

	if err := s.checkNotInPast(date, startMin); err != nil {
		return nil, err
	}

	conflicts, err := s.bookings.FindConflicting(turfID, date, start, end)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrSlotTaken
	}

	if endMin <= startMin {
		return nil, ErrInvalidInterval
	}
	hours := ceilHours(endMin - startMin)

	b := &Booking{
		UserID:        userID,
		TurfID:        turfID,
		BookingDate:   date,
		StartTime:     start,
		EndTime:       end,
		TotalAmount:   t.PricePerHour * float64(hours),
		Status:        StatusPending,
		BookingType:   TypeOnline,
		FullName:      fullName,
		PhoneNumber:   phone,
		Email:         email,
		PaymentMethod: paymentMethod,
	}
	if err := s.bookings.CreateIfSlotFree(b, false); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateOfflineBooking records a walk-in reservation on behalf of the turf
// owner. It blocks and is blocked by every other booking regardless of
// status, and carries no past-date restriction so owners can reconcile
// historical walk-ins. When amount is nil the price is computed like an
// online booking.
func (s *Service) CreateOfflineBooking(ownerID, turfID uint, date, start, end string, amount *float64) (*Booking, error) {
	t, err := s.turfs.FindByID(turfID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTurfNotFound
	}
	if t.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	startMin, err := parseClock(start)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endMin, err := parseClock(end)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	conflicts, err := s.bookings.FindConflictingAny(turfID, date, start, end)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrSlotTaken
	}

	if endMin <= startMin {
		return nil, ErrInvalidInterval
	}

	total := 0.0
	if amount != nil && *amount > 0 {
		total = *amount
	} else {
		total = t.PricePerHour * float64(ceilHours(endMin-startMin))
	}

	b := &Booking{
		UserID:        ownerID,
		TurfID:        turfID,
		BookingDate:   date,
		StartTime:     start,
		EndTime:       end,
		TotalAmount:   total,
		Status:        StatusConfirmed,
		BookingType:   TypeOffline,
		FullName:      offlineFullName,
		PaymentMethod: offlinePaymentMethod,
	}
	if err := s.bookings.CreateIfSlotFree(b, true); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteOfflineBooking hard-deletes an offline booking owned by ownerID.
func (s *Service) DeleteOfflineBooking(bookingID, ownerID uint) error {
	b, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if b.BookingType != TypeOffline {
		return ErrNotOffline
	}

	t, err := s.turfs.FindByID(b.TurfID)
	if err != nil {
		return err
	}
	if t == nil || t.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.bookings.Delete(bookingID)
}

// OfflineBookingsByTurf lists walk-in bookings on a turf the owner manages.
func (s *Service) OfflineBookingsByTurf(turfID, ownerID uint) ([]Booking, error) {
	t, err := s.turfs.FindByID(turfID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTurfNotFound
	}
	if t.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return s.bookings.FindByTurfIDAndType(turfID, TypeOffline)
}

// IsTimeSlotAvailable reports whether the requested interval is free of
// blocking bookings. Pure query, no side effects.
func (s *Service) IsTimeSlotAvailable(turfID uint, date, start, end string) (bool, error) {
	conflicts, err := s.bookings.FindConflicting(turfID, date, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// BookedStartTimes returns the start times of PENDING and CONFIRMED bookings
// on the given turf and date, in retrieval order. Callers wanting a stable
// display order should sort.
func (s *Service) BookedStartTimes(turfID uint, date string) ([]string, error) {
	all, err := s.bookings.FindByTurfID(turfID)
	if err != nil {
		return nil, err
	}
	booked := make([]string, 0)
	for _, b := range all {
		if b.BookingDate == date && (b.Status == StatusPending || b.Status == StatusConfirmed) {
			booked = append(booked, b.StartTime)
		}
	}
	return booked, nil
}

// CreateMultipleBookings books several one-hour slots on one date in a
// single call, each priced at one flat hour. Creation is atomic: either
// every slot inserts or none does, and the first failing slot's error is
// returned.
func (s *Service) CreateMultipleBookings(userID, turfID uint, date string, slotStarts []string, paymentMethod, fullName, phone, email string) ([]Booking, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	t, err := s.turfs.FindByID(turfID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTurfNotFound
	}
	if !t.IsActive {
		return nil, ErrTurfInactive
	}

	today := s.now().Format(dateLayout)
	if date < today {
		return nil, ErrPastDate
	}

	toCreate := make([]*Booking, 0, len(slotStarts))
	seen := make(map[string]bool, len(slotStarts))
	for _, start := range slotStarts {
		startMin, err := parseClock(start)
		if err != nil {
			return nil, ErrInvalidTime
		}
		end := formatClock(startMin + 60)

		if err := s.checkNotInPast(date, startMin); err != nil {
			return nil, err
		}

		// A slot repeated inside the batch is just as taken as one
		// already stored.
		if seen[start] {
			return nil, ErrSlotTaken
		}
		seen[start] = true

		available, err := s.IsTimeSlotAvailable(turfID, date, start, end)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, ErrSlotTaken
		}

		toCreate = append(toCreate, &Booking{
			UserID:      userID,
			TurfID:      turfID,
			BookingDate: date,
			StartTime:   start,
			EndTime:     end,
			// Multi bookings are always exactly one hour each.
			TotalAmount:   t.PricePerHour,
			Status:        StatusConfirmed,
			BookingType:   TypeOnline,
			FullName:      fullName,
			PhoneNumber:   phone,
			Email:         email,
			PaymentMethod: paymentMethod,
		})
	}

	if err := s.bookings.CreateAllIfSlotsFree(toCreate); err != nil {
		return nil, err
	}

	created := make([]Booking, 0, len(toCreate))
	for _, b := range toCreate {
		created = append(created, *b)
	}
	return created, nil
}

// ConfirmBooking sets status CONFIRMED unconditionally.
func (s *Service) ConfirmBooking(id uint) (*Booking, error) {
	return s.setStatus(id, StatusConfirmed)
}

// CancelBooking sets status CANCELLED unless the booking already completed.
func (s *Service) CancelBooking(id uint) (*Booking, error) {
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.Status == StatusCompleted {
		return nil, ErrCancelCompleted
	}
	return s.setStatus(id, StatusCancelled)
}

// UpdateBookingStatus sets an arbitrary valid status.
func (s *Service) UpdateBookingStatus(id uint, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.setStatus(id, status)
}

func (s *Service) setStatus(id uint, status Status) (*Booking, error) {
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	b.Status = status
	if err := s.bookings.Save(b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBooking hard-deletes a booking.
func (s *Service) DeleteBooking(id uint) error {
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	return s.bookings.Delete(id)
}

// FindByID returns the booking or ErrBookingNotFound.
func (s *Service) FindByID(id uint) (*Booking, error) {
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *Service) BookingsByUser(userID uint) ([]Booking, error) {
	return s.bookings.FindByUserID(userID)
}

func (s *Service) BookingsByTurf(turfID uint) ([]Booking, error) {
	return s.bookings.FindByTurfID(turfID)
}

func (s *Service) BookingsByOwner(ownerID uint) ([]Booking, error) {
	return s.bookings.FindByTurfOwnerID(ownerID)
}

func (s *Service) BookingsByStatus(status Status) ([]Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.bookings.FindByStatus(status)
}

// UserBookingsBetweenDates returns a user's bookings with dates in
// [startDate, endDate], inclusive on both ends.
func (s *Service) UserBookingsBetweenDates(userID uint, startDate, endDate string) ([]Booking, error) {
	return s.bookings.FindUserBookingsBetweenDates(userID, startDate, endDate)
}

func (s *Service) BookingDetailsByTurf(turfID uint) ([]BookingDetails, error) {
	return s.bookings.FindDetailsByTurfID(turfID)
}

func (s *Service) BookingDetailsByTurfPaginated(turfID uint, page, size int) ([]BookingDetails, int64, error) {
	return s.bookings.FindDetailsByTurfIDPaginated(turfID, page, size)
}

// BookingTotalsByOwner folds count and revenue over every booking on the
// owner's turfs.
func (s *Service) BookingTotalsByOwner(ownerID uint) (int64, float64, error) {
	bookings, err := s.bookings.FindByTurfOwnerID(ownerID)
	if err != nil {
		return 0, 0, err
	}
	var revenue float64
	for _, b := range bookings {
		revenue += b.TotalAmount
	}
	return int64(len(bookings)), revenue, nil
}

// BookingTotalsByUser folds count and spend over a user's bookings.
func (s *Service) BookingTotalsByUser(userID uint) (int64, float64, error) {
	bookings, err := s.bookings.FindByUserID(userID)
	if err != nil {
		return 0, 0, err
	}
	var spent float64
	for _, b := range bookings {
		spent += b.TotalAmount
	}
	return int64(len(bookings)), spent, nil
}

func (s *Service) TotalBookings() (int64, error) {
	return s.bookings.Count()
}

func (s *Service) TotalRevenue() (float64, error) {
	return s.bookings.SumTotalAmount()
}

// ActiveUserCount returns the total number of registered accounts. The name
// is kept for API compatibility with the admin dashboard; it has never
// filtered by activity.
func (s *Service) ActiveUserCount() (int64, error) {
	return s.users.Count()
}

// checkNotInPast rejects dates before today and, for today, start times that
// already passed. Late-night slots (starting 00:00-02:59) stay bookable
// after the clock passes them, except while "now" is itself inside the
// late-night window and earlier than the requested start.
func (s *Service) checkNotInPast(date string, startMin int) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDate
	}

	now := s.now()
	today := now.Format(dateLayout)
	if date < today {
		return ErrPastDate
	}
	if date != today {
		return nil
	}

	nowMin := now.Hour()*60 + now.Minute()
	isLateNight := startMin < lateNightEndHour*60

	if !isLateNight && startMin < nowMin {
		return ErrPastSlot
	}
	if isLateNight && startMin < nowMin && now.Hour() < lateNightEndHour {
		return ErrPastSlot
	}
	return nil
}

// ceilHours rounds a positive duration in minutes up to whole hours.
func ceilHours(minutes int) int {
	return (minutes + 59) / 60
}
