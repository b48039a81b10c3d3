package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/yagnamodi22/book-by-truf-backend/internal/turf"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
)

// fakeStore is an in-memory BookingStore with the same conflict semantics as
// the SQL implementation.
type fakeStore struct {
	bookings []Booking
	nextID   uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) conflicts(turfID uint, date, start, end string, blockAll bool) []Booking {
	var out []Booking
	for _, b := range f.bookings {
		if b.TurfID != turfID || b.BookingDate != date {
			continue
		}
		if !(b.StartTime < end && b.EndTime > start) {
			continue
		}
		if blockAll ||
			b.Status == StatusPending || b.Status == StatusConfirmed ||
			b.BookingType == TypeOffline {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeStore) FindConflicting(turfID uint, date, start, end string) ([]Booking, error) {
	return f.conflicts(turfID, date, start, end, false), nil
}

func (f *fakeStore) FindConflictingAny(turfID uint, date, start, end string) ([]Booking, error) {
	return f.conflicts(turfID, date, start, end, true), nil
}

func (f *fakeStore) CreateIfSlotFree(b *Booking, blockAll bool) error {
	if len(f.conflicts(b.TurfID, b.BookingDate, b.StartTime, b.EndTime, blockAll)) > 0 {
		return ErrSlotTaken
	}
	b.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeStore) CreateAllIfSlotsFree(bs []*Booking) error {
	saved := len(f.bookings)
	savedID := f.nextID
	for _, b := range bs {
		if err := f.CreateIfSlotFree(b, false); err != nil {
			f.bookings = f.bookings[:saved]
			f.nextID = savedID
			return err
		}
	}
	return nil
}

func (f *fakeStore) FindByID(id uint) (*Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Save(b *Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return errors.New("booking not stored")
}

func (f *fakeStore) Delete(id uint) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) FindByUserID(userID uint) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByTurfID(turfID uint) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.TurfID == turfID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByStatus(status Status) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByTurfOwnerID(ownerID uint) ([]Booking, error) {
	return nil, nil
}

func (f *fakeStore) FindByTurfIDAndType(turfID uint, bookingType Type) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.TurfID == turfID && b.BookingType == bookingType {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) FindUserBookingsBetweenDates(userID uint, startDate, endDate string) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.BookingDate >= startDate && b.BookingDate <= endDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) FindDetailsByTurfID(turfID uint) ([]BookingDetails, error) {
	return nil, nil
}

func (f *fakeStore) FindDetailsByTurfIDPaginated(turfID uint, page, size int) ([]BookingDetails, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) Count() (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeStore) SumTotalAmount() (float64, error) {
	var sum float64
	for _, b := range f.bookings {
		sum += b.TotalAmount
	}
	return sum, nil
}

type fakeTurfs struct {
	turfs map[uint]*turf.Turf
}

func (f *fakeTurfs) FindByID(id uint) (*turf.Turf, error) {
	return f.turfs[id], nil
}

type fakeUsers struct {
	users map[uint]*user.User
}

func (f *fakeUsers) FindByID(id uint) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUsers) Count() (int64, error) {
	return int64(len(f.users)), nil
}

const (
	testUserID  = 1
	testOwnerID = 2
	testTurfID  = 10
)

func newTestService(store *fakeStore, at time.Time) *Service {
	t := &turf.Turf{
		Name:         "City Arena",
		PricePerHour: 100,
		OwnerID:      testOwnerID,
		IsActive:     true,
	}
	t.ID = testTurfID

	inactive := &turf.Turf{Name: "Closed Ground", PricePerHour: 80, OwnerID: testOwnerID}
	inactive.ID = testTurfID + 1

	u := &user.User{Email: "john@example.com", Role: user.RoleUser}
	u.ID = testUserID
	owner := &user.User{Email: "jane@example.com", Role: user.RoleOwner}
	owner.ID = testOwnerID

	svc := NewService(store,
		&fakeTurfs{turfs: map[uint]*turf.Turf{t.ID: t, inactive.ID: inactive}},
		&fakeUsers{users: map[uint]*user.User{u.ID: u, owner.ID: owner}},
	)
	svc.now = func() time.Time { return at }
	return svc
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestCreateBookingPricingRoundsUpToWholeHours(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	b, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-10", "10:00", "12:30",
		"John Doe", "+911234567890", "john@example.com", "UPI")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.TotalAmount != 300 {
		t.Errorf("TotalAmount = %v, want 300 (2.5h rounded up to 3h at 100/h)", b.TotalAmount)
	}
	if b.Status != StatusPending {
		t.Errorf("Status = %v, want PENDING", b.Status)
	}
	if b.BookingType != TypeOnline {
		t.Errorf("BookingType = %v, want ONLINE", b.BookingType)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		now     string
		userID  uint
		turfID  uint
		date    string
		start   string
		end     string
		wantErr error
	}{
		{"past date", "2025-06-10 08:00", testUserID, testTurfID, "2025-06-09", "10:00", "11:00", ErrPastDate},
		{"unknown user", "2025-06-10 08:00", 99, testTurfID, "2025-06-11", "10:00", "11:00", ErrUserNotFound},
		{"unknown turf", "2025-06-10 08:00", testUserID, 99, "2025-06-11", "10:00", "11:00", ErrTurfNotFound},
		{"inactive turf", "2025-06-10 08:00", testUserID, testTurfID + 1, "2025-06-11", "10:00", "11:00", ErrTurfInactive},
		{"end before start", "2025-06-10 08:00", testUserID, testTurfID, "2025-06-11", "11:00", "10:00", ErrInvalidInterval},
		{"end equals start", "2025-06-10 08:00", testUserID, testTurfID, "2025-06-11", "10:00", "10:00", ErrInvalidInterval},
		{"malformed time", "2025-06-10 08:00", testUserID, testTurfID, "2025-06-11", "10am", "11:00", ErrInvalidTime},
		{"malformed date", "2025-06-10 08:00", testUserID, testTurfID, "11-06-2025", "10:00", "11:00", ErrInvalidDate},
		{"past slot today", "2025-06-10 14:00", testUserID, testTurfID, "2025-06-10", "10:00", "11:00", ErrPastSlot},
		{"future slot today", "2025-06-10 14:00", testUserID, testTurfID, "2025-06-10", "15:00", "16:00", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newFakeStore(), mustTime(t, tc.now))
			_, err := svc.CreateBooking(tc.userID, tc.turfID, tc.date, tc.start, tc.end,
				"John Doe", "", "john@example.com", "UPI")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CreateBooking error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateBookingLateNightWindow(t *testing.T) {
	tests := []struct {
		name    string
		now     string
		start   string
		end     string
		wantErr error
	}{
		// Late-night slots stay bookable for the rest of the day once the
		// clock leaves the 00:00-02:59 window.
		{"01:00 slot at 23:30 previous evening style now", "2025-06-10 23:30", "01:00", "02:00", nil},
		{"00:30 slot in the afternoon", "2025-06-10 15:00", "00:30", "01:30", nil},
		{"01:00 slot at 02:00 same window", "2025-06-10 02:00", "01:00", "02:00", ErrPastSlot},
		{"02:00 slot at 01:00 same window", "2025-06-10 01:00", "02:00", "03:00", nil},
		{"03:00 slot after 03:00", "2025-06-10 04:00", "03:00", "04:00", ErrPastSlot},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newFakeStore(), mustTime(t, tc.now))
			_, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-10", tc.start, tc.end,
				"John Doe", "", "john@example.com", "UPI")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CreateBooking error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	if _, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI"); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// Partial overlap blocks.
	_, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:30", "11:30",
		"John Doe", "", "john@example.com", "UPI")
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("overlapping booking error = %v, want ErrSlotTaken", err)
	}

	// Back-to-back does not.
	if _, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "11:00", "12:00",
		"John Doe", "", "john@example.com", "UPI"); err != nil {
		t.Errorf("back-to-back booking error = %v, want nil", err)
	}

	// Cancelled online bookings stop blocking.
	store2 := newFakeStore()
	svc2 := newTestService(store2, mustTime(t, "2025-06-10 08:00"))
	b, err := svc2.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI")
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	if _, err := svc2.CancelBooking(b.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if _, err := svc2.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI"); err != nil {
		t.Errorf("rebooking cancelled slot error = %v, want nil", err)
	}
}

func TestCreateOfflineBooking(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	// Only the turf's owner may record walk-ins.
	if _, err := svc.CreateOfflineBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00", nil); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner offline booking error = %v, want ErrNotOwner", err)
	}

	amount := 250.0
	b, err := svc.CreateOfflineBooking(testOwnerID, testTurfID, "2025-06-11", "10:00", "11:00", &amount)
	if err != nil {
		t.Fatalf("CreateOfflineBooking: %v", err)
	}
	if b.Status != StatusConfirmed || b.BookingType != TypeOffline {
		t.Errorf("got status=%v type=%v, want CONFIRMED OFFLINE", b.Status, b.BookingType)
	}
	if b.TotalAmount != 250 {
		t.Errorf("TotalAmount = %v, want 250", b.TotalAmount)
	}
	if b.PaymentMethod != "CASH" {
		t.Errorf("PaymentMethod = %q, want CASH", b.PaymentMethod)
	}

	// Walk-ins keep blocking even after cancellation.
	if _, err := svc.CancelBooking(b.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if _, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI"); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("booking over cancelled walk-in error = %v, want ErrSlotTaken", err)
	}

	// Default amount falls back to rounded-up hourly pricing.
	b2, err := svc.CreateOfflineBooking(testOwnerID, testTurfID, "2025-06-12", "10:00", "11:30", nil)
	if err != nil {
		t.Fatalf("CreateOfflineBooking: %v", err)
	}
	if b2.TotalAmount != 200 {
		t.Errorf("TotalAmount = %v, want 200 (1.5h rounded up to 2h at 100/h)", b2.TotalAmount)
	}
}

func TestDeleteOfflineBooking(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	online, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "08:00", "09:00",
		"John Doe", "", "john@example.com", "UPI")
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	if err := svc.DeleteOfflineBooking(online.ID, testOwnerID); !errors.Is(err, ErrNotOffline) {
		t.Errorf("deleting online booking error = %v, want ErrNotOffline", err)
	}

	offline, err := svc.CreateOfflineBooking(testOwnerID, testTurfID, "2025-06-11", "10:00", "11:00", nil)
	if err != nil {
		t.Fatalf("seed offline booking: %v", err)
	}
	if err := svc.DeleteOfflineBooking(offline.ID, testUserID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("deleting as non-owner error = %v, want ErrNotOwner", err)
	}
	if err := svc.DeleteOfflineBooking(offline.ID, testOwnerID); err != nil {
		t.Fatalf("DeleteOfflineBooking: %v", err)
	}
	if b, _ := store.FindByID(offline.ID); b != nil {
		t.Error("offline booking still stored after delete")
	}
}

func TestCancelCompletedBookingFails(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	b, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI")
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	if _, err := svc.UpdateBookingStatus(b.ID, StatusCompleted); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if _, err := svc.CancelBooking(b.ID); !errors.Is(err, ErrCancelCompleted) {
		t.Errorf("cancelling completed booking error = %v, want ErrCancelCompleted", err)
	}
}

func TestCreateMultipleBookingsIsAtomic(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	if _, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "19:00", "20:00",
		"John Doe", "", "john@example.com", "UPI"); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	before, _ := store.Count()

	_, err := svc.CreateMultipleBookings(testUserID, testTurfID, "2025-06-11",
		[]string{"18:00", "19:00", "20:00"}, "UPI", "John Doe", "", "john@example.com")
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("CreateMultipleBookings error = %v, want ErrSlotTaken", err)
	}

	after, _ := store.Count()
	if after != before {
		t.Errorf("store grew from %d to %d bookings, want no change", before, after)
	}
}

func TestCreateMultipleBookingsFlatHourlyPricing(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	created, err := svc.CreateMultipleBookings(testUserID, testTurfID, "2025-06-11",
		[]string{"18:00", "20:00"}, "UPI", "John Doe", "", "john@example.com")
	if err != nil {
		t.Fatalf("CreateMultipleBookings: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d bookings, want 2", len(created))
	}
	for _, b := range created {
		if b.TotalAmount != 100 {
			t.Errorf("slot %s TotalAmount = %v, want 100", b.StartTime, b.TotalAmount)
		}
		if b.Status != StatusConfirmed {
			t.Errorf("slot %s Status = %v, want CONFIRMED", b.StartTime, b.Status)
		}
		if b.EndTime != formatClock(mustMinutes(t, b.StartTime)+60) {
			t.Errorf("slot %s EndTime = %v, want one hour later", b.StartTime, b.EndTime)
		}
	}

	// A repeated start time within one request conflicts with itself.
	if _, err := svc.CreateMultipleBookings(testUserID, testTurfID, "2025-06-12",
		[]string{"18:00", "18:00"}, "UPI", "John Doe", "", "john@example.com"); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("duplicate slot error = %v, want ErrSlotTaken", err)
	}
}

func mustMinutes(t *testing.T, clock string) int {
	t.Helper()
	m, err := parseClock(clock)
	if err != nil {
		t.Fatalf("parseClock(%q): %v", clock, err)
	}
	return m
}

func TestIsTimeSlotAvailableAndBookedStartTimes(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	b, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI")
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	available, err := svc.IsTimeSlotAvailable(testTurfID, "2025-06-11", "10:00", "11:00")
	if err != nil || available {
		t.Errorf("IsTimeSlotAvailable = %v, %v; want false, nil", available, err)
	}
	available, err = svc.IsTimeSlotAvailable(testTurfID, "2025-06-11", "11:00", "12:00")
	if err != nil || !available {
		t.Errorf("IsTimeSlotAvailable = %v, %v; want true, nil", available, err)
	}

	slots, err := svc.BookedStartTimes(testTurfID, "2025-06-11")
	if err != nil {
		t.Fatalf("BookedStartTimes: %v", err)
	}
	if len(slots) != 1 || slots[0] != "10:00" {
		t.Errorf("BookedStartTimes = %v, want [10:00]", slots)
	}

	// Cancelled bookings drop out of the booked list.
	if _, err := svc.CancelBooking(b.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	slots, err = svc.BookedStartTimes(testTurfID, "2025-06-11")
	if err != nil {
		t.Fatalf("BookedStartTimes: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("BookedStartTimes after cancel = %v, want empty", slots)
	}
}

func TestBookingTotals(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-10 08:00"))

	if _, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "10:00", "11:00",
		"John Doe", "", "john@example.com", "UPI"); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	if _, err := svc.CreateBooking(testUserID, testTurfID, "2025-06-11", "12:00", "14:00",
		"John Doe", "", "john@example.com", "UPI"); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	total, err := svc.TotalBookings()
	if err != nil || total != 2 {
		t.Errorf("TotalBookings = %d, %v; want 2, nil", total, err)
	}
	revenue, err := svc.TotalRevenue()
	if err != nil || revenue != 300 {
		t.Errorf("TotalRevenue = %v, %v; want 300, nil", revenue, err)
	}
	users, err := svc.ActiveUserCount()
	if err != nil || users != 2 {
		t.Errorf("ActiveUserCount = %d, %v; want 2, nil", users, err)
	}

	count, spent, err := svc.BookingTotalsByUser(testUserID)
	if err != nil || count != 2 || spent != 300 {
		t.Errorf("BookingTotalsByUser = %d, %v, %v; want 2, 300, nil", count, spent, err)
	}
}

func TestUserBookingsBetweenDatesInclusive(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, mustTime(t, "2025-06-01 08:00"))

	for _, date := range []string{"2025-06-05", "2025-06-10", "2025-06-15"} {
		if _, err := svc.CreateBooking(testUserID, testTurfID, date, "10:00", "11:00",
			"John Doe", "", "john@example.com", "UPI"); err != nil {
			t.Fatalf("seed booking on %s: %v", date, err)
		}
	}

	got, err := svc.UserBookingsBetweenDates(testUserID, "2025-06-05", "2025-06-10")
	if err != nil {
		t.Fatalf("UserBookingsBetweenDates: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d bookings, want 2 (range is inclusive on both ends)", len(got))
	}
}
