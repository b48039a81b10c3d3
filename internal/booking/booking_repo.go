package booking

import (
	"errors"

	"gorm.io/gorm"
)

// BookingStore defines all database operations for bookings.
type BookingStore interface {
	FindConflicting(turfID uint, date, start, end string) ([]Booking, error)
	FindConflictingAny(turfID uint, date, start, end string) ([]Booking, error)
	CreateIfSlotFree(b *Booking, blockAll bool) error
	CreateAllIfSlotsFree(bs []*Booking) error
	FindByID(id uint) (*Booking, error)
	Save(b *Booking) error
	Delete(id uint) error
	FindByUserID(userID uint) ([]Booking, error)
	FindByTurfID(turfID uint) ([]Booking, error)
	FindByStatus(status Status) ([]Booking, error)
	FindByTurfOwnerID(ownerID uint) ([]Booking, error)
	FindByTurfIDAndType(turfID uint, bookingType Type) ([]Booking, error)
	FindUserBookingsBetweenDates(userID uint, startDate, endDate string) ([]Booking, error)
	FindDetailsByTurfID(turfID uint) ([]BookingDetails, error)
	FindDetailsByTurfIDPaginated(turfID uint, page, size int) ([]BookingDetails, int64, error)
	Count() (int64, error)
	SumTotalAmount() (float64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking store backed by gorm.
func NewBookingRepository(db *gorm.DB) BookingStore {
	return &bookingRepository{db: db}
}

// conflictScope selects bookings on the same turf and date whose [start,end)
// interval overlaps the requested one. Unless blockAll is set, only PENDING
// and CONFIRMED bookings block, with OFFLINE bookings blocking regardless of
// status.
func conflictScope(tx *gorm.DB, turfID uint, date, start, end string, blockAll bool) *gorm.DB {
	q := tx.Model(&Booking{}).
		Where("turf_id = ? AND booking_date = ?", turfID, date).
		Where("start_time < ? AND end_time > ?", end, start)
	if !blockAll {
		q = q.Where("status IN ? OR booking_type = ?",
			[]Status{StatusPending, StatusConfirmed}, TypeOffline)
	}
	return q
}

func (r *bookingRepository) FindConflicting(turfID uint, date, start, end string) ([]Booking, error) {
	var bookings []Booking
	err := conflictScope(r.db, turfID, date, start, end, false).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindConflictingAny(turfID uint, date, start, end string) ([]Booking, error) {
	var bookings []Booking
	err := conflictScope(r.db, turfID, date, start, end, true).Find(&bookings).Error
	return bookings, err
}

// CreateIfSlotFree re-runs the conflict check and inserts in one serializable
// transaction, so two concurrent requests for the same slot cannot both pass
// the check and both insert. Returns ErrSlotTaken when the slot got claimed
// in between.
func (r *bookingRepository) CreateIfSlotFree(b *Booking, blockAll bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
			return err
		}
		var count int64
		if err := conflictScope(tx, b.TurfID, b.BookingDate, b.StartTime, b.EndTime, blockAll).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return tx.Create(b).Error
	})
}

// CreateAllIfSlotsFree inserts every booking or none: the whole batch runs in
// one serializable transaction and any conflicting slot aborts it.
func (r *bookingRepository) CreateAllIfSlotsFree(bs []*Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
			return err
		}
		for _, b := range bs {
			var count int64
			if err := conflictScope(tx, b.TurfID, b.BookingDate, b.StartTime, b.EndTime, false).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrSlotTaken
			}
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *bookingRepository) FindByID(id uint) (*Booking, error) {
	var b Booking
	err := r.db.First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Save(b *Booking) error {
	return r.db.Save(b).Error
}

func (r *bookingRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&Booking{}, id).Error
}

func (r *bookingRepository) FindByUserID(userID uint) ([]Booking, error) {
	var bookings []Booking
	err := r.db.Where("user_id = ?", userID).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByTurfID(turfID uint) ([]Booking, error) {
	var bookings []Booking
	err := r.db.Where("turf_id = ?", turfID).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByStatus(status Status) ([]Booking, error) {
	var bookings []Booking
	err := r.db.Where("status = ?", status).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByTurfOwnerID(ownerID uint) ([]Booking, error) {
	var bookings []Booking
	err := r.db.
		Joins("JOIN turfs ON turfs.id = bookings.turf_id").
		Where("turfs.owner_id = ?", ownerID).
		Order("bookings.booking_date DESC, bookings.start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByTurfIDAndType(turfID uint, bookingType Type) ([]Booking, error) {
	var bookings []Booking
	err := r.db.Where("turf_id = ? AND booking_type = ?", turfID, bookingType).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindUserBookingsBetweenDates(userID uint, startDate, endDate string) ([]Booking, error) {
	var bookings []Booking
	err := r.db.
		Where("user_id = ? AND booking_date >= ? AND booking_date <= ?", userID, startDate, endDate).
		Find(&bookings).Error
	return bookings, err
}

const detailsSelect = "bookings.*, " +
	"users.first_name AS user_first_name, users.last_name AS user_last_name, users.email AS user_email, " +
	"turfs.name AS turf_name, turfs.location AS turf_location"

func (r *bookingRepository) FindDetailsByTurfID(turfID uint) ([]BookingDetails, error) {
	var details []BookingDetails
	err := r.db.Model(&Booking{}).
		Select(detailsSelect).
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Joins("LEFT JOIN turfs ON turfs.id = bookings.turf_id").
		Where("bookings.turf_id = ?", turfID).
		Order("bookings.booking_date DESC, bookings.start_time DESC").
		Scan(&details).Error
	return details, err
}

func (r *bookingRepository) FindDetailsByTurfIDPaginated(turfID uint, page, size int) ([]BookingDetails, int64, error) {
	var total int64
	if err := r.db.Model(&Booking{}).Where("turf_id = ?", turfID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var details []BookingDetails
	err := r.db.Model(&Booking{}).
		Select(detailsSelect).
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Joins("LEFT JOIN turfs ON turfs.id = bookings.turf_id").
		Where("bookings.turf_id = ?", turfID).
		Order("bookings.booking_date DESC, bookings.start_time DESC").
		Offset(page * size).Limit(size).
		Scan(&details).Error
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (r *bookingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&Booking{}).Count(&count).Error
	return count, err
}

func (r *bookingRepository) SumTotalAmount() (float64, error) {
	var sum float64
	err := r.db.Model(&Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	return sum, err
}
