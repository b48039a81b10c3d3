package payment

import (
	"errors"

	"gorm.io/gorm"
)

// PaymentRepository defines all database operations for payments.
type PaymentRepository interface {
	Create(p *Payment) error
	FindByID(id uint) (*Payment, error)
	FindByBookingID(bookingID uint) ([]Payment, error)
	UpdateStatus(id uint, status Status) error
	SumByStatus(status Status) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository backed by gorm.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(p *Payment) error {
	return r.db.Create(p).Error
}

func (r *paymentRepository) FindByID(id uint) (*Payment, error) {
	var p Payment
	err := r.db.First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) FindByBookingID(bookingID uint) ([]Payment, error) {
	var payments []Payment
	err := r.db.Where("booking_id = ?", bookingID).Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) UpdateStatus(id uint, status Status) error {
	return r.db.Model(&Payment{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *paymentRepository) SumByStatus(status Status) (float64, error) {
	var sum float64
	err := r.db.Model(&Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", status).
		Scan(&sum).Error
	return sum, err
}
