package payment

import "gorm.io/gorm"

// Status is the lifecycle state of a payment record.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Payment records the money side of a booking. Single online bookings start
// PENDING; multi-slot bookings arrive after the gateway already settled and
// are stored SUCCESS with the gateway transaction id.
type Payment struct {
	gorm.Model
	BookingID     uint    `gorm:"index;not null" json:"booking_id"`
	Amount        float64 `json:"amount"`
	Method        string  `gorm:"type:VARCHAR(30)" json:"method"`
	TransactionID string  `gorm:"type:VARCHAR(64);index" json:"transaction_id"`
	Status        Status  `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
}
