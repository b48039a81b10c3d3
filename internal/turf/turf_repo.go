package turf

import (
	"errors"

	"gorm.io/gorm"
)

// TurfRepository defines all database operations for turf management.
type TurfRepository interface {
	Create(turf *Turf) error
	FindByID(id uint) (*Turf, error)
	FindByActive(active bool) ([]Turf, error)
	FindActivePaginated(page, size int) ([]Turf, int64, error)
	FindByLocation(location string) ([]Turf, error)
	FilterByLocationAndPrice(location string, minPrice, maxPrice float64, page, size int) ([]Turf, int64, error)
	FindByOwnerID(ownerID uint) ([]Turf, error)
	Update(turf *Turf) error
	Delete(id uint) error
}

type turfRepository struct {
	db *gorm.DB
}

// NewTurfRepository creates a new turf repository.
func NewTurfRepository(db *gorm.DB) TurfRepository {
	return &turfRepository{db: db}
}

func (r *turfRepository) Create(turf *Turf) error {
	return r.db.Create(turf).Error
}

func (r *turfRepository) FindByID(id uint) (*Turf, error) {
	var t Turf
	err := r.db.First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *turfRepository) FindByActive(active bool) ([]Turf, error) {
	var turfs []Turf
	err := r.db.Where("is_active = ?", active).Order("id ASC").Find(&turfs).Error
	return turfs, err
}

func (r *turfRepository) FindActivePaginated(page, size int) ([]Turf, int64, error) {
	var turfs []Turf
	var total int64

	query := r.db.Model(&Turf{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(page * size).Limit(size).Find(&turfs).Error; err != nil {
		return nil, 0, err
	}
	return turfs, total, nil
}

func (r *turfRepository) FindByLocation(location string) ([]Turf, error) {
	var turfs []Turf
	err := r.db.
		Where("is_active = ? AND location ILIKE ?", true, "%"+location+"%").
		Find(&turfs).Error
	return turfs, err
}

func (r *turfRepository) FilterByLocationAndPrice(location string, minPrice, maxPrice float64, page, size int) ([]Turf, int64, error) {
	var turfs []Turf
	var total int64

	query := r.db.Model(&Turf{}).
		Where("is_active = ? AND location ILIKE ? AND price_per_hour >= ? AND price_per_hour <= ?",
			true, "%"+location+"%", minPrice, maxPrice)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("price_per_hour ASC").Offset(page * size).Limit(size).Find(&turfs).Error; err != nil {
		return nil, 0, err
	}
	return turfs, total, nil
}

func (r *turfRepository) FindByOwnerID(ownerID uint) ([]Turf, error) {
	var turfs []Turf
	err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&turfs).Error
	return turfs, err
}

func (r *turfRepository) Update(turf *Turf) error {
	return r.db.Save(turf).Error
}

func (r *turfRepository) Delete(id uint) error {
	return r.db.Delete(&Turf{}, id).Error
}
