package sitesetting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository defines all database operations for site settings.
type SettingRepository interface {
	FindAll() ([]SiteSetting, error)
	FindByKey(key string) (*SiteSetting, error)
	Upsert(key, value string) (*SiteSetting, error)
	UpsertAll(settings map[string]string) error
	Delete(key string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new site setting repository backed by gorm.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FindAll() ([]SiteSetting, error) {
	var settings []SiteSetting
	err := r.db.Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) FindByKey(key string) (*SiteSetting, error) {
	var s SiteSetting
	err := r.db.Where("setting_key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingRepository) Upsert(key, value string) (*SiteSetting, error) {
	s := SiteSetting{SettingKey: key, SettingValue: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&s).Error
	if err != nil {
		return nil, err
	}
	return r.FindByKey(key)
}

func (r *settingRepository) UpsertAll(settings map[string]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range settings {
			s := SiteSetting{SettingKey: key, SettingValue: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
			}).Create(&s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *settingRepository) Delete(key string) error {
	return r.db.Unscoped().Where("setting_key = ?", key).Delete(&SiteSetting{}).Error
}
