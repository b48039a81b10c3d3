package sitesetting

import "gorm.io/gorm"

// SiteSetting is one key-value pair of site-wide configuration, editable by
// admins and readable by everyone.
type SiteSetting struct {
	gorm.Model
	SettingKey   string `gorm:"type:VARCHAR(100);uniqueIndex;not null" json:"setting_key"`
	SettingValue string `gorm:"type:TEXT" json:"setting_value"`
	SettingType  string `gorm:"type:VARCHAR(20);default:'string'" json:"setting_type"`
}

// UpdateSettingsRequest replaces several settings in one call.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
