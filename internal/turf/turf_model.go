package turf

import (
	"strings"

	"gorm.io/gorm"
)

// Turf is a bookable sports field. Owner submissions stay inactive until an
// admin approves them; only active turfs can be booked or listed publicly.
type Turf struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `gorm:"type:TEXT" json:"description"`
	Location     string  `gorm:"not null;index" json:"location"`
	PricePerHour float64 `gorm:"not null" json:"price_per_hour"`
	Amenities    string  `gorm:"type:TEXT" json:"amenities"`
	Images       string  `gorm:"type:TEXT" json:"images"`
	OwnerID      uint    `gorm:"index;not null" json:"owner_id"`
	IsActive     bool    `gorm:"default:false;index" json:"is_active"`
}

// ImageList splits the comma-joined images column.
func (t *Turf) ImageList() []string {
	if strings.TrimSpace(t.Images) == "" {
		return nil
	}
	return strings.Split(t.Images, ",")
}

const maxImages = 5

// JoinImages trims, drops empties and caps the image list before it is
// persisted as a single comma-joined column.
func JoinImages(images []string) string {
	cleaned := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		cleaned = append(cleaned, img)
		if len(cleaned) == maxImages {
			break
		}
	}
	return strings.Join(cleaned, ",")
}

// CreateTurfRequest is the payload for creating or updating a turf.
type CreateTurfRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Description  string   `json:"description"`
	Location     string   `json:"location" binding:"required"`
	PricePerHour float64  `json:"price_per_hour" binding:"required,gt=0"`
	Amenities    string   `json:"amenities"`
	Images       string   `json:"images"`
	ImageArray   []string `json:"image_array"`
}
