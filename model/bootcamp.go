package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// DefaultPhoto is stored when a bootcamp is created without a photo
const DefaultPhoto = "no-photo.jpg"

// GeoLocation is the geocoded position of a bootcamp, stored as a GeoJSON-style point in jsonb
type GeoLocation struct {
	Type string `json:"type"`
	// Coordinates are [longitude, latitude]
	Coordinates      []float64 `json:"coordinates"`
	FormattedAddress string    `json:"formattedAddress"`
	Street           string    `json:"street"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Postcode         string    `json:"postcode"`
	Country          string    `json:"country"`
}

// NewPoint builds a "Point" location from a latitude/longitude pair
func NewPoint(latitude, longitude float64) GeoLocation {
	return GeoLocation{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

// Bootcamp represents one training-program provider
type Bootcamp struct {
	ID            uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string                          `gorm:"type:varchar(100);not null;uniqueIndex:idx_bootcamps_name" json:"name" validate:"required,max=100"`
	NameSlug      string                          `gorm:"index" json:"nameSlug"`
	Description   string                          `gorm:"type:varchar(500);not null" json:"description" validate:"required,max=500"`
	Website       string                          `json:"website,omitempty" validate:"omitempty,website"`
	Email         string                          `json:"email,omitempty" validate:"omitempty,bootcamp_email"`
	Phone         string                          `gorm:"type:varchar(20)" json:"phone,omitempty" validate:"omitempty,max=20"`
	Address       string                          `gorm:"not null" json:"address" validate:"required"`
	Location      datatypes.JSONType[GeoLocation] `gorm:"type:jsonb" json:"location"`
	Careers       pq.StringArray                  `gorm:"type:text[];not null" json:"careers" validate:"required,min=1,dive,career"`
	AverageRating *float64                        `json:"averageRating,omitempty" validate:"omitempty,min=1,max=10"`
	AverageCost   *float64                        `json:"averageCost,omitempty"`
	Photo         string                          `gorm:"not null" json:"photo"`
	Housing       bool                            `gorm:"not null" json:"housing"`
	JobAssistance bool                            `gorm:"not null" json:"jobAssistance"`
	JobGuarantee  bool                            `gorm:"not null" json:"jobGuarantee"`
	AcceptGi      bool                            `gorm:"not null" json:"acceptGi"`
	CreatedAt     time.Time                       `gorm:"not null;index" json:"createdAt"`
}

// ValidationMessages implements validation.MessageProvider
func (Bootcamp) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":        "Please add a name",
		"name.max":             "Name can not be more than 100 characters",
		"description.required": "Please add a description",
		"description.max":      "Description can not be more than 500 characters",
		"website.website":      "Invalid URL. Please ensure the URL starts with http:// or https://, followed by a valid domain name.",
		"email.bootcamp_email": "Invalid email address. Please enter a valid email in the format example@domain.com.",
		"phone.max":            "Phone number can not be longer than 20 characters",
		"address.required":     "Please add address",
		"careers.required":     "Please add at least one career",
		"careers.min":          "Please add at least one career",
		"averageRating.min":    "Rating must be at least 1",
		"averageRating.max":    "Rating must not be more than 10",
	}
}

// Coordinates returns the stored latitude and longitude, ok=false when the bootcamp was never geocoded
func (b *Bootcamp) Coordinates() (latitude, longitude float64, ok bool) {
	loc := b.Location.Data()
	if len(loc.Coordinates) != 2 {
		return 0, 0, false
	}
	return loc.Coordinates[1], loc.Coordinates[0], true
}
