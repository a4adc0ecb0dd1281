package models

import "time"

type Opportunity struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	OrganizationID uint                `gorm:"not null;index" json:"organization_id"`
	Organization   OrganizationProfile `gorm:"foreignKey:OrganizationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"organization"`
	Title          string              `gorm:"type:varchar(200);not null" json:"title"`
	Description    string              `gorm:"type:text" json:"description"`
	RequiredSkills []string            `gorm:"serializer:json" json:"required_skills"`
	LocationText   string              `gorm:"type:varchar(255)" json:"location_text"`
	// Latitude/Longitude are nil when the location text could not be
	// resolved; such opportunities never match radius searches.
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
