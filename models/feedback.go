package models

import "time"

// Feedback is at most one per application, enforced by the unique index.
type Feedback struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	ApplicationID  uint                `gorm:"not null;uniqueIndex" json:"application_id"`
	Application    Application         `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"application"`
	OrganizationID uint                `gorm:"not null" json:"organization_id"`
	Organization   OrganizationProfile `gorm:"foreignKey:OrganizationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"organization"`
	Rating         int                 `gorm:"not null" json:"rating"`
	Comment        string              `gorm:"type:text" json:"comment"`
	CreatedAt      time.Time           `gorm:"not null" json:"created_at"`
}
