package models

import "time"

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Application links one volunteer to one opportunity. The composite unique
// index is what makes concurrent duplicate applies resolve to a single row.
type Application struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	OpportunityID uint             `gorm:"not null;uniqueIndex:idx_opportunity_volunteer" json:"opportunity_id"`
	Opportunity   Opportunity      `gorm:"foreignKey:OpportunityID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"opportunity"`
	VolunteerID   uint             `gorm:"not null;uniqueIndex:idx_opportunity_volunteer" json:"volunteer_id"`
	Volunteer     VolunteerProfile `gorm:"foreignKey:VolunteerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"volunteer"`
	Status        string           `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	AppliedAt     time.Time        `gorm:"not null" json:"applied_at"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updated_at"`
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}
