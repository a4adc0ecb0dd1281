package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourLog entries are append-only; there is no update or delete path.
type HourLog struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ApplicationID uint            `gorm:"not null;index" json:"application_id"`
	Application   Application     `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"application"`
	WorkDate      time.Time       `gorm:"type:date;not null" json:"work_date"`
	Hours         decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"hours"`
	Note          string          `gorm:"type:varchar(255)" json:"note"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
}
