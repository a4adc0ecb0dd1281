package models

type OrganizationProfile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	Name         string `gorm:"type:varchar(200);not null" json:"name"`
	Mission      string `gorm:"type:text" json:"mission"`
	ContactPhone string `gorm:"type:varchar(50)" json:"contact_phone"`
	LocationText string `gorm:"type:varchar(255)" json:"location_text"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}
