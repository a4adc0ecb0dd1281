package models

type VolunteerProfile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	LocationText string `gorm:"type:varchar(255)" json:"location_text"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Skills       []string `gorm:"serializer:json" json:"skills"`
	Availability map[string]interface{} `gorm:"serializer:json" json:"availability"`
}
