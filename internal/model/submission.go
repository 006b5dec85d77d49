package model

import (
	"time"
)

type Submission struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Title           string     `gorm:"type:varchar(256);not null" json:"title"`
	Description     string     `gorm:"type:text;not null" json:"description"`
	Location        string     `gorm:"type:varchar(100);not null" json:"location"`
	Name            string     `gorm:"type:varchar(100);not null" json:"name"`
	Phone           *string    `gorm:"type:varchar(15)" json:"phone"`
	Category        *string    `gorm:"type:varchar(50)" json:"category"`
	ImageURL        *string    `gorm:"type:text" json:"imageUrl"`
	IsApproved      bool       `gorm:"default:false" json:"isApproved"`
	IsDuplicate     bool       `gorm:"default:false" json:"isDuplicate"`
	SimilarityScore *float32   `gorm:"type:real" json:"similarityScore"`
	CreatedAt       time.Time  `json:"createdAt"`
	EventDate       *time.Time `gorm:"type:date" json:"eventDate"`
}
