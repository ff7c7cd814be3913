package models

import (
	"time"
)

const ParasiteNameMaxLength = 128

type Parasite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex;size:128" json:"name"`
	Picture   string    `json:"picture"`
	Intro     string    `gorm:"type:text" json:"intro"`
	Views     int       `gorm:"default:0" json:"views"` // detail page visits, monotonic
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
