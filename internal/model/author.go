package model

import "time"

type Author struct {
	ID        uint    `gorm:"primaryKey"`
	FirstName string  `gorm:"size:100;not null"`
	LastName  string  `gorm:"size:200;not null;index"`
	CountryID uint    `gorm:"not null;index"`
	Country   Country `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
