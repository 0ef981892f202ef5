package model

import "time"

type Reviewer struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:200;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
