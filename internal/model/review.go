package model

import "time"

type Review struct {
	ID         uint     `gorm:"primaryKey"`
	Headline   string   `gorm:"size:200;not null"`
	ReviewText string   `gorm:"size:2000;not null"`
	Rating     int      `gorm:"not null;index"`
	BookID     uint     `gorm:"not null;index"`
	Book       Book     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ReviewerID uint     `gorm:"not null;index"`
	Reviewer   Reviewer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
