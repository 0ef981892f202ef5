package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Country struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;index"`
	// NameKey is the trimmed, upper-cased name. Uniqueness is enforced on it.
	NameKey   string `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Country) BeforeSave(tx *gorm.DB) (err error) {
	c.Name = strings.TrimSpace(c.Name)
	c.NameKey = CountryNameKey(c.Name)
	return
}

// CountryNameKey folds a country name for comparison. SQLite's UPPER only
// folds ASCII, so this is done in Go.
func CountryNameKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
