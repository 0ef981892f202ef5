package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Book struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:200;not null;index"`
	Isbn          string `gorm:"size:10;not null;uniqueIndex"`
	DatePublished *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *Book) BeforeSave(tx *gorm.DB) (err error) {
	b.Isbn = NormalizeISBN(b.Isbn)
	return
}

// NormalizeISBN is the stored form of an ISBN: trimmed and upper-cased, so
// a trailing "x" check digit and "X" are the same book.
func NormalizeISBN(isbn string) string {
	return strings.ToUpper(strings.TrimSpace(isbn))
}

// BookAuthor links a book to one of its authors. The pair is the identity.
// Removing a book drops its links; removing a linked author is refused.
type BookAuthor struct {
	BookID   uint   `gorm:"primaryKey"`
	AuthorID uint   `gorm:"primaryKey;index"`
	Book     Book   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Author   Author `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
