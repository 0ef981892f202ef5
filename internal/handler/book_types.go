package handler

import (
	"strings"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type CreateBookRequest struct {
	Title         string      `json:"title" binding:"required,min=1,max=200" example:"Good Omens"`
	Isbn          string      `json:"isbn" binding:"required,min=3,max=10" example:"0575048530"`
	DatePublished *model.Date `json:"datePublished" swaggertype:"string" example:"1990-05-01"`
	AuthorIDs     []uint      `json:"authorIds" binding:"required,min=1,dive,gt=0"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Isbn = strings.TrimSpace(r.Isbn)
}

// UpdateBookRequest replaces the book. Omitting authorIds keeps the
// current authors.
type UpdateBookRequest struct {
	ID            uint        `json:"id" binding:"required" example:"1"`
	Title         string      `json:"title" binding:"required,min=1,max=200" example:"Good Omens"`
	Isbn          string      `json:"isbn" binding:"required,min=3,max=10" example:"0575048530"`
	DatePublished *model.Date `json:"datePublished" swaggertype:"string" example:"1990-05-01"`
	AuthorIDs     []uint      `json:"authorIds" binding:"omitempty,min=1,dive,gt=0"`
}

func (r *UpdateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Isbn = strings.TrimSpace(r.Isbn)
}

type BookDto struct {
	ID            uint        `json:"id" example:"1"`
	Title         string      `json:"title" example:"Good Omens"`
	Isbn          string      `json:"isbn" example:"0575048530"`
	DatePublished *model.Date `json:"datePublished" swaggertype:"string" example:"1990-05-01"`
}

type RatingDto struct {
	BookID  uint    `json:"bookId" example:"1"`
	Average float64 `json:"average" example:"4.5"`
}

func toBookDto(b model.Book) BookDto {
	return BookDto{
		ID:            b.ID,
		Title:         b.Title,
		Isbn:          b.Isbn,
		DatePublished: model.NewDate(b.DatePublished),
	}
}
