package handler

import (
	"strings"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

// EntityRef points at an existing record by id.
type EntityRef struct {
	ID uint `json:"id" binding:"required,gt=0" example:"1"`
}

type CreateAuthorRequest struct {
	FirstName string     `json:"firstName" binding:"required,max=100" example:"Jane"`
	LastName  string     `json:"lastName" binding:"required,max=200" example:"Doe"`
	Country   *EntityRef `json:"country" binding:"required"`
}

func (r *CreateAuthorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type UpdateAuthorRequest struct {
	ID        uint       `json:"id" binding:"required" example:"5"`
	FirstName string     `json:"firstName" binding:"required,max=100" example:"Jane"`
	LastName  string     `json:"lastName" binding:"required,max=200" example:"Doe"`
	Country   *EntityRef `json:"country" binding:"required"`
}

func (r *UpdateAuthorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type AuthorDto struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Doe"`
}

// AuthorDetail is returned after a create and carries the country.
type AuthorDetail struct {
	ID        uint       `json:"id" example:"1"`
	FirstName string     `json:"firstName" example:"Jane"`
	LastName  string     `json:"lastName" example:"Doe"`
	Country   CountryDto `json:"country"`
}

func toAuthorDto(a model.Author) AuthorDto {
	return AuthorDto{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func toAuthorDetail(a model.Author, c model.Country) AuthorDetail {
	return AuthorDetail{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Country:   toCountryDto(c),
	}
}
