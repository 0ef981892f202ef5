package handler

import (
	"strings"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type CreateCountryRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"Netherlands"`
}

func (r *CreateCountryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateCountryRequest struct {
	ID   uint   `json:"id" binding:"required" example:"1"`
	Name string `json:"name" binding:"required,max=50" example:"Netherlands"`
}

func (r *UpdateCountryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type CountryDto struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Netherlands"`
}

func toCountryDto(c model.Country) CountryDto {
	return CountryDto{ID: c.ID, Name: c.Name}
}
