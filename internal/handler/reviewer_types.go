package handler

import (
	"strings"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type CreateReviewerRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100" example:"Ann"`
	LastName  string `json:"lastName" binding:"required,max=200" example:"Critic"`
}

func (r *CreateReviewerRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type UpdateReviewerRequest struct {
	ID        uint   `json:"id" binding:"required" example:"1"`
	FirstName string `json:"firstName" binding:"required,max=100" example:"Ann"`
	LastName  string `json:"lastName" binding:"required,max=200" example:"Critic"`
}

func (r *UpdateReviewerRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type ReviewerDto struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"Ann"`
	LastName  string `json:"lastName" example:"Critic"`
}

func toReviewerDto(r model.Reviewer) ReviewerDto {
	return ReviewerDto{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName}
}
