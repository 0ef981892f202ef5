package handler

import (
	"strings"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type CreateReviewRequest struct {
	Headline   string `json:"headline" binding:"required,max=200" example:"A classic"`
	ReviewText string `json:"reviewText" binding:"required,min=5,max=2000" example:"Funny and wise."`
	Rating     int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	BookID     uint   `json:"bookId" binding:"required,gt=0" example:"1"`
	ReviewerID uint   `json:"reviewerId" binding:"required,gt=0" example:"1"`
}

func (r *CreateReviewRequest) Normalize() {
	r.Headline = strings.TrimSpace(r.Headline)
	r.ReviewText = strings.TrimSpace(r.ReviewText)
}

type UpdateReviewRequest struct {
	ID         uint   `json:"id" binding:"required" example:"1"`
	Headline   string `json:"headline" binding:"required,max=200" example:"A classic"`
	ReviewText string `json:"reviewText" binding:"required,min=5,max=2000" example:"Funny and wise."`
	Rating     int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	BookID     uint   `json:"bookId" binding:"required,gt=0" example:"1"`
	ReviewerID uint   `json:"reviewerId" binding:"required,gt=0" example:"1"`
}

func (r *UpdateReviewRequest) Normalize() {
	r.Headline = strings.TrimSpace(r.Headline)
	r.ReviewText = strings.TrimSpace(r.ReviewText)
}

type ReviewDto struct {
	ID         uint   `json:"id" example:"1"`
	Headline   string `json:"headline" example:"A classic"`
	ReviewText string `json:"reviewText" example:"Funny and wise."`
	Rating     int    `json:"rating" example:"5"`
}

func toReviewDto(r model.Review) ReviewDto {
	return ReviewDto{
		ID:         r.ID,
		Headline:   r.Headline,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
	}
}
