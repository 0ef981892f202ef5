package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

type ReviewerHandler struct {
	reviewers repository.ReviewerRepository
	reviews   repository.ReviewRepository
}

func NewReviewerHandler(reviewers repository.ReviewerRepository, reviews repository.ReviewRepository) *ReviewerHandler {
	return &ReviewerHandler{reviewers: reviewers, reviews: reviews}
}

func (h *ReviewerHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviewers := r.Group("/reviewers")
	{
		reviewers.GET("", h.ListReviewers)
		reviewers.GET("/:id", h.GetReviewerByID)
		reviewers.GET("/:id/reviews", h.ListReviewsByReviewer)
		reviewers.GET("/reviews/:reviewId", h.GetReviewerOfReview)
		reviewers.POST("", h.CreateReviewer)
		reviewers.PUT("/:id", h.UpdateReviewer)
		reviewers.DELETE("/:id", h.DeleteReviewer)
	}
}

// ListReviewers godoc
// @Summary      List reviewers
// @Description  All reviewers ordered by last name
// @Tags         reviewers
// @Produce      json
// @Success      200  {array}   ReviewerDto
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers [get]
func (h *ReviewerHandler) ListReviewers(c *gin.Context) {
	reviewers, err := h.reviewers.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, "REVIEWER_LIST_FAILED", "failed to list reviewers", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(reviewers, toReviewerDto))
}

// GetReviewerByID godoc
// @Summary      Get reviewer by ID
// @Tags         reviewers
// @Produce      json
// @Param        id   path      int  true  "Reviewer ID"
// @Success      200  {object}  ReviewerDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Reviewer not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers/{id} [get]
func (h *ReviewerHandler) GetReviewerByID(c *gin.Context) {
	id, ok := parseID(c, "id", "REVIEWER_INVALID_ID", "invalid reviewer id")
	if !ok {
		return
	}

	reviewer, err := h.reviewers.FindByID(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
			return
		}
		writeInternalError(c, "REVIEWER_FETCH_FAILED", "failed to fetch reviewer", err)
		return
	}

	c.JSON(http.StatusOK, toReviewerDto(*reviewer))
}

// ListReviewsByReviewer godoc
// @Summary      List the reviews written by a reviewer
// @Tags         reviewers
// @Produce      json
// @Param        id   path      int  true  "Reviewer ID"
// @Success      200  {array}   ReviewDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Reviewer not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers/{id}/reviews [get]
func (h *ReviewerHandler) ListReviewsByReviewer(c *gin.Context) {
	id, ok := parseID(c, "id", "REVIEWER_INVALID_ID", "invalid reviewer id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.reviewers.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "REVIEWER_FETCH_FAILED", "failed to fetch reviewer", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
		return
	}

	reviews, err := h.reviewers.ListReviews(ctx, id)
	if err != nil {
		writeInternalError(c, "REVIEW_LIST_FAILED", "failed to list reviews", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(reviews, toReviewDto))
}

// GetReviewerOfReview godoc
// @Summary      Get the reviewer who wrote a review
// @Tags         reviewers
// @Produce      json
// @Param        reviewId  path      int  true  "Review ID"
// @Success      200       {object}  ReviewerDto
// @Failure      400       {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404       {object}  validation.ErrorResponse  "Review not found"
// @Failure      500       {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers/reviews/{reviewId} [get]
func (h *ReviewerHandler) GetReviewerOfReview(c *gin.Context) {
	reviewID, ok := parseID(c, "reviewId", "REVIEW_INVALID_ID", "invalid review id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.reviews.Exists(ctx, reviewID)
	if err != nil {
		writeInternalError(c, "REVIEW_FETCH_FAILED", "failed to fetch review", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
		return
	}

	reviewer, err := h.reviewers.FindByReview(ctx, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
			return
		}
		writeInternalError(c, "REVIEWER_FETCH_FAILED", "failed to fetch reviewer", err)
		return
	}

	c.JSON(http.StatusOK, toReviewerDto(*reviewer))
}

// CreateReviewer godoc
// @Summary      Create a reviewer
// @Tags         reviewers
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateReviewerRequest     true  "Reviewer to create"
// @Success      201      {object}  ReviewerDto
// @Header       201      {string}  Location  "/api/reviewers/{id}"
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers [post]
func (h *ReviewerHandler) CreateReviewer(c *gin.Context) {
	defer trackMutation(c, "reviewer", "create")

	var req CreateReviewerRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	reviewer := model.Reviewer{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.reviewers.Create(c.Request.Context(), &reviewer); err != nil {
		writeInternalError(c, "REVIEWER_CREATE_FAILED", "failed to create reviewer", err)
		return
	}

	created(c, "reviewers", reviewer.ID, toReviewerDto(reviewer))
}

// UpdateReviewer godoc
// @Summary      Replace a reviewer
// @Tags         reviewers
// @Accept       json
// @Param        id       path  int                    true  "Reviewer ID"
// @Param        payload  body  UpdateReviewerRequest  true  "Reviewer, id must match the path"
// @Success      204
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Reviewer not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers/{id} [put]
func (h *ReviewerHandler) UpdateReviewer(c *gin.Context) {
	defer trackMutation(c, "reviewer", "update")

	id, ok := parseID(c, "id", "REVIEWER_INVALID_ID", "invalid reviewer id")
	if !ok {
		return
	}

	var req UpdateReviewerRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.ID != id {
		writeError(c, http.StatusBadRequest, "REVIEWER_ID_MISMATCH", "reviewer id in body does not match path")
		return
	}

	reviewer := model.Reviewer{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.reviewers.Update(c.Request.Context(), &reviewer); err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
			return
		}
		writeInternalError(c, "REVIEWER_UPDATE_FAILED", "failed to update reviewer", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteReviewer godoc
// @Summary      Delete a reviewer
// @Description  Also removes every review the reviewer wrote
// @Tags         reviewers
// @Param        id   path  int  true  "Reviewer ID"
// @Success      204
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Reviewer not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviewers/{id} [delete]
func (h *ReviewerHandler) DeleteReviewer(c *gin.Context) {
	defer trackMutation(c, "reviewer", "delete")

	id, ok := parseID(c, "id", "REVIEWER_INVALID_ID", "invalid reviewer id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	reviewer, err := h.reviewers.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
			return
		}
		writeInternalError(c, "REVIEWER_FETCH_FAILED", "failed to fetch reviewer", err)
		return
	}

	if err := h.reviewers.Delete(ctx, reviewer); err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
			return
		}
		writeInternalError(c, "REVIEWER_DELETE_FAILED", "failed to delete reviewer", err)
		return
	}

	c.Status(http.StatusNoContent)
}
