package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

type ReviewHandler struct {
	reviews   repository.ReviewRepository
	books     repository.BookRepository
	reviewers repository.ReviewerRepository
}

func NewReviewHandler(
	reviews repository.ReviewRepository,
	books repository.BookRepository,
	reviewers repository.ReviewerRepository,
) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, books: books, reviewers: reviewers}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.GET("/:id", h.GetReviewByID)
		reviews.GET("/books/:bookId", h.ListReviewsByBook)
		reviews.GET("/:id/book", h.GetBookOfReview)
		reviews.POST("", h.CreateReview)
		reviews.PUT("/:id", h.UpdateReview)
		reviews.DELETE("/:id", h.DeleteReview)
	}
}

// ListReviews godoc
// @Summary      List reviews
// @Description  All reviews, highest rating first
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   ReviewDto
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, "REVIEW_LIST_FAILED", "failed to list reviews", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(reviews, toReviewDto))
}

// GetReviewByID godoc
// @Summary      Get review by ID
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  ReviewDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Review not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	id, ok := parseID(c, "id", "REVIEW_INVALID_ID", "invalid review id")
	if !ok {
		return
	}

	review, err := h.reviews.FindByID(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
			return
		}
		writeInternalError(c, "REVIEW_FETCH_FAILED", "failed to fetch review", err)
		return
	}

	c.JSON(http.StatusOK, toReviewDto(*review))
}

// ListReviewsByBook godoc
// @Summary      List the reviews of a book
// @Tags         reviews
// @Produce      json
// @Param        bookId  path      int  true  "Book ID"
// @Success      200     {array}   ReviewDto
// @Failure      400     {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404     {object}  validation.ErrorResponse  "Book not found"
// @Failure      500     {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews/books/{bookId} [get]
func (h *ReviewHandler) ListReviewsByBook(c *gin.Context) {
	bookID, ok := parseID(c, "bookId", "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.books.Exists(ctx, bookID)
	if err != nil {
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
		return
	}

	reviews, err := h.reviews.ListByBook(ctx, bookID)
	if err != nil {
		writeInternalError(c, "REVIEW_LIST_FAILED", "failed to list reviews", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(reviews, toReviewDto))
}

// GetBookOfReview godoc
// @Summary      Get the book a review is about
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  BookDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Review not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews/{id}/book [get]
func (h *ReviewHandler) GetBookOfReview(c *gin.Context) {
	id, ok := parseID(c, "id", "REVIEW_INVALID_ID", "invalid review id")
	if !ok {
		return
	}

	book, err := h.reviews.FindBook(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
			return
		}
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}

	c.JSON(http.StatusOK, toBookDto(*book))
}

// CreateReview godoc
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateReviewRequest       true  "Review to create"
// @Success      201      {object}  ReviewDto
// @Header       201      {string}  Location  "/api/reviews/{id}"
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Book or reviewer not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	defer trackMutation(c, "review", "create")

	var req CreateReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if !h.checkReferences(c, req.BookID, req.ReviewerID) {
		return
	}

	review := model.Review{
		Headline:   req.Headline,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
		BookID:     req.BookID,
		ReviewerID: req.ReviewerID,
	}

	if err := h.reviews.Create(c.Request.Context(), &review); err != nil {
		if repository.IsForeignKeyViolation(err) {
			writeError(c, http.StatusNotFound, "REVIEW_REFERENCE_NOT_FOUND", "book or reviewer not found")
			return
		}
		writeInternalError(c, "REVIEW_CREATE_FAILED", "failed to create review", err)
		return
	}

	created(c, "reviews", review.ID, toReviewDto(review))
}

// UpdateReview godoc
// @Summary      Replace a review
// @Tags         reviews
// @Accept       json
// @Param        id       path  int                  true  "Review ID"
// @Param        payload  body  UpdateReviewRequest  true  "Review, id must match the path"
// @Success      204
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Review, book or reviewer not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	defer trackMutation(c, "review", "update")

	id, ok := parseID(c, "id", "REVIEW_INVALID_ID", "invalid review id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.ID != id {
		writeError(c, http.StatusBadRequest, "REVIEW_ID_MISMATCH", "review id in body does not match path")
		return
	}

	ctx := c.Request.Context()

	found, err := h.reviews.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "REVIEW_FETCH_FAILED", "failed to fetch review", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
		return
	}

	if !h.checkReferences(c, req.BookID, req.ReviewerID) {
		return
	}

	review := model.Review{
		ID:         id,
		Headline:   req.Headline,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
		BookID:     req.BookID,
		ReviewerID: req.ReviewerID,
	}

	if err := h.reviews.Update(ctx, &review); err != nil {
		switch {
		case repository.IsNotFound(err):
			writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
		case repository.IsForeignKeyViolation(err):
			writeError(c, http.StatusNotFound, "REVIEW_REFERENCE_NOT_FOUND", "book or reviewer not found")
		default:
			writeInternalError(c, "REVIEW_UPDATE_FAILED", "failed to update review", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        id   path  int  true  "Review ID"
// @Success      204
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Review not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	defer trackMutation(c, "review", "delete")

	id, ok := parseID(c, "id", "REVIEW_INVALID_ID", "invalid review id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	review, err := h.reviews.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
			return
		}
		writeInternalError(c, "REVIEW_FETCH_FAILED", "failed to fetch review", err)
		return
	}

	if err := h.reviews.Delete(ctx, review); err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", "review not found")
			return
		}
		writeInternalError(c, "REVIEW_DELETE_FAILED", "failed to delete review", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) checkReferences(c *gin.Context, bookID, reviewerID uint) bool {
	ctx := c.Request.Context()

	found, err := h.books.Exists(ctx, bookID)
	if err != nil {
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return false
	}
	if !found {
		writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
		return false
	}

	found, err = h.reviewers.Exists(ctx, reviewerID)
	if err != nil {
		writeInternalError(c, "REVIEWER_FETCH_FAILED", "failed to fetch reviewer", err)
		return false
	}
	if !found {
		writeError(c, http.StatusNotFound, "REVIEWER_NOT_FOUND", "reviewer not found")
		return false
	}

	return true
}
