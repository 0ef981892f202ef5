package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

type BookHandler struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
}

func NewBookHandler(books repository.BookRepository, authors repository.AuthorRepository) *BookHandler {
	return &BookHandler{books: books, authors: authors}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.GET("/isbn/:isbn", h.GetBookByISBN)
		books.GET("/:id/rating", h.GetBookRating)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

var duplicateISBN = validation.FieldError{
	Field:   "isbn",
	Rule:    "unique",
	Message: "a book with this isbn already exists",
}

// ListBooks godoc
// @Summary      List books
// @Description  All books ordered by title
// @Tags         books
// @Produce      json
// @Success      200  {array}   BookDto
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, "BOOK_LIST_FAILED", "failed to list books", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(books, toBookDto))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseID(c, "id", "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	book, err := h.books.FindByID(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}

	c.JSON(http.StatusOK, toBookDto(*book))
}

// GetBookByISBN godoc
// @Summary      Get a book by ISBN
// @Tags         books
// @Produce      json
// @Param        isbn  path      string  true  "ISBN"
// @Success      200   {object}  BookDto
// @Failure      400   {object}  validation.ErrorResponse  "Invalid ISBN"
// @Failure      404   {object}  validation.ErrorResponse  "Book not found"
// @Failure      500   {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/isbn/{isbn} [get]
func (h *BookHandler) GetBookByISBN(c *gin.Context) {
	isbn := strings.TrimSpace(c.Param("isbn"))
	if isbn == "" {
		writeError(c, http.StatusBadRequest, "BOOK_INVALID_ISBN", "invalid isbn")
		return
	}

	book, err := h.books.FindByISBN(c.Request.Context(), isbn)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}

	c.JSON(http.StatusOK, toBookDto(*book))
}

// GetBookRating godoc
// @Summary      Average rating of a book
// @Description  0 when the book has no reviews
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  RatingDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id}/rating [get]
func (h *BookHandler) GetBookRating(c *gin.Context) {
	id, ok := parseID(c, "id", "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.books.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
		return
	}

	avg, err := h.books.AverageRating(ctx, id)
	if err != nil {
		writeInternalError(c, "BOOK_RATING_FAILED", "failed to compute book rating", err)
		return
	}

	c.JSON(http.StatusOK, RatingDto{BookID: id, Average: avg})
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book written by one or more existing authors
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest         true  "Book to create"
// @Success      201      {object}  BookDto
// @Header       201      {string}  Location  "/api/books/{id}"
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Failure      422      {object}  validation.ErrorResponse  "Duplicate ISBN"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	defer trackMutation(c, "book", "create")

	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	if !h.checkAuthors(c, req.AuthorIDs) {
		return
	}

	dup, err := h.books.ISBNExists(ctx, req.Isbn)
	if err != nil {
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to check isbn", err)
		return
	}
	if dup {
		writeFieldErrors(c, http.StatusUnprocessableEntity, "BOOK_DUPLICATE_ISBN", "book already exists", duplicateISBN)
		return
	}

	book := model.Book{
		Title:         req.Title,
		Isbn:          req.Isbn,
		DatePublished: req.DatePublished.TimePtr(),
	}

	if err := h.books.Create(ctx, &book, req.AuthorIDs); err != nil {
		switch {
		case repository.IsDuplicateKey(err):
			writeFieldErrors(c, http.StatusUnprocessableEntity, "BOOK_DUPLICATE_ISBN", "book already exists", duplicateISBN)
		case repository.IsForeignKeyViolation(err):
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		default:
			writeInternalError(c, "BOOK_CREATE_FAILED", "failed to create book", err)
		}
		return
	}

	created(c, "books", book.ID, toBookDto(book))
}

// UpdateBook godoc
// @Summary      Replace a book
// @Description  Omitting authorIds keeps the current authors
// @Tags         books
// @Accept       json
// @Param        id       path  int                true  "Book ID"
// @Param        payload  body  UpdateBookRequest  true  "Book, id must match the path"
// @Success      204
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Book or author not found"
// @Failure      422      {object}  validation.ErrorResponse  "Duplicate ISBN"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	defer trackMutation(c, "book", "update")

	id, ok := parseID(c, "id", "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.ID != id {
		writeError(c, http.StatusBadRequest, "BOOK_ID_MISMATCH", "book id in body does not match path")
		return
	}

	ctx := c.Request.Context()

	found, err := h.books.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
		return
	}

	var authorIDs []uint
	if len(req.AuthorIDs) > 0 {
		authorIDs = req.AuthorIDs
		if !h.checkAuthors(c, authorIDs) {
			return
		}
	}

	dup, err := h.books.IsDuplicateISBN(ctx, id, req.Isbn)
	if err != nil {
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to check isbn", err)
		return
	}
	if dup {
		writeFieldErrors(c, http.StatusUnprocessableEntity, "BOOK_DUPLICATE_ISBN", "book already exists", duplicateISBN)
		return
	}

	book := model.Book{
		ID:            id,
		Title:         req.Title,
		Isbn:          req.Isbn,
		DatePublished: req.DatePublished.TimePtr(),
	}

	if err := h.books.Update(ctx, &book, authorIDs); err != nil {
		switch {
		case repository.IsNotFound(err):
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
		case repository.IsDuplicateKey(err):
			writeFieldErrors(c, http.StatusUnprocessableEntity, "BOOK_DUPLICATE_ISBN", "book already exists", duplicateISBN)
		case repository.IsForeignKeyViolation(err):
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		default:
			writeInternalError(c, "BOOK_UPDATE_FAILED", "failed to update book", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Also removes the book's reviews and author links
// @Tags         books
// @Param        id   path  int  true  "Book ID"
// @Success      204
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	defer trackMutation(c, "book", "delete")

	id, ok := parseID(c, "id", "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	book, err := h.books.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		writeInternalError(c, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}

	if err := h.books.Delete(ctx, book); err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		writeInternalError(c, "BOOK_DELETE_FAILED", "failed to delete book", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// checkAuthors writes a 404 naming the first unknown author id.
func (h *BookHandler) checkAuthors(c *gin.Context, ids []uint) bool {
	ctx := c.Request.Context()

	for _, id := range ids {
		found, err := h.authors.Exists(ctx, id)
		if err != nil {
			writeInternalError(c, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
			return false
		}
		if !found {
			writeFieldErrors(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found", validation.FieldError{
				Field:   "authorIds",
				Rule:    "exists",
				Message: "author " + strconv.FormatUint(uint64(id), 10) + " does not exist",
			})
			return false
		}
	}

	return true
}
