package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

type AuthorHandler struct {
	authors   repository.AuthorRepository
	countries repository.CountryRepository
	books     repository.BookRepository
}

func NewAuthorHandler(
	authors repository.AuthorRepository,
	countries repository.CountryRepository,
	books repository.BookRepository,
) *AuthorHandler {
	return &AuthorHandler{authors: authors, countries: countries, books: books}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.GET("/books/:bookId", h.ListAuthorsByBook)
		authors.GET("/:id/books", h.ListBooksByAuthor)
		authors.POST("", h.CreateAuthor)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}
}

// ListAuthors godoc
// @Summary      List authors
// @Description  All authors ordered by last name
// @Tags         authors
// @Produce      json
// @Success      200  {array}   AuthorDto
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.authors.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, "AUTHOR_LIST_FAILED", "failed to list authors", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(authors, toAuthorDto))
}

// GetAuthorByID godoc
// @Summary      Get author by ID
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseID(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	author, err := h.authors.FindByID(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
			return
		}
		writeInternalError(c, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}

	c.JSON(http.StatusOK, toAuthorDto(*author))
}

// ListAuthorsByBook godoc
// @Summary      List the authors of a book
// @Tags         authors
// @Produce      json
// @Param        bookId  path      int  true  "Book ID"
// @Success      200     {array}   AuthorDto
// @Failure      400     {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404     {object}  validation.ErrorResponse  "Book not found"
// @Failure      500     {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/books/{bookId} [get]
func (h *AuthorHandler) ListAuthorsByBook(c *gin.Context) {
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

	authors, err := h.authors.ListByBook(ctx, bookID)
	if err != nil {
		writeInternalError(c, "AUTHOR_LIST_FAILED", "failed to list authors", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(authors, toAuthorDto))
}

// ListBooksByAuthor godoc
// @Summary      List the books of an author
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {array}   BookDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id}/books [get]
func (h *AuthorHandler) ListBooksByAuthor(c *gin.Context) {
	id, ok := parseID(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.authors.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		return
	}

	books, err := h.authors.ListBooks(ctx, id)
	if err != nil {
		writeInternalError(c, "BOOK_LIST_FAILED", "failed to list books", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(books, toBookDto))
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Create an author in an existing country
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest       true  "Author to create"
// @Success      201      {object}  AuthorDetail
// @Header       201      {string}  Location  "/api/authors/{id}"
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Country not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	defer trackMutation(c, "author", "create")

	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	country, err := h.countries.FindByID(ctx, req.Country.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
			return
		}
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}

	author := model.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CountryID: country.ID,
	}

	if err := h.authors.Create(ctx, &author); err != nil {
		if repository.IsForeignKeyViolation(err) {
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
			return
		}
		writeInternalError(c, "AUTHOR_CREATE_FAILED", "failed to create author", err)
		return
	}

	created(c, "authors", author.ID, toAuthorDetail(author, *country))
}

// UpdateAuthor godoc
// @Summary      Replace an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path  int                  true  "Author ID"
// @Param        payload  body  UpdateAuthorRequest  true  "Author, id must match the path"
// @Success      204
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Author or country not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	defer trackMutation(c, "author", "update")

	id, ok := parseID(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.ID != id {
		writeError(c, http.StatusBadRequest, "AUTHOR_ID_MISMATCH", "author id in body does not match path")
		return
	}

	ctx := c.Request.Context()

	found, err := h.authors.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		return
	}

	found, err = h.countries.Exists(ctx, req.Country.ID)
	if err != nil {
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
		return
	}

	author := model.Author{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CountryID: req.Country.ID,
	}

	if err := h.authors.Update(ctx, &author); err != nil {
		switch {
		case repository.IsNotFound(err):
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		case repository.IsForeignKeyViolation(err):
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
		default:
			writeInternalError(c, "AUTHOR_UPDATE_FAILED", "failed to update author", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Refused while the author is linked to any book
// @Tags         authors
// @Param        id   path  int  true  "Author ID"
// @Success      204
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      409  {object}  validation.ErrorResponse  "Author still has books"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	defer trackMutation(c, "author", "delete")

	id, ok := parseID(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	author, err := h.authors.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
			return
		}
		writeInternalError(c, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}

	books, err := h.authors.CountBooks(ctx, id)
	if err != nil {
		writeInternalError(c, "BOOK_LIST_FAILED", "failed to count author books", err)
		return
	}
	if books > 0 {
		writeError(c, http.StatusConflict, "AUTHOR_IN_USE", "author has books and cannot be deleted")
		return
	}

	if err := h.authors.Delete(ctx, author); err != nil {
		switch {
		case repository.IsNotFound(err):
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		case repository.IsForeignKeyViolation(err):
			writeError(c, http.StatusConflict, "AUTHOR_IN_USE", "author has books and cannot be deleted")
		default:
			writeInternalError(c, "AUTHOR_DELETE_FAILED", "failed to delete author", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
