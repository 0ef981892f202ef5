package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

type CountryHandler struct {
	countries repository.CountryRepository
	authors   repository.AuthorRepository
}

func NewCountryHandler(countries repository.CountryRepository, authors repository.AuthorRepository) *CountryHandler {
	return &CountryHandler{countries: countries, authors: authors}
}

func (h *CountryHandler) RegisterRoutes(r *gin.RouterGroup) {
	countries := r.Group("/countries")
	{
		countries.GET("", h.ListCountries)
		countries.GET("/:id", h.GetCountryByID)
		countries.GET("/authors/:authorId", h.GetCountryOfAuthor)
		countries.GET("/:id/authors", h.ListAuthorsFromCountry)
		countries.POST("", h.CreateCountry)
		countries.PUT("/:id", h.UpdateCountry)
		countries.DELETE("/:id", h.DeleteCountry)
	}
}

var duplicateCountryName = validation.FieldError{
	Field:   "name",
	Rule:    "unique",
	Message: "a country with this name already exists",
}

// ListCountries godoc
// @Summary      List countries
// @Description  All countries ordered by name
// @Tags         countries
// @Produce      json
// @Success      200  {array}   CountryDto
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries [get]
func (h *CountryHandler) ListCountries(c *gin.Context) {
	countries, err := h.countries.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, "COUNTRY_LIST_FAILED", "failed to list countries", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(countries, toCountryDto))
}

// GetCountryByID godoc
// @Summary      Get country by ID
// @Tags         countries
// @Produce      json
// @Param        id   path      int  true  "Country ID"
// @Success      200  {object}  CountryDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Country not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries/{id} [get]
func (h *CountryHandler) GetCountryByID(c *gin.Context) {
	id, ok := parseID(c, "id", "COUNTRY_INVALID_ID", "invalid country id")
	if !ok {
		return
	}

	country, err := h.countries.FindByID(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
			return
		}
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}

	c.JSON(http.StatusOK, toCountryDto(*country))
}

// GetCountryOfAuthor godoc
// @Summary      Get the country of an author
// @Tags         countries
// @Produce      json
// @Param        authorId  path      int  true  "Author ID"
// @Success      200       {object}  CountryDto
// @Failure      400       {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404       {object}  validation.ErrorResponse  "Author not found"
// @Failure      500       {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries/authors/{authorId} [get]
func (h *CountryHandler) GetCountryOfAuthor(c *gin.Context) {
	authorID, ok := parseID(c, "authorId", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.authors.Exists(ctx, authorID)
	if err != nil {
		writeInternalError(c, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		return
	}

	country, err := h.countries.FindByAuthor(ctx, authorID)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
			return
		}
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}

	c.JSON(http.StatusOK, toCountryDto(*country))
}

// ListAuthorsFromCountry godoc
// @Summary      List the authors from a country
// @Tags         countries
// @Produce      json
// @Param        id   path      int  true  "Country ID"
// @Success      200  {array}   AuthorDto
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Country not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries/{id}/authors [get]
func (h *CountryHandler) ListAuthorsFromCountry(c *gin.Context) {
	id, ok := parseID(c, "id", "COUNTRY_INVALID_ID", "invalid country id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	found, err := h.countries.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
		return
	}

	authors, err := h.countries.ListAuthors(ctx, id)
	if err != nil {
		writeInternalError(c, "AUTHOR_LIST_FAILED", "failed to list authors", err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(authors, toAuthorDto))
}

// CreateCountry godoc
// @Summary      Create a country
// @Tags         countries
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateCountryRequest      true  "Country to create"
// @Success      201      {object}  CountryDto
// @Header       201      {string}  Location  "/api/countries/{id}"
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      422      {object}  validation.ErrorResponse  "Duplicate name"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries [post]
func (h *CountryHandler) CreateCountry(c *gin.Context) {
	defer trackMutation(c, "country", "create")

	var req CreateCountryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	dup, err := h.countries.IsDuplicateName(ctx, 0, req.Name)
	if err != nil {
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to check country name", err)
		return
	}
	if dup {
		writeFieldErrors(c, http.StatusUnprocessableEntity, "COUNTRY_DUPLICATE_NAME", "country already exists", duplicateCountryName)
		return
	}

	country := model.Country{Name: req.Name}
	if err := h.countries.Create(ctx, &country); err != nil {
		if repository.IsDuplicateKey(err) {
			writeFieldErrors(c, http.StatusUnprocessableEntity, "COUNTRY_DUPLICATE_NAME", "country already exists", duplicateCountryName)
			return
		}
		writeInternalError(c, "COUNTRY_CREATE_FAILED", "failed to create country", err)
		return
	}

	created(c, "countries", country.ID, toCountryDto(country))
}

// UpdateCountry godoc
// @Summary      Replace a country
// @Tags         countries
// @Accept       json
// @Param        id       path  int                   true  "Country ID"
// @Param        payload  body  UpdateCountryRequest  true  "Country, id must match the path"
// @Success      204
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Country not found"
// @Failure      422      {object}  validation.ErrorResponse  "Duplicate name"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries/{id} [put]
func (h *CountryHandler) UpdateCountry(c *gin.Context) {
	defer trackMutation(c, "country", "update")

	id, ok := parseID(c, "id", "COUNTRY_INVALID_ID", "invalid country id")
	if !ok {
		return
	}

	var req UpdateCountryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.ID != id {
		writeError(c, http.StatusBadRequest, "COUNTRY_ID_MISMATCH", "country id in body does not match path")
		return
	}

	ctx := c.Request.Context()

	found, err := h.countries.Exists(ctx, id)
	if err != nil {
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
		return
	}

	dup, err := h.countries.IsDuplicateName(ctx, id, req.Name)
	if err != nil {
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to check country name", err)
		return
	}
	if dup {
		writeFieldErrors(c, http.StatusUnprocessableEntity, "COUNTRY_DUPLICATE_NAME", "country already exists", duplicateCountryName)
		return
	}

	country := model.Country{ID: id, Name: req.Name}
	if err := h.countries.Update(ctx, &country); err != nil {
		switch {
		case repository.IsNotFound(err):
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
			return
		case repository.IsDuplicateKey(err):
			writeFieldErrors(c, http.StatusUnprocessableEntity, "COUNTRY_DUPLICATE_NAME", "country already exists", duplicateCountryName)
			return
		}
		writeInternalError(c, "COUNTRY_UPDATE_FAILED", "failed to update country", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCountry godoc
// @Summary      Delete a country
// @Description  Refused while any author references the country
// @Tags         countries
// @Param        id   path  int  true  "Country ID"
// @Success      204
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Country not found"
// @Failure      409  {object}  validation.ErrorResponse  "Country still has authors"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /countries/{id} [delete]
func (h *CountryHandler) DeleteCountry(c *gin.Context) {
	defer trackMutation(c, "country", "delete")

	id, ok := parseID(c, "id", "COUNTRY_INVALID_ID", "invalid country id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	country, err := h.countries.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
			return
		}
		writeInternalError(c, "COUNTRY_FETCH_FAILED", "failed to fetch country", err)
		return
	}

	authors, err := h.countries.CountAuthors(ctx, id)
	if err != nil {
		writeInternalError(c, "AUTHOR_LIST_FAILED", "failed to count country authors", err)
		return
	}
	if authors > 0 {
		writeError(c, http.StatusConflict, "COUNTRY_IN_USE", "country has authors and cannot be deleted")
		return
	}

	if err := h.countries.Delete(ctx, country); err != nil {
		switch {
		case repository.IsNotFound(err):
			writeError(c, http.StatusNotFound, "COUNTRY_NOT_FOUND", "country not found")
		case repository.IsForeignKeyViolation(err):
			writeError(c, http.StatusConflict, "COUNTRY_IN_USE", "country has authors and cannot be deleted")
		default:
			writeInternalError(c, "COUNTRY_DELETE_FAILED", "failed to delete country", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
