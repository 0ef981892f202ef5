package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/testutil"
)

// fakeAuthorRepo delegates to a real repository unless a hook is set.
type fakeAuthorRepo struct {
	repository.AuthorRepository
	ListFn   func(ctx context.Context) ([]model.Author, error)
	UpdateFn func(ctx context.Context, a *model.Author) error
	DeleteFn func(ctx context.Context, a *model.Author) error
}

func (f *fakeAuthorRepo) List(ctx context.Context) ([]model.Author, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return f.AuthorRepository.List(ctx)
}

func (f *fakeAuthorRepo) Update(ctx context.Context, a *model.Author) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, a)
	}
	return f.AuthorRepository.Update(ctx, a)
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, a *model.Author) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, a)
	}
	return f.AuthorRepository.Delete(ctx, a)
}

func TestCreateAuthor_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	country := testutil.SeedCountry(t, db, "Netherlands")

	w := doJSON(t, router, http.MethodPost, "/api/authors", map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"country":   map[string]any{"id": country.ID},
	})
	expectStatus(t, w, http.StatusCreated)

	resp := decodeJSON[AuthorDetail](t, w)
	if resp.ID == 0 {
		t.Fatalf("expected id > 0")
	}
	if resp.FirstName != "Jane" || resp.LastName != "Doe" {
		t.Errorf("unexpected name %q %q", resp.FirstName, resp.LastName)
	}
	if resp.Country.ID != country.ID || resp.Country.Name != "Netherlands" {
		t.Errorf("unexpected country %+v", resp.Country)
	}

	wantLocation := fmt.Sprintf("/api/authors/%d", resp.ID)
	if got := w.Header().Get("Location"); got != wantLocation {
		t.Errorf("expected Location %q, got %q", wantLocation, got)
	}

	w = doJSON(t, router, http.MethodGet, wantLocation, nil)
	expectStatus(t, w, http.StatusOK)

	got := decodeJSON[AuthorDto](t, w)
	if got != (AuthorDto{ID: resp.ID, FirstName: "Jane", LastName: "Doe"}) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateAuthor_UnknownCountry(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPost, "/api/authors", map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"country":   map[string]any{"id": 99},
	})
	expectErrorCode(t, w, http.StatusNotFound, "COUNTRY_NOT_FOUND")
}

func TestCreateAuthor_InvalidBody(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"missing body", nil, "INVALID_REQUEST"},
		{"malformed json", `{"firstName":`, "INVALID_REQUEST"},
		{"null body", "null", "VALIDATION_FAILED"},
		{"missing last name", map[string]any{"firstName": "Jane", "country": map[string]any{"id": 1}}, "VALIDATION_FAILED"},
		{"missing country", map[string]any{"firstName": "Jane", "lastName": "Doe"}, "VALIDATION_FAILED"},
		{"blank first name", map[string]any{"firstName": "  ", "lastName": "Doe", "country": map[string]any{"id": 1}}, "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/authors", tt.body)
			expectErrorCode(t, w, http.StatusBadRequest, tt.code)
		})
	}
}

func TestCreateAuthor_FieldErrorNames(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPost, "/api/authors", map[string]any{
		"lastName": "Doe",
		"country":  map[string]any{"id": 1},
	})
	resp := expectErrorCode(t, w, http.StatusBadRequest, "VALIDATION_FAILED")

	if len(resp.Errors) != 1 || resp.Errors[0].Field != "firstName" || resp.Errors[0].Rule != "required" {
		t.Fatalf("unexpected field errors: %+v", resp.Errors)
	}
}

func TestListAuthors_OrderedByLastName(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	c := testutil.SeedCountry(t, db, "UK")
	testutil.SeedAuthor(t, db, c, "Zadie", "Smith")
	testutil.SeedAuthor(t, db, c, "Jane", "Austen")
	testutil.SeedAuthor(t, db, c, "Charles", "Dickens")

	w := doJSON(t, router, http.MethodGet, "/api/authors", nil)
	expectStatus(t, w, http.StatusOK)

	authors := decodeJSON[[]AuthorDto](t, w)
	want := []string{"Austen", "Dickens", "Smith"}
	if len(authors) != len(want) {
		t.Fatalf("expected %d authors, got %d", len(want), len(authors))
	}
	for i, name := range want {
		if authors[i].LastName != name {
			t.Errorf("position %d: expected %q, got %q", i, name, authors[i].LastName)
		}
	}
}

func TestListAuthors_RepoError(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewGormRepositories(db)
	repos.Authors = &fakeAuthorRepo{
		AuthorRepository: repos.Authors,
		ListFn: func(ctx context.Context) ([]model.Author, error) {
			return nil, errors.New("db down")
		},
	}
	router := setupTestRouterWithRepos(repos)

	w := doJSON(t, router, http.MethodGet, "/api/authors", nil)
	expectErrorCode(t, w, http.StatusInternalServerError, "AUTHOR_LIST_FAILED")
}

func TestGetAuthor_InvalidAndMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	for _, path := range []string{"/api/authors/abc", "/api/authors/0", "/api/authors/-3"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		expectErrorCode(t, w, http.StatusBadRequest, "AUTHOR_INVALID_ID")
	}

	w := doJSON(t, router, http.MethodGet, "/api/authors/12", nil)
	expectErrorCode(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")
}

func TestAuthorBookLookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	c := testutil.SeedCountry(t, db, "UK")
	pratchett := testutil.SeedAuthor(t, db, c, "Terry", "Pratchett")
	gaiman := testutil.SeedAuthor(t, db, c, "Neil", "Gaiman")
	omens := testutil.SeedBook(t, db, "Good Omens", "0575048530", nil, pratchett, gaiman)
	testutil.SeedBook(t, db, "Mort", "0575038470", nil, pratchett)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/authors/books/%d", omens.ID), nil)
	expectStatus(t, w, http.StatusOK)
	if authors := decodeJSON[[]AuthorDto](t, w); len(authors) != 2 || authors[0].LastName != "Gaiman" {
		t.Fatalf("unexpected authors of book: %+v", authors)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/authors/%d/books", pratchett.ID), nil)
	expectStatus(t, w, http.StatusOK)
	if books := decodeJSON[[]BookDto](t, w); len(books) != 2 || books[0].Title != "Good Omens" {
		t.Fatalf("unexpected books of author: %+v", books)
	}

	w = doJSON(t, router, http.MethodGet, "/api/authors/books/999", nil)
	expectErrorCode(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")

	w = doJSON(t, router, http.MethodGet, "/api/authors/999/books", nil)
	expectErrorCode(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")

	w = doJSON(t, router, http.MethodGet, "/api/authors/books/x", nil)
	expectErrorCode(t, w, http.StatusBadRequest, "BOOK_INVALID_ID")
}

func TestUpdateAuthor_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	uk := testutil.SeedCountry(t, db, "UK")
	ie := testutil.SeedCountry(t, db, "Ireland")
	a := testutil.SeedAuthor(t, db, uk, "James", "Joyce")

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/authors/%d", a.ID), map[string]any{
		"id":        a.ID,
		"firstName": "James A.",
		"lastName":  "Joyce",
		"country":   map[string]any{"id": ie.ID},
	})
	expectStatus(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}

	var stored model.Author
	if err := db.First(&stored, a.ID).Error; err != nil {
		t.Fatalf("failed to reload author: %v", err)
	}
	if stored.FirstName != "James A." || stored.CountryID != ie.ID {
		t.Errorf("author not updated: %+v", stored)
	}
}

func TestUpdateAuthor_IDMismatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPut, "/api/authors/5", map[string]any{
		"id":        6,
		"firstName": "Jane",
		"lastName":  "Doe",
		"country":   map[string]any{"id": 1},
	})
	expectErrorCode(t, w, http.StatusBadRequest, "AUTHOR_ID_MISMATCH")
}

func TestUpdateAuthor_MissingReferences(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	c := testutil.SeedCountry(t, db, "UK")
	a := testutil.SeedAuthor(t, db, c, "James", "Joyce")

	w := doJSON(t, router, http.MethodPut, "/api/authors/77", map[string]any{
		"id": 77, "firstName": "X", "lastName": "Y", "country": map[string]any{"id": c.ID},
	})
	expectErrorCode(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/authors/%d", a.ID), map[string]any{
		"id": a.ID, "firstName": "X", "lastName": "Y", "country": map[string]any{"id": 404},
	})
	expectErrorCode(t, w, http.StatusNotFound, "COUNTRY_NOT_FOUND")
}

func TestUpdateAuthor_PersistenceFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	c := testutil.SeedCountry(t, db, "UK")
	a := testutil.SeedAuthor(t, db, c, "James", "Joyce")

	repos := NewGormRepositories(db)
	repos.Authors = &fakeAuthorRepo{
		AuthorRepository: repos.Authors,
		UpdateFn: func(ctx context.Context, a *model.Author) error {
			return errors.New("disk full")
		},
	}
	router := setupTestRouterWithRepos(repos)

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/authors/%d", a.ID), map[string]any{
		"id": a.ID, "firstName": "X", "lastName": "Y", "country": map[string]any{"id": c.ID},
	})
	expectErrorCode(t, w, http.StatusInternalServerError, "AUTHOR_UPDATE_FAILED")
}

func TestDeleteAuthor_WithBooksConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	c := testutil.SeedCountry(t, db, "UK")
	a := testutil.SeedAuthor(t, db, c, "Terry", "Pratchett")
	testutil.SeedBook(t, db, "Mort", "0575038470", nil, a)
	testutil.SeedBook(t, db, "Eric", "0575046361", nil, a)

	path := fmt.Sprintf("/api/authors/%d", a.ID)

	w := doJSON(t, router, http.MethodDelete, path, nil)
	expectErrorCode(t, w, http.StatusConflict, "AUTHOR_IN_USE")

	w = doJSON(t, router, http.MethodGet, path, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestDeleteAuthor_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	c := testutil.SeedCountry(t, db, "UK")
	a := testutil.SeedAuthor(t, db, c, "Eric", "Idle")
	path := fmt.Sprintf("/api/authors/%d", a.ID)

	w := doJSON(t, router, http.MethodDelete, path, nil)
	expectStatus(t, w, http.StatusNoContent)

	w = doJSON(t, router, http.MethodGet, path, nil)
	expectErrorCode(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")

	w = doJSON(t, router, http.MethodDelete, path, nil)
	expectErrorCode(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")
}

func TestDeleteAuthor_PersistenceFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	c := testutil.SeedCountry(t, db, "UK")
	a := testutil.SeedAuthor(t, db, c, "Eric", "Idle")

	repos := NewGormRepositories(db)
	repos.Authors = &fakeAuthorRepo{
		AuthorRepository: repos.Authors,
		DeleteFn: func(ctx context.Context, a *model.Author) error {
			return errors.New("locked")
		},
	}
	router := setupTestRouterWithRepos(repos)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/authors/%d", a.ID), nil)
	expectErrorCode(t, w, http.StatusInternalServerError, "AUTHOR_DELETE_FAILED")
}
