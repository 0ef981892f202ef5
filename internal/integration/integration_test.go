//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

var (
	testDB     *gorm.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		DBDriver:           config.DriverPostgres,
		DBHost:             os.Getenv("POSTGRES_HOST"),
		DBPort:             os.Getenv("POSTGRES_PORT"),
		DBUser:             os.Getenv("POSTGRES_USER"),
		DBPass:             os.Getenv("POSTGRES_PASSWORD"),
		DBName:             os.Getenv("POSTGRES_DB"),
		DBSSLMode:          "disable",
		TZ:                 os.Getenv("TZ"),
		DBMaxOpenConns:     5,
		DBMaxIdleConns:     2,
		DBConnMaxLifetime:  time.Minute,
		DBConnectAttempts:  5,
		DBConnectRetryWait: time.Second,
	}
	if cfg.TZ == "" {
		cfg.TZ = "UTC"
	}

	database, err := db.ConnectWithRetry(context.Background(), cfg)
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = database

	if err := db.Migrate(database); err != nil {
		panic("failed to migrate: " + err.Error())
	}

	gin.SetMode(gin.TestMode)
	validation.RegisterJSONFieldNames()

	r := gin.New()
	handler.RegisterAPI(r.Group("/api"), handler.NewGormRepositories(database))
	testRouter = r

	code := m.Run()
	_ = db.Close(database)
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	err := testDB.Exec("TRUNCATE TABLE reviews, book_authors, books, reviewers, authors, countries RESTART IDENTITY CASCADE;").Error
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func send(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func createID(t *testing.T, client *http.Client, url string, body any) uint {
	t.Helper()

	resp := send(t, client, http.MethodPost, url, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 from POST %s, got %d", url, resp.StatusCode)
	}

	var created struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected id in create response")
	}
	return created.ID
}

func TestAuthorLifecycle_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	countryID := createID(t, client, srv.URL+"/api/countries", map[string]any{"name": "United Kingdom"})
	authorID := createID(t, client, srv.URL+"/api/authors", map[string]any{
		"firstName": "Terry",
		"lastName":  "Pratchett",
		"country":   map[string]any{"id": countryID},
	})
	createID(t, client, srv.URL+"/api/books", map[string]any{
		"title":     "Mort",
		"isbn":      "0575038470",
		"authorIds": []uint{authorID},
	})

	authorURL := fmt.Sprintf("%s/api/authors/%d", srv.URL, authorID)

	if resp := send(t, client, http.MethodDelete, authorURL, nil); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 deleting author with books, got %d", resp.StatusCode)
	}
	if resp := send(t, client, http.MethodGet, authorURL, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected author to survive, got %d", resp.StatusCode)
	}

	countryURL := fmt.Sprintf("%s/api/countries/%d", srv.URL, countryID)
	if resp := send(t, client, http.MethodDelete, countryURL, nil); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 deleting country with authors, got %d", resp.StatusCode)
	}
}

func TestCountryDuplicateName_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	createID(t, client, srv.URL+"/api/countries", map[string]any{"name": "Chile"})

	resp := send(t, client, http.MethodPost, srv.URL+"/api/countries", map[string]any{"name": " CHILE "})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate name, got %d", resp.StatusCode)
	}
}

func TestBookDeleteCascades_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	countryID := createID(t, client, srv.URL+"/api/countries", map[string]any{"name": "USA"})
	authorID := createID(t, client, srv.URL+"/api/authors", map[string]any{
		"firstName": "Frank", "lastName": "Herbert", "country": map[string]any{"id": countryID},
	})
	bookID := createID(t, client, srv.URL+"/api/books", map[string]any{
		"title": "Dune", "isbn": "0441172717", "datePublished": "1965-08-01", "authorIds": []uint{authorID},
	})
	reviewerID := createID(t, client, srv.URL+"/api/reviewers", map[string]any{"firstName": "Ann", "lastName": "Critic"})
	reviewID := createID(t, client, srv.URL+"/api/reviews", map[string]any{
		"headline": "Spice", "reviewText": "Still great.", "rating": 5, "bookId": bookID, "reviewerId": reviewerID,
	})

	resp := send(t, client, http.MethodPost, srv.URL+"/api/books", map[string]any{
		"title": "Dune again", "isbn": "0441172717", "authorIds": []uint{authorID},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate isbn, got %d", resp.StatusCode)
	}

	resp = send(t, client, http.MethodDelete, fmt.Sprintf("%s/api/books/%d", srv.URL, bookID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 deleting book, got %d", resp.StatusCode)
	}

	resp = send(t, client, http.MethodGet, fmt.Sprintf("%s/api/reviews/%d", srv.URL, reviewID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected review to be removed with its book, got %d", resp.StatusCode)
	}

	resp = send(t, client, http.MethodDelete, fmt.Sprintf("%s/api/authors/%d", srv.URL, authorID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected author delete to succeed once unlinked, got %d", resp.StatusCode)
	}
}
