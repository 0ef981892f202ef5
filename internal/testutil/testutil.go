// Package testutil builds throwaway sqlite databases and seeds catalog rows
// for handler and repository tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

// NewTestDB returns a migrated in-memory database private to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database := openMemory(t, "testdb_")
	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

// NewEmptyDB returns a database without any tables, so every query fails.
func NewEmptyDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openMemory(t, "errdb_")
}

func openMemory(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := db.SQLiteDSN("file:" + prefix + uuid.New().String() + "?mode=memory&cache=shared")

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := (db.SQLiteDriver{}).Configure(database); err != nil {
		t.Fatalf("failed to configure test database: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func SeedCountry(t *testing.T, database *gorm.DB, name string) model.Country {
	t.Helper()

	country := model.Country{Name: name}
	if err := database.Create(&country).Error; err != nil {
		t.Fatalf("failed to seed country %q: %v", name, err)
	}
	return country
}

func SeedAuthor(t *testing.T, database *gorm.DB, country model.Country, firstName, lastName string) model.Author {
	t.Helper()

	author := model.Author{
		FirstName: firstName,
		LastName:  lastName,
		CountryID: country.ID,
	}
	if err := database.Omit("Country").Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", lastName, err)
	}
	return author
}

// SeedBook stores a book and links it to the given authors.
func SeedBook(t *testing.T, database *gorm.DB, title, isbn string, published *time.Time, authors ...model.Author) model.Book {
	t.Helper()

	book := model.Book{
		Title:         title,
		Isbn:          isbn,
		DatePublished: published,
	}
	if err := database.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	for _, a := range authors {
		link := model.BookAuthor{BookID: book.ID, AuthorID: a.ID}
		if err := database.Omit("Book", "Author").Create(&link).Error; err != nil {
			t.Fatalf("failed to link book %q to author %d: %v", title, a.ID, err)
		}
	}

	return book
}

func SeedReviewer(t *testing.T, database *gorm.DB, firstName, lastName string) model.Reviewer {
	t.Helper()

	reviewer := model.Reviewer{FirstName: firstName, LastName: lastName}
	if err := database.Create(&reviewer).Error; err != nil {
		t.Fatalf("failed to seed reviewer %q: %v", lastName, err)
	}
	return reviewer
}

func SeedReview(t *testing.T, database *gorm.DB, book model.Book, reviewer model.Reviewer, headline string, rating int) model.Review {
	t.Helper()

	review := model.Review{
		Headline:   headline,
		ReviewText: "Review of " + book.Title,
		Rating:     rating,
		BookID:     book.ID,
		ReviewerID: reviewer.ID,
	}
	if err := database.Omit("Book", "Reviewer").Create(&review).Error; err != nil {
		t.Fatalf("failed to seed review %q: %v", headline, err)
	}
	return review
}
