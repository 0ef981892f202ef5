package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small sample catalog into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()

		database, err := db.ConnectWithRetry(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(database) }()

		if err := db.Migrate(database); err != nil {
			return err
		}

		return seed(ctx, database)
	},
}

// seed loads the sample catalog in one transaction, so a failure leaves
// the database as it was and a later run can retry.
func seed(ctx context.Context, database *gorm.DB) error {
	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return seedCatalog(ctx, handler.NewGormRepositories(tx))
	})
}

type seedBook struct {
	title     string
	isbn      string
	published string
	authors   []string
}

// seedCatalog is a no-op when any country already exists.
func seedCatalog(ctx context.Context, repos handler.Repositories) error {
	existing, err := repos.Countries.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("catalog already seeded", zap.Int("countries", len(existing)))
		return nil
	}

	countries := map[string]*model.Country{}
	for _, name := range []string{"United Kingdom", "Italy", "Nigeria"} {
		c := &model.Country{Name: name}
		if err := repos.Countries.Create(ctx, c); err != nil {
			return fmt.Errorf("seed country %s: %w", name, err)
		}
		countries[name] = c
	}

	authors := map[string]*model.Author{}
	for _, a := range []struct{ first, last, country string }{
		{"Terry", "Pratchett", "United Kingdom"},
		{"Neil", "Gaiman", "United Kingdom"},
		{"Italo", "Calvino", "Italy"},
		{"Chinua", "Achebe", "Nigeria"},
	} {
		author := &model.Author{FirstName: a.first, LastName: a.last, CountryID: countries[a.country].ID}
		if err := repos.Authors.Create(ctx, author); err != nil {
			return fmt.Errorf("seed author %s: %w", a.last, err)
		}
		authors[a.last] = author
	}

	books := make([]*model.Book, 0, 4)
	for _, b := range []seedBook{
		{"Good Omens", "0575048530", "1990-05-01", []string{"Pratchett", "Gaiman"}},
		{"Mort", "0575038470", "1987-11-12", []string{"Pratchett"}},
		{"Invisible Cities", "0156453800", "1972-11-01", []string{"Calvino"}},
		{"Things Fall Apart", "0385474547", "1958-06-17", []string{"Achebe"}},
	} {
		published, err := time.Parse(model.DateLayout, b.published)
		if err != nil {
			return err
		}

		ids := make([]uint, 0, len(b.authors))
		for _, last := range b.authors {
			ids = append(ids, authors[last].ID)
		}

		book := &model.Book{Title: b.title, Isbn: b.isbn, DatePublished: &published}
		if err := repos.Books.Create(ctx, book, ids); err != nil {
			return fmt.Errorf("seed book %s: %w", b.title, err)
		}
		books = append(books, book)
	}

	reviewer := &model.Reviewer{FirstName: "Ann", LastName: "Critic"}
	if err := repos.Reviewers.Create(ctx, reviewer); err != nil {
		return fmt.Errorf("seed reviewer: %w", err)
	}

	for i, book := range books {
		review := &model.Review{
			Headline:   "On " + book.Title,
			ReviewText: "Worth reading more than once.",
			Rating:     5 - i%3,
			BookID:     book.ID,
			ReviewerID: reviewer.ID,
		}
		if err := repos.Reviews.Create(ctx, review); err != nil {
			return fmt.Errorf("seed review for %s: %w", book.Title, err)
		}
	}

	logger.Info("catalog seeded",
		zap.Int("countries", len(countries)),
		zap.Int("authors", len(authors)),
		zap.Int("books", len(books)),
	)
	return nil
}
