package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type BookRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	ISBNExists(ctx context.Context, isbn string) (bool, error)
	IsDuplicateISBN(ctx context.Context, id uint, isbn string) (bool, error)
	AverageRating(ctx context.Context, bookID uint) (float64, error)
	Create(ctx context.Context, book *model.Book, authorIDs []uint) error
	Update(ctx context.Context, book *model.Book, authorIDs []uint) error
	Delete(ctx context.Context, book *model.Book) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Book{}, id)
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Where("isbn = ?", model.NormalizeISBN(isbn)).
		First(&book).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Order("title ASC").
		Order("id ASC").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) ISBNExists(ctx context.Context, isbn string) (bool, error) {
	return r.IsDuplicateISBN(ctx, 0, isbn)
}

// IsDuplicateISBN matches the normalized ISBN and ignores the book with the
// given id.
func (r *GormBookRepository) IsDuplicateISBN(ctx context.Context, id uint, isbn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("isbn = ? AND id <> ?", model.NormalizeISBN(isbn), id).
		Count(&count).Error
	return count > 0, err
}

// AverageRating is 0 for a book without reviews.
func (r *GormBookRepository) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("book_id = ?", bookID).
		Scan(&avg).Error
	return avg, err
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book, authorIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(book).Error; err != nil {
			return err
		}
		return linkAuthors(tx, book.ID, authorIDs)
	})
}

// Update rewrites the book's columns. A nil authorIDs keeps the existing
// author links, anything else replaces them.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book, authorIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateColumns(tx, &model.Book{}, book.ID, map[string]any{
			"title":          book.Title,
			"isbn":           model.NormalizeISBN(book.Isbn),
			"date_published": book.DatePublished,
		}); err != nil {
			return err
		}

		if authorIDs == nil {
			return nil
		}

		if err := tx.Where("book_id = ?", book.ID).Delete(&model.BookAuthor{}).Error; err != nil {
			return err
		}
		return linkAuthors(tx, book.ID, authorIDs)
	})
}

// Delete removes the book together with its reviews and author links.
func (r *GormBookRepository) Delete(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", book.ID).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", book.ID).Delete(&model.BookAuthor{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &model.Book{}, book.ID)
	})
}

func linkAuthors(tx *gorm.DB, bookID uint, authorIDs []uint) error {
	links := make([]model.BookAuthor, 0, len(authorIDs))
	seen := make(map[uint]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, model.BookAuthor{BookID: bookID, AuthorID: id})
	}

	if len(links) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}
