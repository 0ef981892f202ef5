package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type AuthorRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	ListByBook(ctx context.Context, bookID uint) ([]model.Author, error)
	ListBooks(ctx context.Context, authorID uint) ([]model.Book, error)
	CountBooks(ctx context.Context, authorID uint) (int64, error)
	Create(ctx context.Context, author *model.Author) error
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, author *model.Author) error
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Author{}, id)
}

// FindByID also loads the author's country.
func (r *GormAuthorRepository) FindByID(ctx context.Context, id uint) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).
		Joins("Country").
		First(&author, "authors.id = ?", id).Error; err != nil {

		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).
		Order("last_name ASC").
		Order("id ASC").
		Find(&authors).Error; err != nil {

		return nil, err
	}
	return authors, nil
}

func (r *GormAuthorRepository) ListByBook(ctx context.Context, bookID uint) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).
		Joins("JOIN book_authors ON book_authors.author_id = authors.id").
		Where("book_authors.book_id = ?", bookID).
		Order("authors.last_name ASC").
		Order("authors.id ASC").
		Find(&authors).Error; err != nil {

		return nil, err
	}
	return authors, nil
}

func (r *GormAuthorRepository) ListBooks(ctx context.Context, authorID uint) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Joins("JOIN book_authors ON book_authors.book_id = books.id").
		Where("book_authors.author_id = ?", authorID).
		Order("books.title ASC").
		Order("books.id ASC").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormAuthorRepository) CountBooks(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BookAuthor{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error
}

func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	return updateColumns(r.db.WithContext(ctx), &model.Author{}, author.ID, map[string]any{
		"first_name": author.FirstName,
		"last_name":  author.LastName,
		"country_id": author.CountryID,
	})
}

func (r *GormAuthorRepository) Delete(ctx context.Context, author *model.Author) error {
	return deleteByID(r.db.WithContext(ctx), &model.Author{}, author.ID)
}
