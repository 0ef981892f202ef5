package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type ReviewRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	ListByBook(ctx context.Context, bookID uint) ([]model.Review, error)
	FindBook(ctx context.Context, reviewID uint) (*model.Book, error)
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, review *model.Review) error
	DeleteMany(ctx context.Context, reviews []model.Review) error
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Review{}, id)
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Order("rating DESC").
		Order("id ASC").
		Find(&reviews).Error; err != nil {

		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) ListByBook(ctx context.Context, bookID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("rating DESC").
		Order("id ASC").
		Find(&reviews).Error; err != nil {

		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) FindBook(ctx context.Context, reviewID uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Joins("JOIN reviews ON reviews.book_id = books.id").
		Where("reviews.id = ?", reviewID).
		First(&book).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

func (r *GormReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return updateColumns(r.db.WithContext(ctx), &model.Review{}, review.ID, map[string]any{
		"headline":    review.Headline,
		"review_text": review.ReviewText,
		"rating":      review.Rating,
		"book_id":     review.BookID,
		"reviewer_id": review.ReviewerID,
	})
}

func (r *GormReviewRepository) Delete(ctx context.Context, review *model.Review) error {
	return deleteByID(r.db.WithContext(ctx), &model.Review{}, review.ID)
}

// DeleteMany removes the given reviews in one statement. An empty slice is a no-op.
func (r *GormReviewRepository) DeleteMany(ctx context.Context, reviews []model.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(reviews))
	for _, rv := range reviews {
		ids = append(ids, rv.ID)
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Review{}).Error
}
