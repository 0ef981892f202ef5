package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type ReviewerRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Reviewer, error)
	List(ctx context.Context) ([]model.Reviewer, error)
	FindByReview(ctx context.Context, reviewID uint) (*model.Reviewer, error)
	ListReviews(ctx context.Context, reviewerID uint) ([]model.Review, error)
	Create(ctx context.Context, reviewer *model.Reviewer) error
	Update(ctx context.Context, reviewer *model.Reviewer) error
	Delete(ctx context.Context, reviewer *model.Reviewer) error
}

type GormReviewerRepository struct {
	db *gorm.DB
}

func NewGormReviewerRepository(db *gorm.DB) *GormReviewerRepository {
	return &GormReviewerRepository{db: db}
}

func (r *GormReviewerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Reviewer{}, id)
}

func (r *GormReviewerRepository) FindByID(ctx context.Context, id uint) (*model.Reviewer, error) {
	var reviewer model.Reviewer
	if err := r.db.WithContext(ctx).First(&reviewer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reviewer, nil
}

func (r *GormReviewerRepository) List(ctx context.Context) ([]model.Reviewer, error) {
	var reviewers []model.Reviewer
	if err := r.db.WithContext(ctx).
		Order("last_name ASC").
		Order("id ASC").
		Find(&reviewers).Error; err != nil {

		return nil, err
	}
	return reviewers, nil
}

func (r *GormReviewerRepository) FindByReview(ctx context.Context, reviewID uint) (*model.Reviewer, error) {
	var reviewer model.Reviewer
	if err := r.db.WithContext(ctx).
		Joins("JOIN reviews ON reviews.reviewer_id = reviewers.id").
		Where("reviews.id = ?", reviewID).
		First(&reviewer).Error; err != nil {

		return nil, err
	}
	return &reviewer, nil
}

func (r *GormReviewerRepository) ListReviews(ctx context.Context, reviewerID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", reviewerID).
		Order("rating DESC").
		Order("id ASC").
		Find(&reviews).Error; err != nil {

		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewerRepository) Create(ctx context.Context, reviewer *model.Reviewer) error {
	return r.db.WithContext(ctx).Create(reviewer).Error
}

func (r *GormReviewerRepository) Update(ctx context.Context, reviewer *model.Reviewer) error {
	return updateColumns(r.db.WithContext(ctx), &model.Reviewer{}, reviewer.ID, map[string]any{
		"first_name": reviewer.FirstName,
		"last_name":  reviewer.LastName,
	})
}

// Delete removes the reviewer and every review they wrote.
func (r *GormReviewerRepository) Delete(ctx context.Context, reviewer *model.Reviewer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reviews []model.Review
		if err := tx.Where("reviewer_id = ?", reviewer.ID).Find(&reviews).Error; err != nil {
			return err
		}
		if err := NewGormReviewRepository(tx).DeleteMany(ctx, reviews); err != nil {
			return err
		}
		return deleteByID(tx, &model.Reviewer{}, reviewer.ID)
	})
}
