package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/testutil"
)

func TestReviewerRepository_ListAndLookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewerRepository(db)
	ctx := context.Background()

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	zed := testutil.SeedReviewer(t, db, "Zed", "Young")
	amy := testutil.SeedReviewer(t, db, "Amy", "Adams")
	low := testutil.SeedReview(t, db, b, zed, "low", 1)
	high := testutil.SeedReview(t, db, b, zed, "high", 5)

	reviewers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviewers, 2)
	assert.Equal(t, amy.ID, reviewers[0].ID)
	assert.Equal(t, zed.ID, reviewers[1].ID)

	got, err := repo.FindByReview(ctx, low.ID)
	require.NoError(t, err)
	assert.Equal(t, zed.ID, got.ID)

	reviews, err := repo.ListReviews(ctx, zed.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, high.ID, reviews[0].ID)

	reviews, err = repo.ListReviews(ctx, amy.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewerRepository_DeleteRemovesReviews(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewerRepository(db)
	ctx := context.Background()

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	gone := testutil.SeedReviewer(t, db, "Zed", "Young")
	stays := testutil.SeedReviewer(t, db, "Amy", "Adams")
	testutil.SeedReview(t, db, b, gone, "one", 1)
	testutil.SeedReview(t, db, b, gone, "two", 2)
	kept := testutil.SeedReview(t, db, b, stays, "three", 3)

	require.NoError(t, repo.Delete(ctx, &gone))

	var left []model.Review
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].ID)

	assert.True(t, IsNotFound(repo.Delete(ctx, &gone)))
}

func TestReviewerRepository_CreateAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewerRepository(db)
	ctx := context.Background()

	r := &model.Reviewer{FirstName: "Amy", LastName: "Adams"}
	require.NoError(t, repo.Create(ctx, r))
	require.NotZero(t, r.ID)

	r.LastName = "Adams-Smith"
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adams-Smith", got.LastName)
}

func TestConstraintName(t *testing.T) {
	assert.Empty(t, ConstraintName(nil))
	assert.Empty(t, ConstraintName(assert.AnError))
}
