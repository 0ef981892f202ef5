package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/testutil"
)

func TestReviewRepository_ListOrdersByRatingDesc(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewRepository(db)

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")
	testutil.SeedReview(t, db, b, rv, "meh", 2)
	first := testutil.SeedReview(t, db, b, rv, "wow", 5)
	testutil.SeedReview(t, db, b, rv, "ok", 3)
	second := testutil.SeedReview(t, db, b, rv, "wow again", 5)

	reviews, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 4)

	assert.Equal(t, first.ID, reviews[0].ID)
	assert.Equal(t, second.ID, reviews[1].ID)
	assert.Equal(t, 3, reviews[2].Rating)
	assert.Equal(t, 2, reviews[3].Rating)
}

func TestReviewRepository_BookLookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	dune := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	emma := testutil.SeedBook(t, db, "Emma", "0141439580", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")
	r1 := testutil.SeedReview(t, db, dune, rv, "Spice", 4)
	testutil.SeedReview(t, db, emma, rv, "Manners", 3)

	reviews, err := repo.ListByBook(ctx, dune.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, r1.ID, reviews[0].ID)

	book, err := repo.FindBook(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, dune.ID, book.ID)

	_, err = repo.FindBook(ctx, r1.ID+100)
	assert.True(t, IsNotFound(err))
}

func TestReviewRepository_CreateUpdateDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")

	r := &model.Review{Headline: "Sand", ReviewText: "Lots of sand.", Rating: 3, BookID: b.ID, ReviewerID: rv.ID}
	require.NoError(t, repo.Create(ctx, r))
	require.NotZero(t, r.ID)

	r.Rating = 4
	r.Headline = "More sand"
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "More sand", got.Headline)
	assert.Equal(t, "Lots of sand.", got.ReviewText)

	require.NoError(t, repo.Delete(ctx, r))
	ok, err := repo.Exists(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReviewRepository_CreateWithUnknownBook(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewRepository(db)

	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")
	err := repo.Create(context.Background(), &model.Review{
		Headline: "x", ReviewText: "hello", Rating: 1, BookID: 404, ReviewerID: rv.ID,
	})
	assert.True(t, IsForeignKeyViolation(err))
}

func TestReviewRepository_DeleteMany(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")
	r1 := testutil.SeedReview(t, db, b, rv, "a", 1)
	r2 := testutil.SeedReview(t, db, b, rv, "b", 2)
	keep := testutil.SeedReview(t, db, b, rv, "c", 3)

	require.NoError(t, repo.DeleteMany(ctx, nil))
	require.NoError(t, repo.DeleteMany(ctx, []model.Review{r1, r2}))

	left, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}
