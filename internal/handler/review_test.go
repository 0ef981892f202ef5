package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/testutil"
)

func TestCreateReview(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")

	body := map[string]any{
		"headline":   "Spice must flow",
		"reviewText": "A sprawling desert epic.",
		"rating":     5,
		"bookId":     b.ID,
		"reviewerId": rv.ID,
	}

	w := doJSON(t, router, http.MethodPost, "/api/reviews", body)
	expectStatus(t, w, http.StatusCreated)

	review := decodeJSON[ReviewDto](t, w)
	if review.ID == 0 || review.Headline != "Spice must flow" || review.Rating != 5 {
		t.Fatalf("unexpected review: %+v", review)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/%d/book", review.ID), nil)
	expectStatus(t, w, http.StatusOK)
	if got := decodeJSON[BookDto](t, w); got.ID != b.ID {
		t.Fatalf("expected book %d, got %+v", b.ID, got)
	}

	body["bookId"] = 999
	w = doJSON(t, router, http.MethodPost, "/api/reviews", body)
	expectErrorCode(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")

	body["bookId"] = b.ID
	body["reviewerId"] = 999
	w = doJSON(t, router, http.MethodPost, "/api/reviews", body)
	expectErrorCode(t, w, http.StatusNotFound, "REVIEWER_NOT_FOUND")
}

func TestCreateReview_Validation(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"rating too high", map[string]any{"headline": "h", "reviewText": "long enough", "rating": 6, "bookId": 1, "reviewerId": 1}},
		{"rating missing", map[string]any{"headline": "h", "reviewText": "long enough", "bookId": 1, "reviewerId": 1}},
		{"text too short", map[string]any{"headline": "h", "reviewText": "meh", "rating": 3, "bookId": 1, "reviewerId": 1}},
		{"no headline", map[string]any{"reviewText": "long enough", "rating": 3, "bookId": 1, "reviewerId": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/reviews", tt.body)
			expectErrorCode(t, w, http.StatusBadRequest, "VALIDATION_FAILED")
		})
	}
}

func TestListReviews_OrderedByRatingDesc(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	dune := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	emma := testutil.SeedBook(t, db, "Emma", "0141439580", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")
	testutil.SeedReview(t, db, dune, rv, "ok", 3)
	testutil.SeedReview(t, db, emma, rv, "great", 5)
	testutil.SeedReview(t, db, dune, rv, "bad", 1)

	w := doJSON(t, router, http.MethodGet, "/api/reviews", nil)
	expectStatus(t, w, http.StatusOK)

	got := decodeJSON[[]ReviewDto](t, w)
	if len(got) != 3 || got[0].Rating != 5 || got[1].Rating != 3 || got[2].Rating != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/reviews/books/%d", dune.ID), nil)
	expectStatus(t, w, http.StatusOK)
	if got := decodeJSON[[]ReviewDto](t, w); len(got) != 2 || got[0].Rating != 3 {
		t.Fatalf("unexpected reviews of book: %+v", got)
	}

	w = doJSON(t, router, http.MethodGet, "/api/reviews/books/999", nil)
	expectErrorCode(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")
}

func TestUpdateAndDeleteReview(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	b := testutil.SeedBook(t, db, "Dune", "0441172717", nil)
	rv := testutil.SeedReviewer(t, db, "Ann", "Critic")
	review := testutil.SeedReview(t, db, b, rv, "ok", 3)
	path := fmt.Sprintf("/api/reviews/%d", review.ID)

	update := map[string]any{
		"id":         review.ID,
		"headline":   "better on reread",
		"reviewText": "Grows on you.",
		"rating":     4,
		"bookId":     b.ID,
		"reviewerId": rv.ID,
	}

	w := doJSON(t, router, http.MethodPut, path, update)
	expectStatus(t, w, http.StatusNoContent)

	w = doJSON(t, router, http.MethodGet, path, nil)
	if got := decodeJSON[ReviewDto](t, w); got.Rating != 4 || got.Headline != "better on reread" {
		t.Fatalf("update not applied: %+v", got)
	}

	update["id"] = review.ID + 1
	w = doJSON(t, router, http.MethodPut, path, update)
	expectErrorCode(t, w, http.StatusBadRequest, "REVIEW_ID_MISMATCH")

	update["id"] = review.ID
	update["reviewerId"] = 404
	w = doJSON(t, router, http.MethodPut, path, update)
	expectErrorCode(t, w, http.StatusNotFound, "REVIEWER_NOT_FOUND")

	w = doJSON(t, router, http.MethodDelete, path, nil)
	expectStatus(t, w, http.StatusNoContent)

	w = doJSON(t, router, http.MethodDelete, path, nil)
	expectErrorCode(t, w, http.StatusNotFound, "REVIEW_NOT_FOUND")
}
