package catalog

import (
	"context"

	"BookStore/internal/apperr"
)

// AnonymousReviewer is recorded when a review is added without a username.
const AnonymousReviewer = "anonymous"

type Review struct {
	Username string `json:"username" yaml:"username"`
	Text     string `json:"text" yaml:"text"`
}

// Book is a catalog record keyed by ISBN. A nil Reviews slice means the
// book never had a review list; an empty non-nil slice is an empty list.
type Book struct {
	ISBN    string   `json:"isbn"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Reviews []Review `json:"reviews"`
}

var (
	ErrBookNotFound       = apperr.NotFound("book not found")
	ErrNoMatches          = apperr.NotFound("no books match")
	ErrReviewsNotFound    = apperr.NotFound("no reviews found for book")
	ErrReviewNotFound     = apperr.NotFound("review not found")
	ErrReviewTextRequired = apperr.InvalidInput("review text is required")
)

// Store owns the catalog. Lookups that find nothing return a not-found
// error rather than an empty result.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, isbn string) (Book, error)
	FindByAuthor(ctx context.Context, author string) ([]Book, error)
	FindByTitle(ctx context.Context, title string) ([]Book, error)
	Reviews(ctx context.Context, isbn string) ([]Review, error)
	AddReview(ctx context.Context, isbn, username, text string) (Review, error)
	DeleteReview(ctx context.Context, isbn string, index int) error
}
