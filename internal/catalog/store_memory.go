package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// MemStore keeps the catalog in process memory. Every mutation holds the
// write lock across its bounds check and splice, so positional deletes are
// never computed against a stale length.
type MemStore struct {
	mu    sync.RWMutex
	books map[string]*Book
	order []string
}

func NewMemStore(books []Book) (*MemStore, error) {
	s := &MemStore{
		books: make(map[string]*Book, len(books)),
		order: make([]string, 0, len(books)),
	}
	for _, b := range books {
		if strings.TrimSpace(b.ISBN) == "" {
			return nil, fmt.Errorf("book %q: empty isbn", b.Title)
		}
		if _, dup := s.books[b.ISBN]; dup {
			return nil, fmt.Errorf("duplicate isbn %q", b.ISBN)
		}
		c := b.clone()
		s.books[b.ISBN] = &c
		s.order = append(s.order, b.ISBN)
	}
	return s, nil
}

// NewDefaultStore returns a store loaded with the embedded seed catalog.
func NewDefaultStore() *MemStore {
	books, err := DefaultSeed()
	if err != nil {
		panic(fmt.Sprintf("embedded seed catalog: %v", err))
	}
	s, err := NewMemStore(books)
	if err != nil {
		panic(fmt.Sprintf("embedded seed catalog: %v", err))
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, 0, len(s.order))
	for _, isbn := range s.order {
		out = append(out, s.books[isbn].clone())
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, isbn string) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[isbn]
	if !ok {
		return Book{}, ErrBookNotFound
	}
	return b.clone(), nil
}

func (s *MemStore) FindByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.filter(author, func(b *Book) string { return b.Author })
}

func (s *MemStore) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return s.filter(title, func(b *Book) string { return b.Title })
}

func (s *MemStore) filter(want string, field func(*Book) string) ([]Book, error) {
	fold := cases.Fold()
	key := fold.String(want)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Book
	for _, isbn := range s.order {
		b := s.books[isbn]
		if fold.String(field(b)) == key {
			out = append(out, b.clone())
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMatches
	}
	return out, nil
}

func (s *MemStore) Reviews(ctx context.Context, isbn string) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[isbn]
	if !ok || b.Reviews == nil {
		return nil, ErrReviewsNotFound
	}
	return slices.Clone(b.Reviews), nil
}

func (s *MemStore) AddReview(ctx context.Context, isbn, username, text string) (Review, error) {
	if strings.TrimSpace(text) == "" {
		return Review{}, ErrReviewTextRequired
	}
	if strings.TrimSpace(username) == "" {
		username = AnonymousReviewer
	}
	rv := Review{Username: username, Text: text}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[isbn]
	if !ok {
		return Review{}, ErrBookNotFound
	}
	if b.Reviews == nil {
		b.Reviews = []Review{}
	}
	b.Reviews = append(b.Reviews, rv)
	return rv, nil
}

func (s *MemStore) DeleteReview(ctx context.Context, isbn string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[isbn]
	if !ok {
		return ErrBookNotFound
	}
	if b.Reviews == nil || index < 0 || index >= len(b.Reviews) {
		return ErrReviewNotFound
	}
	b.Reviews = slices.Delete(b.Reviews, index, index+1)
	return nil
}

func (b *Book) clone() Book {
	c := *b
	c.Reviews = slices.Clone(b.Reviews)
	return c
}
