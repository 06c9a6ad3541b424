package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BookStore/internal/apperr"
	"BookStore/pkg/kit"
)

var validate = kit.NewValidator()

type Server struct {
	Store   Store
	Log     *zap.Logger
	Metrics *kit.Metrics
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the catalog endpoints on r. The async/promise
// paths are kept for clients of the old API and hit the store directly.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.list)
	r.Get("/isbn/{isbn}", s.get)
	r.Get("/author/{author}", s.byAuthor)
	r.Get("/title/{title}", s.byTitle)

	r.Get("/review/{isbn}", s.reviews)
	r.Post("/review/{isbn}", s.addReview)
	r.Delete("/review/{isbn}/{index}", s.deleteReview)

	r.Get("/async/books", s.list)
	r.Get("/promise/isbn/{isbn}", s.get)
	r.Get("/async/author/{author}", s.byAuthor)
	r.Get("/promise/title/{title}", s.byTitle)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	books, err := s.Store.List(r.Context())
	if err != nil {
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	isbn := kit.PathParam(r, "isbn")

	b, err := s.Store.Get(r.Context(), isbn)
	if err != nil {
		s.writeErr(w, r, err, map[string]any{"isbn": isbn})
		return
	}
	kit.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) byAuthor(w http.ResponseWriter, r *http.Request) {
	author := kit.PathParam(r, "author")

	books, err := s.Store.FindByAuthor(r.Context(), author)
	if err != nil {
		s.writeErr(w, r, err, map[string]any{"author": author})
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) byTitle(w http.ResponseWriter, r *http.Request) {
	title := kit.PathParam(r, "title")

	books, err := s.Store.FindByTitle(r.Context(), title)
	if err != nil {
		s.writeErr(w, r, err, map[string]any{"title": title})
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) reviews(w http.ResponseWriter, r *http.Request) {
	isbn := kit.PathParam(r, "isbn")

	reviews, err := s.Store.Reviews(r.Context(), isbn)
	if err != nil {
		s.writeErr(w, r, err, map[string]any{"isbn": isbn})
		return
	}
	kit.WriteJSON(w, http.StatusOK, reviews)
}

// addReviewReq accepts the old client's "review" field as a fallback
// for "text".
type addReviewReq struct {
	Username string `json:"username"`
	Text     string `json:"text" validate:"required"`
	Review   string `json:"review"`
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	isbn := kit.PathParam(r, "isbn")

	var req addReviewReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		s.Metrics.Observe("add_review", string(apperr.CodeInvalidInput))
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}
	if req.Text == "" {
		req.Text = req.Review
	}
	if err := validate.Validate(req); err != nil {
		s.Metrics.Observe("add_review", string(apperr.CodeOf(err)))
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}

	rv, err := s.Store.AddReview(r.Context(), isbn, req.Username, req.Text)
	s.observe("add_review", err)
	if err != nil {
		s.writeErr(w, r, err, map[string]any{"isbn": isbn})
		return
	}

	if s.Log != nil {
		s.Log.Info("review added", zap.String("isbn", isbn), zap.String("username", rv.Username))
	}
	kit.WriteMessage(w, http.StatusCreated, "review added")
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	isbn := kit.PathParam(r, "isbn")
	raw := chi.URLParam(r, "index")
	details := map[string]any{"isbn": isbn, "index": raw}

	index, ok := parseIndex(raw)
	if !ok {
		s.observe("delete_review", ErrReviewNotFound)
		s.writeErr(w, r, ErrReviewNotFound, details)
		return
	}

	err := s.Store.DeleteReview(r.Context(), isbn, index)
	s.observe("delete_review", err)
	if err != nil {
		s.writeErr(w, r, err, details)
		return
	}

	if s.Log != nil {
		s.Log.Info("review deleted", zap.String("isbn", isbn), zap.Int("index", index))
	}
	kit.WriteMessage(w, http.StatusOK, "review deleted")
}

// parseIndex accepts plain decimal digits only; signs and leading zeros
// are rejected.
func parseIndex(raw string) (int, bool) {
	if raw == "" || (len(raw) > 1 && raw[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *Server) observe(op string, err error) {
	if err == nil {
		s.Metrics.Observe(op, "ok")
		return
	}
	s.Metrics.Observe(op, string(apperr.CodeOf(err)))
}

// writeErr attaches request details to not-found errors before rendering.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error, details map[string]any) {
	if apperr.CodeOf(err) == apperr.CodeNotFound {
		err = apperr.NotFound(err.Error()).WithDetails(details)
	}
	kit.WriteDomainError(w, r, s.Log, err)
}
