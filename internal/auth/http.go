package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BookStore/internal/apperr"
	"BookStore/pkg/kit"
)

var validate = kit.NewValidator()

type Server struct {
	Log     *zap.Logger
	Store   Directory
	Metrics *kit.Metrics
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
}

type registerReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		s.observe("register", err)
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}
	if err := validate.Validate(req); err != nil {
		s.observe("register", err)
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}

	a, err := s.Store.Register(r.Context(), req.Username, req.Password)
	s.observe("register", err)
	if err != nil {
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}

	if s.Log != nil {
		s.Log.Info("user registered", zap.String("user_id", a.ID), zap.String("username", a.Username))
	}
	kit.WriteMessage(w, http.StatusCreated, "user registered")
}

// Login fields are not validated as required: missing credentials are
// reported exactly like wrong ones.
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		s.observe("login", err)
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}

	a, err := s.Store.Login(r.Context(), req.Username, req.Password)
	s.observe("login", err)
	if err != nil {
		if s.Log != nil && apperr.CodeOf(err) == apperr.CodeUnauthorized {
			s.Log.Debug("login rejected", zap.String("username", req.Username))
		}
		kit.WriteDomainError(w, r, s.Log, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{Message: "login successful", Username: a.Username})
}

func (s *Server) observe(op string, err error) {
	if err == nil {
		s.Metrics.Observe(op, "ok")
		return
	}
	s.Metrics.Observe(op, string(apperr.CodeOf(err)))
}
