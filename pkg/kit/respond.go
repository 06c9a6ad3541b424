package kit

import (
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"BookStore/internal/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Message{Message: msg})
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, details any) {
	WriteJSON(w, status, ErrorResponse{
		Error:     msg,
		Details:   details,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

// WriteDomainError renders an *apperr.Error with its own status. Anything
// else is logged and reported as a 500 without leaking the cause.
func WriteDomainError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var de *apperr.Error
	if !errors.As(err, &de) || de.Code == apperr.CodeInternal {
		if log != nil {
			log.Error("request failed",
				zap.Error(err),
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("path", r.URL.Path),
			)
		}
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:     "server error",
			Code:      string(apperr.CodeInternal),
			RequestID: chimw.GetReqID(r.Context()),
		})
		return
	}

	WriteJSON(w, de.HTTPStatus(), ErrorResponse{
		Error:     de.Message,
		Code:      string(de.Code),
		Details:   de.Details,
		RequestID: chimw.GetReqID(r.Context()),
	})
}
