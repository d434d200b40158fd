package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/techieonvacation/ex-earning/internal/domain"
	"github.com/techieonvacation/ex-earning/internal/logger"
	"github.com/techieonvacation/ex-earning/internal/repository"
	"github.com/techieonvacation/ex-earning/internal/service"
	"go.uber.org/zap"
)

// Response is the envelope every API route answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondData(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}

// errorResponder maps service errors onto status codes. Unknown errors become a
// 500 carrying fallback; their detail only goes to the log.
type errorResponder struct {
	log *zap.Logger
}

func (e errorResponder) handle(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrProductUnavailable):
		respondError(w, http.StatusNotFound, "Product is not available")
	case errors.Is(err, repository.ErrSectionNotFound):
		respondError(w, http.StatusNotFound, "Section not found")
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	default:
		logger.With(r.Context(), e.log).Error(fallback,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a JSON body into dst. Failures are returned as validation errors.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return domain.NewValidationError("request body too large")
		case errors.Is(err, io.EOF):
			return domain.NewValidationError("request body is required")
		default:
			return domain.NewValidationError("invalid JSON body: %s", err)
		}
	}
	return nil
}

var errInvalidAction = domain.NewValidationError("Invalid action")
