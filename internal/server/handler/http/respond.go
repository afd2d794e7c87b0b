// Package http provides the HTTP handlers, routing and middleware chain of the
// VocabDeck API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names in messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the JSON body into dst and validates it. On failure it writes
// a 400 response and returns false. badBody is the message used when the body
// is missing or not JSON.
func bind(w http.ResponseWriter, r *http.Request, dst any, badBody string) bool {
	if r.Body == nil || r.Body == http.NoBody {
		http.Error(w, badBody, http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, badBody, http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps a service error to a status code and plain-text body.
// Unclassified errors are logged and answered with fallback.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrCollectionLimit):
		http.Error(w, common.ErrCollectionLimit.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrCardLimit):
		http.Error(w, common.ErrCardLimit.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
		http.Error(w, msg, http.StatusBadRequest)
	case errors.Is(err, common.ErrWeakPassword):
		http.Error(w, common.ErrWeakPassword.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrResetExpired):
		http.Error(w, "invalid or expired token", http.StatusBadRequest)
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrAlreadyExists):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, common.ErrInvalidLogin):
		http.Error(w, common.ErrInvalidLogin.Error(), http.StatusUnauthorized)
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrNoUserID):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		if log != nil {
			log.Error(fallback, zap.Error(err))
		}
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}
