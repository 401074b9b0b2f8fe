// Package middleware adapts schema validation to net/http handlers. The JSON
// error payload produced here is the only coupling between the validation
// engine and a web framework; status-code mapping lives entirely on this
// side.
package middleware

import (
	"context"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	vireo "github.com/vireo-go/vireo"
)

// ctxKeyValidated is a typed context key for the validated request body.
type ctxKeyValidated struct{}

// ContextWithValidated attaches a validated body to the context.
func ContextWithValidated(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, v)
}

// ValidatedFromContext retrieves the validated body from context.
func ValidatedFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyValidated{})
	return v, v != nil
}

// ValidateJSON reads the request body, validates it against schema with
// ValidateAsync, and invokes next with the validated value attached to the
// request context. Validation failures answer 422 with the group payload
// ({"errors":[{"path","code","message"}]}); malformed JSON answers 400 with
// the same shape.
func ValidateJSON(schema vireo.Validator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "cannot read body", http.StatusBadRequest)
			return
		}
		v, err := vireo.ParseJSONAsync(r.Context(), schema, body)
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), v)))
	})
}

func writeError(w http.ResponseWriter, err error) {
	g, ok := vireo.AsGroup(err)
	if !ok {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	status := http.StatusUnprocessableEntity
	for _, e := range g {
		if e.Code == vireo.CodeParseError {
			status = http.StatusBadRequest
			break
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(g)
}
