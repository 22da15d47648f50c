package api

import (
	"encoding/json"
	"net/http"

	"grassroots/warchest/internal/auth"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// decodeBody unmarshals the request body into dst, replying 400 on failure.
// Returns false when the caller should bail out.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// requireClaims fetches the authenticated identity, replying 401 when the
// middleware did not attach one.
func requireClaims(w http.ResponseWriter, r *http.Request) auth.UserClaims {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return claims
}
