package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/KyleBrandon/mirror-server/pkg/utils"
)

var ErrNoAuthHeader = errors.New("authorization header not found")

func ParseApiKey(r *http.Request) (string, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoAuthHeader
	}

	var apiKey string
	n, err := fmt.Sscanf(authHeader, "ApiKey %s", &apiKey)
	if n != 1 || err != nil {
		return "", ErrNoAuthHeader
	}

	return apiKey, nil
}

// RequireApiKey rejects requests whose ApiKey header does not match apiKey.
// An empty apiKey leaves the route open.
func RequireApiKey(apiKey string, next http.HandlerFunc) http.HandlerFunc {
	if len(apiKey) == 0 {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		key, err := ParseApiKey(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusForbidden, "Invalid API key", err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			utils.RespondWithError(w, http.StatusForbidden, "Invalid API key", errors.New("api key mismatch"))
			return
		}

		next(w, r)
	}
}
