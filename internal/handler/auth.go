package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthHandler issues and verifies the HS256 bearer tokens that protect
// order placement.
type AuthHandler struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthHandler creates an AuthHandler with the configured credentials
// and signing secret.
func NewAuthHandler(username, password, secret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		username: username,
		password: password,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// loginRequest is the JSON request body for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the issued token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/login. Valid credentials yield a signed JWT;
// anything else is a 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if req.Username != h.username || req.Password != h.password {
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials.")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
	})

	signed, err := token.SignedString(h.secret)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "internal_error", "An error occurred on our end.")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{Token: signed})
}

// Require is middleware that rejects requests without a valid bearer token.
func (h *AuthHandler) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Missing or malformed Authorization header.")
			return
		}

		_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return h.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
