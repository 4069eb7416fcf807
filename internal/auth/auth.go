// Package auth verifies the bearer tokens that scope every resource to
// its owning user.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tolva-app/backend/internal/httperror"
)

// userIDKey is the gin context key the middleware stores the user id under.
const userIDKey = "userID"

var (
	ErrMissingSecret = errors.New("TOLVA_JWT_SECRET is not configured")
	ErrMissingToken  = errors.New("a bearer token is required")
	ErrInvalidToken  = errors.New("the bearer token is invalid or expired")
)

// Verifier checks bearer tokens and yields the owning user id.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier with an explicit signing secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// NewVerifierFromEnv creates a verifier with the secret from
// TOLVA_JWT_SECRET.
func NewVerifierFromEnv() (*Verifier, error) {
	secret := os.Getenv("TOLVA_JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return NewVerifier([]byte(secret)), nil
}

// UserID verifies an HS256 token and returns its subject claim.
func (v *Verifier) UserID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}

// Middleware aborts requests without a valid bearer token and stores the
// authenticated user id in the gin context.
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrMissingToken))
			return
		}

		userID, err := v.UserID(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(err))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the user the request was authenticated as.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
