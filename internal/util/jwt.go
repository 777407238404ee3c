package util

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// API tokens match the session TTL: a bearer token should not outlive the
// browser session issued by the same login.
const tokenTTL = 24 * time.Hour

const claimAccountID = "account_id"

// GenerateJWT creates a bearer token for a given account ID.
func GenerateJWT(accountID int, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		claimAccountID: accountID,
		"exp":          now.Add(tokenTTL).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates the token and extracts the account ID.
func ParseJWT(tokenStr, secret string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenMalformed
	}

	// JSON numbers decode as float64.
	accountIDFloat, ok := claims[claimAccountID].(float64)
	if !ok {
		return 0, jwt.ErrTokenMalformed
	}

	return int(accountIDFloat), nil
}

func ExtractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
