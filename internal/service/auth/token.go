package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claims carries the authenticated user's id under the "id" key, the
// shape clients of the original API already decode.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// signToken mints an HS256 token for the user. A zero ttl omits the
// expiry claim entirely; any other value embeds it, so a negative ttl
// yields an already-expired token.
func signToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	cl := claims{UserID: userID}
	if ttl != 0 {
		cl.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return token.SignedString(secret)
}

func verifyToken(tokenString string, secret []byte) (string, error) {
	cl := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, cl, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || cl.UserID == "" {
		return "", ErrInvalidToken
	}
	return cl.UserID, nil
}
