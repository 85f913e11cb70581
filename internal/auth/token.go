package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the verified token asserts about the caller
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verifier validates bearer tokens minted by the identity provider and
// extracts the caller's identity. The uid is the token subject.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token string. Any failure, including an
// expired token, comes back as an invalid-credentials auth error.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &Error{Category: CategoryInvalidCredentials, Message: "Session expired", Err: err}
		}
		return nil, &Error{Category: CategoryInvalidCredentials, Message: "Invalid token", Err: err}
	}
	if !token.Valid || claims.Subject == "" {
		return nil, &Error{Category: CategoryInvalidCredentials, Message: "Invalid token"}
	}

	return &Identity{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}
