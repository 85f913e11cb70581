package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func mintToken(t *testing.T, secret string, claims tokenClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() tokenClaims {
	return tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "a@example.com",
		Name:  "Aziz",
	}
}

func TestVerifyValidToken(t *testing.T) {
	token := mintToken(t, testSecret, validClaims())

	identity, err := NewVerifier(testSecret).Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", identity.UID)
	assert.Equal(t, "a@example.com", identity.Email)
	assert.Equal(t, "Aziz", identity.DisplayName)
}

func TestVerifyExpiredToken(t *testing.T) {
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := mintToken(t, testSecret, claims)

	_, err := NewVerifier(testSecret).Verify(token)
	require.Error(t, err)

	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CategoryInvalidCredentials, authErr.Category)
	assert.Equal(t, "Session expired", authErr.Message)
}

func TestVerifyWrongSecret(t *testing.T) {
	token := mintToken(t, "some-other-secret", validClaims())

	_, err := NewVerifier(testSecret).Verify(token)
	require.Error(t, err)

	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CategoryInvalidCredentials, authErr.Category)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	claims := validClaims()
	claims.Subject = ""
	token := mintToken(t, testSecret, claims)

	_, err := NewVerifier(testSecret).Verify(token)
	assert.Error(t, err)
}

func TestVerifyGarbageToken(t *testing.T) {
	_, err := NewVerifier(testSecret).Verify("not.a.token")
	assert.Error(t, err)
}

func TestFromProviderCode(t *testing.T) {
	tests := []struct {
		code string
		want Category
	}{
		{"auth/invalid-credential", CategoryInvalidCredentials},
		{"auth/invalid-email", CategoryInvalidCredentials},
		{"auth/user-not-found", CategoryInvalidCredentials},
		{"auth/wrong-password", CategoryInvalidCredentials},
		{"auth/email-already-in-use", CategoryEmailInUse},
		{"auth/weak-password", CategoryWeakPassword},
		{"auth/popup-closed-by-user", CategoryCancelled},
		{"auth/cancelled-popup-request", CategoryCancelled},
		{"auth/some-future-code", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mapped := FromProviderCode(tt.code, errors.New("provider failure"))
			assert.Equal(t, tt.want, mapped.Category)
			assert.NotEmpty(t, mapped.Message)
		})
	}
}

func TestIsCancelled(t *testing.T) {
	cancelled := FromProviderCode("auth/popup-closed-by-user", nil)
	assert.True(t, IsCancelled(cancelled))

	denied := FromProviderCode("auth/wrong-password", nil)
	assert.False(t, IsCancelled(denied))

	assert.False(t, IsCancelled(errors.New("plain error")))
	assert.False(t, IsCancelled(nil))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("network down")
	wrapped := FromProviderCode("auth/wrong-password", cause)
	assert.ErrorIs(t, wrapped, cause)
}
