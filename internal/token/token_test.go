package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir/internal/token"
)

func TestIssueAndVerify(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	signed, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	id, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerifyExpired(t *testing.T) {
	svc := token.NewService("test-secret", -time.Minute)

	signed, err := svc.Issue(7)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := token.NewService("secret-a", time.Hour)
	verifier := token.NewService("secret-b", time.Hour)

	signed, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, token.ErrInvalidToken, "token %q", raw)
	}
}

func TestVerifyNonNumericSubject(t *testing.T) {
	// A token whose subject is not an identity id must be rejected even
	// when the signature checks out.
	svc := token.NewService("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
