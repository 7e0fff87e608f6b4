package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss, err := NewIssuer("test-secret", 15*time.Minute)
	require.NoError(t, err)

	tok, exp, err := iss.Issue()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 2*time.Second)
	assert.NoError(t, iss.Verify(tok))
}

func TestVerify_Expired(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Minute)
	require.NoError(t, err)

	start := time.Now()
	iss.now = func() time.Time { return start }
	tok, _, err := iss.Issue()
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	assert.ErrorIs(t, iss.Verify(tok), ErrInvalidToken)
}

func TestVerify_ForeignSecret(t *testing.T) {
	a, err := NewIssuer("secret-a", time.Minute)
	require.NoError(t, err)
	b, err := NewIssuer("secret-b", time.Minute)
	require.NoError(t, err)

	tok, _, err := a.Issue()
	require.NoError(t, err)
	assert.ErrorIs(t, b.Verify(tok), ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Minute)
	require.NoError(t, err)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Role: adminRole,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.ErrorIs(t, iss.Verify(tok), ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, iss.Verify("not-a-token"), ErrInvalidToken)
	assert.ErrorIs(t, iss.Verify(""), ErrInvalidToken)
}

func TestNewIssuer_Invalid(t *testing.T) {
	_, err := NewIssuer("", time.Minute)
	assert.Error(t, err)
	_, err = NewIssuer("s", 0)
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("5656")
	require.NoError(t, err)
	assert.NotEqual(t, "5656", hash)

	assert.NoError(t, CheckPassword(hash, "5656"))
	assert.ErrorIs(t, CheckPassword(hash, "1234"), ErrInvalidPassword)
	assert.ErrorIs(t, CheckPassword("", "5656"), ErrInvalidPassword)

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	require.NoError(t, err)
	b, err := RandomSecret()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	iss, err := NewIssuer(a, time.Minute)
	require.NoError(t, err)
	tok, _, err := iss.Issue()
	require.NoError(t, err)
	assert.NoError(t, iss.Verify(tok))
}
