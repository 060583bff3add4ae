package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-0123456789"

func TestValidPassword(t *testing.T) {
	cases := map[string]bool{
		"Passw0rd!":            true,
		"Ab1@efgh":             true,
		"password":             false, // no upper, digit or symbol
		"PASSWORD1!":           false, // no lower
		"Password!":            false, // no digit
		"Password1":            false, // no symbol
		"Pa1!":                 false, // too short
		"Passw0rd!#":           false, // '#' is outside the allowed set
		"Pass w0rd!":           false, // spaces are not allowed
		"Pässw0rd!":            false,
	}
	for p, want := range cases {
		assert.Equal(t, want, ValidPassword(p), p)
	}
	assert.True(t, ValidPassword(strings.Repeat("Aa1@", 10)))
}

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Passw0rd!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	ok, err := ComparePassword(hash, "Passw0rd!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePassword(hash, "Passw0rd?")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ComparePassword("not-a-hash", "Passw0rd!")
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, 30*24*time.Hour)
	id := Identity{UserID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}

	token, expires, err := svc.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), expires, time.Minute)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.Issue(Identity{UserID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	other := NewTokenService("another-secret-0123456789", time.Hour)
	token, _, err := other.Issue(Identity{UserID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbageAndNoneAlg(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsBadUserID(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
