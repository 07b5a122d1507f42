package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokens_GenerateAndParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tk := NewTokens([]byte("super-secret"), time.Hour, fixedClock(now))

	s, err := tk.Generate("u-1", "alice@example.com")
	require.NoError(t, err)

	c, err := tk.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.Subject)
	assert.Equal(t, "alice@example.com", c.Email)
	assert.Equal(t, now.Add(time.Hour).Unix(), c.ExpiresAt.Unix())
}

func TestTokens_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokens([]byte("k"), time.Hour, fixedClock(issued)).Generate("u-1", "a@b.c")
	require.NoError(t, err)

	later := NewTokens([]byte("k"), time.Hour, fixedClock(issued.Add(2*time.Hour)))
	_, err = later.Parse(s)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokens_WrongSecret(t *testing.T) {
	t.Parallel()

	s, err := NewTokens([]byte("right"), time.Hour, nil).Generate("u-1", "a@b.c")
	require.NoError(t, err)

	_, err = NewTokens([]byte("wrong"), time.Hour, nil).Parse(s)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokens_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewTokens([]byte("k"), time.Hour, nil).Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokens([]byte("k"), time.Hour, nil).Parse(s)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokens_RequiresExpiry(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	})
	s, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokens([]byte("k"), time.Hour, nil).Parse(s)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
