package service

import (
	"strings"
	"testing"
	"time"

	"notekeeper-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testSecret = "test-secret-value"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func newTestTokenService(clock *fakeClock) *tokenService {
	return newTokenServiceWithClock(testSecret, time.Hour, clock.Now)
}

func TestTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(clock)

	token, err := svc.Issue("ada@example.com", 42)
	require.NoError(t, err)

	id, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, int64(42), id.UserId)
}

func TestTokenExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(clock)

	token, err := svc.Issue("ada@example.com", 42)
	require.NoError(t, err)

	clock.t = clock.t.Add(59 * time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidToken))
	assert.Equal(t, "Invalid token", err.(*apperror.Error).Message)
}

func TestTokenTamperedIsRejected(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(clock)

	token, err := svc.Issue("ada@example.com", 42)
	require.NoError(t, err)

	// The last signature character carries padding bits, so flipping it may decode to the same bytes
	for i := 0; i < len(token)-1; i++ {
		if token[i] == '.' {
			continue
		}
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := svc.Verify(string(b))
		assert.Error(t, err, "tampered at index %d", i)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	token, err := newTestTokenService(clock).Issue("ada@example.com", 1)
	require.NoError(t, err)

	other := newTokenServiceWithClock("another-secret", time.Hour, clock.Now)
	_, err = other.Verify(token)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidToken))
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokenService(clock)

	claims := tokenClaims{
		Email:  "ada@example.com",
		UserId: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.Error(t, err)
}

func TestTokenRequiresEmailAndExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokenService(clock)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserId:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(noEmail)
	assert.Error(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:  "ada@example.com",
		UserId: 1,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(noExpiry)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	svc := newTestTokenService(&fakeClock{t: time.Now()})

	for _, raw := range []string{"", "abc", "a.b.c", strings.Repeat("x", 300)} {
		_, err := svc.Verify(raw)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidToken), raw)
	}
}

func TestTokenRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clock := &fakeClock{t: time.Unix(rapid.Int64Range(1_000_000_000, 2_000_000_000).Draw(t, "now"), 0)}
		svc := newTestTokenService(clock)

		email := rapid.StringMatching(`[a-z]{1,12}@[a-z]{1,8}\.com`).Draw(t, "email")
		userId := rapid.Int64Range(1, 1<<53).Draw(t, "userId")

		token, err := svc.Issue(email, userId)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		id, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if id.Email != email || id.UserId != userId {
			t.Fatalf("got %+v, want %s/%d", id, email, userId)
		}
	})
}
