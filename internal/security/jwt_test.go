package security_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/llm-query-gateway/internal/security"
)

const testSecret = "test-secret-key-with-32-chars!!"

func TestJWTManager_IssueAndValidate(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Now()

	for _, subject := range []string{"user1@example.com", "a", "ünïcødé@example.org"} {
		for _, ttl := range []time.Duration{time.Second * 2, time.Minute, 24 * time.Hour} {
			token, err := manager.Issue(subject, now, ttl)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			got, err := manager.Validate(token, now)
			require.NoError(t, err)
			assert.Equal(t, subject, got)
		}
	}
}

func TestJWTManager_SubSecondTTL(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)

	for _, now := range []time.Time{
		time.Unix(1_700_000_000, 0),
		time.Unix(1_700_000_000, 700_000_000),
		time.Unix(1_700_000_000, 999_999_999),
	} {
		for _, ttl := range []time.Duration{time.Nanosecond, 100 * time.Millisecond, 1500 * time.Millisecond} {
			token, err := manager.Issue("user1@example.com", now, ttl)
			require.NoError(t, err)

			got, err := manager.Validate(token, now)
			require.NoError(t, err, "now=%v ttl=%v", now, ttl)
			assert.Equal(t, "user1@example.com", got)
		}
	}
}

func TestJWTManager_EmptySubject(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)

	token, err := manager.Issue("", time.Now(), time.Minute)
	assert.ErrorIs(t, err, security.ErrEmptySubject)
	assert.Empty(t, token)
}

func TestJWTManager_DefaultTTL(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Now()

	token, err := manager.Issue("user1@example.com", now, 0)
	require.NoError(t, err)

	_, err = manager.Validate(token, now.Add(29*time.Minute))
	assert.NoError(t, err)

	_, err = manager.Validate(token, now.Add(31*time.Minute))
	assert.ErrorIs(t, err, security.ErrInvalidToken)
	assert.Equal(t, 30*time.Minute, manager.AccessTokenTTL())
}

func TestJWTManager_Expired(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	issuedAt := time.Now().Add(-2 * time.Hour)

	token, err := manager.Issue("user1@example.com", issuedAt, time.Hour)
	require.NoError(t, err)

	_, err = manager.Validate(token, time.Now())
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestJWTManager_ExpiresAtBoundary(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Unix(1_700_000_000, 0)

	token, err := manager.Issue("user1@example.com", now, time.Minute)
	require.NoError(t, err)

	_, err = manager.Validate(token, now.Add(time.Minute))
	assert.ErrorIs(t, err, security.ErrInvalidToken, "now == exp must be rejected")
}

func TestJWTManager_ForeignSecret(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	other := security.NewJWTManager("different-secret-key-32-chars!!", 30*time.Minute)
	now := time.Now()

	token, err := other.Issue("user1@example.com", now, time.Minute)
	require.NoError(t, err)

	_, err = manager.Validate(token, now)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestJWTManager_Malformed(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Now()

	for _, token := range []string{"", "invalid-token", "a.b.c"} {
		_, err := manager.Validate(token, now)
		assert.ErrorIs(t, err, security.ErrInvalidToken, "token %q", token)
	}
}

func TestJWTManager_Tampered(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Now()

	token, err := manager.Issue("user1@example.com", now, time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin@example.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SigningString()
	require.NoError(t, err)

	_, err = manager.Validate(forged+"."+parts[2], now)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestJWTManager_RequiresClaims(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Now()

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user1@example.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = manager.Validate(noExp, now)
	assert.ErrorIs(t, err, security.ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = manager.Validate(noSub, now)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	manager := security.NewJWTManager(testSecret, 30*time.Minute)
	now := time.Now()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user1@example.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.Validate(token, now)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func BenchmarkJWTIssue(b *testing.B) {
	manager := security.NewJWTManager("benchmark-secret-key-32-chars!!", 30*time.Minute)
	now := time.Now()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = manager.Issue("user1@example.com", now, time.Minute)
	}
}
