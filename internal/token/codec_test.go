package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/apperrors"
)

func testClaims(ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		UserID:   "user-123",
		Email:    "student@rmu.ac.th",
		Role:     "student",
		IssuedAt: now.Unix(),
		Expires:  now.Add(ttl).Unix(),
	}
}

func TestSignVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret")
	tok, err := codec.Sign(testClaims(time.Hour))
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	got, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, "student@rmu.ac.th", got.Email)
	assert.Equal(t, "student", got.Role)
}

func TestVerify_TamperedSegments(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret")
	tok, err := codec.Sign(testClaims(time.Hour))
	require.NoError(t, err)
	parts := strings.Split(tok, ".")

	cases := map[string]string{
		"tampered header":    "eyJhbGciOiJub25lIn0" + "." + parts[1] + "." + parts[2],
		"tampered claims":    parts[0] + "." + parts[1][:len(parts[1])-2] + "xx" + "." + parts[2],
		"tampered signature": parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-2] + "xx",
		"missing segment":    parts[0] + "." + parts[1],
		"empty segment":      parts[0] + ".." + parts[2],
		"garbage":            "not-a-token",
		"empty":              "",
	}
	for name, bad := range cases {
		_, err := codec.Verify(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, name)
	}
}

func TestVerify_ExpiredButValidSignature(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret")
	tok, err := codec.Sign(testClaims(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec("right-secret").Sign(testClaims(time.Hour))
	require.NoError(t, err)

	_, err = NewCodec("wrong-secret").Verify(tok)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

// Tokens minted by standard JWT tooling carry the same structure; the
// codec must accept them, padding included.
func TestVerify_StandardLibraryToken(t *testing.T) {
	t.Parallel()

	secret := "shared-secret"
	now := time.Now()
	std := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u-42",
		"email":  "employer@rmu.ac.th",
		"role":   "employer",
		"iat":    now.Unix(),
		"exp":    now.Add(time.Hour).Unix(),
	})
	tok, err := std.SignedString([]byte(secret))
	require.NoError(t, err)

	got, err := NewCodec(secret).Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-42", got.UserID)
	assert.Equal(t, "employer", got.Role)
}

// And the other direction: a token signed here parses with the standard
// library under the same secret.
func TestSign_ReadableByStandardLibrary(t *testing.T) {
	t.Parallel()

	secret := "shared-secret"
	tok, err := NewCodec(secret).Sign(testClaims(time.Hour))
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(tk *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims["userId"])
}

func TestVerify_PaddedSignature(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret")
	tok, err := codec.Sign(testClaims(time.Hour))
	require.NoError(t, err)

	// a sender that pads its base64url output is still accepted
	_, err = codec.Verify(tok + "==")
	assert.NoError(t, err)
}
