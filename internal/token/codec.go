package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"jobmarket/internal/apperrors"
)

// Claims is the payload embedded in a signed token. The field names keep
// the registered-claim spelling so any standard JWT library can read the
// token back.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Codec signs and verifies compact HMAC-SHA256 tokens of the form
// header.claims.signature. It holds the only copy of the signing secret;
// everything else receives a *Codec, never the key.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign serializes the claims and appends an HMAC-SHA256 signature over the
// first two segments. Expiry must already be set by the caller.
func (c *Codec) Sign(claims Claims) (string, error) {
	headerJSON, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(signingInput))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return signingInput + "." + sig, nil
}

// Verify checks the token structure, signature and expiry. Every failure
// collapses to apperrors.ErrInvalidToken so callers cannot tell which
// check rejected the token.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, apperrors.ErrInvalidToken
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	expected := mac.Sum(nil)

	presented, err := decodeSegment(parts[2])
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !hmac.Equal(expected, presented) {
		return nil, apperrors.ErrInvalidToken
	}

	claimsJSON, err := decodeSegment(parts[1])
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().Unix() >= claims.Expires {
		return nil, apperrors.ErrInvalidToken
	}
	return &claims, nil
}

// decodeSegment accepts base64url with or without padding; tokens minted
// elsewhere may carry trailing '='.
func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
