package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndGetClaims(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.NotEmpty(t, claims.TokenID())
	assert.InDelta(t, time.Minute.Seconds(), claims.TTL(time.Now()).Seconds(), 2)
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	ctx := context.Background()

	first, err := j.Generate(ctx, 1)
	assert.NoError(t, err)
	second, err := j.Generate(ctx, 1)
	assert.NoError(t, err)

	c1, err := j.GetClaims(ctx, first)
	assert.NoError(t, err)
	c2, err := j.GetClaims(ctx, second)
	assert.NoError(t, err)
	assert.NotEqual(t, c1.TokenID(), c2.TokenID())
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 7)
	assert.NoError(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_WrongSecret(t *testing.T) {
	ctx := context.Background()
	token, err := New(WithSecretKey("one")).Generate(ctx, 7)
	assert.NoError(t, err)

	_, err = New(WithSecretKey("two")).GetClaims(ctx, token)
	assert.Error(t, err)
}

func TestJWT_RejectsOtherSigningMethods(t *testing.T) {
	ctx := context.Background()
	claims := Claims{AccountID: 7}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = New(WithSecretKey("secret")).GetClaims(ctx, unsigned)
	assert.Error(t, err)
}

func TestJWT_MissingAccountID(t *testing.T) {
	ctx := context.Background()
	secret := "secret"
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(secret))
	assert.NoError(t, err)

	_, err = New(WithSecretKey(secret)).GetClaims(ctx, token)
	assert.EqualError(t, err, "account_id not found in token")
}

func TestClaims_TTLWithoutExpiry(t *testing.T) {
	c := &Claims{}
	assert.Equal(t, time.Duration(0), c.TTL(time.Now()))
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"no token", "Bearer", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			got, err := j.GetTokenFromRequest(ctx, req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
