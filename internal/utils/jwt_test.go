package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWTToken("test-issuer", 123, time.Hour, "secret-key", now, "jti-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateJWTToken(token, "secret-key", "test-issuer", now)
	require.NoError(t, err)
	assert.Equal(t, int64(123), userID)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key, time.Now(), "")
			assert.Error(t, err)
		})
	}
}

func TestValidateJWTToken(t *testing.T) {
	now := time.Now()
	valid, err := GenerateJWTToken("iss", 7, time.Minute, "key", now, "a")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("iss", 7, -time.Minute, "key", now, "b")
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid, "other", "iss"},
		{"wrong issuer", valid, "key", "other"},
		{"expired", expired, "key", "iss"},
		{"garbage", "not-a-jwt", "key", "iss"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWTToken(tt.token, tt.key, tt.issuer, now)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def", "abc.def", false},
		{"surrounding spaces", "  Bearer abc  ", "abc", false},
		{"empty", "", "", true},
		{"scheme only", "Bearer", "", true},
		{"too many parts", "Bearer a b", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	token, err := GenerateJWTToken("iss", 1, time.Hour, "key", now, "x")
	require.NoError(t, err)

	exp, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())

	_, err = TokenExpiry("garbage")
	assert.Error(t, err)
}
