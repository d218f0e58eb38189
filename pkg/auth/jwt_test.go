package auth

import (
	"os"
	"testing"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 7200,
			Issuer:               "blog-platform-test",
		},
	}
	os.Exit(m.Run())
}

func TestTokenPairRoundtrip(t *testing.T) {
	pair, err := GenerateTokenPair(7, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.TokenID)
	assert.Equal(t, 3600, pair.ExpiresIn)

	access, err := ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), access.UserID)
	assert.Equal(t, "admin", access.Role)
	assert.Equal(t, AccessToken, access.Type)
	assert.Equal(t, pair.TokenID, access.ID)

	refresh, err := ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, refresh.Type)
	// 同一次签发的令牌对共享令牌ID，拉黑时一起失效
	assert.Equal(t, access.ID, refresh.ID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	pair, err := GenerateTokenPair(7, "user")
	require.NoError(t, err)

	_, err = ParseToken(pair.AccessToken + "x")
	assert.Error(t, err)

	_, err = ParseToken("definitely.not.jwt")
	assert.Error(t, err)

	// 换密钥后旧令牌失效
	config.GlobalConfig.JWT.SecretKey = "rotated-secret"
	defer func() { config.GlobalConfig.JWT.SecretKey = "test-secret" }()
	_, err = ParseToken(pair.AccessToken)
	assert.Error(t, err)
}
