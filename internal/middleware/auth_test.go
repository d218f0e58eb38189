package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/hxzhou/blog-platform/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
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

// newAdminRouter 挂一条仅管理员可达的测试路由
func newAdminRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthNeverRunsHandlerForNonAdmin(t *testing.T) {
	handlerRan := false
	r := gin.New()
	r.DELETE("/admin/articles/:id", AdminAuth(), func(c *gin.Context) {
		handlerRan = true
		c.String(http.StatusOK, "deleted")
	})

	pair, err := auth.GenerateTokenPair(2, model.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/admin/articles/1", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 角色检查失败时业务处理器一行都不能执行
	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 未认证同样不执行
	req = httptest.NewRequest(http.MethodDelete, "/admin/articles/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthDistinguishes401And403(t *testing.T) {
	r := newAdminRouter()

	// 无令牌：未认证
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 伪造令牌：未认证
	w = doRequest(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 有效令牌但非管理员：已认证、无权限
	userPair, err := auth.GenerateTokenPair(2, model.RoleUser)
	require.NoError(t, err)
	w = doRequest(r, userPair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 管理员放行
	adminPair, err := auth.GenerateTokenPair(1, model.RoleAdmin)
	require.NoError(t, err)
	w = doRequest(r, adminPair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// 刷新令牌不能当访问令牌用
	w = doRequest(r, adminPair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	r := gin.New()
	r.GET("/open", OptionalAuth(), func(c *gin.Context) {
		if IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "guest")
	})

	// 未带令牌可访问
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "guest", w.Body.String())

	// 坏令牌同样放行，按匿名处理
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "guest", w.Body.String())

	// 有效管理员令牌提升身份
	pair, err := auth.GenerateTokenPair(1, model.RoleAdmin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestJWTAuthSetsContext(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		role, ok := GetUserRole(c)
		require.True(t, ok)
		tokenID, ok := GetTokenID(c)
		require.True(t, ok)
		assert.NotEmpty(t, tokenID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})

	pair, err := auth.GenerateTokenPair(42, model.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}
