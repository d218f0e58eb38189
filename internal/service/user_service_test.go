package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertByOpenID(t *testing.T) {
	resetTables(t)
	s := &UserService{db: testDB, logger: logger.GetSugaredLogger()}

	// 首次登录创建普通用户
	user, err := s.upsertByOpenID("visitor-open-id", &oauthProfile{Nickname: "访客", Avatar: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "访客", user.Nickname)

	// 站长openID首次登录即为管理员
	owner, err := s.upsertByOpenID("owner-open-id", &oauthProfile{Nickname: "站长"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, owner.Role)

	// 再次登录刷新资料，不重复建行
	firstSignIn := user.LastSignedIn
	time.Sleep(10 * time.Millisecond)
	again, err := s.upsertByOpenID("visitor-open-id", &oauthProfile{Nickname: "改名访客"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var got model.User
	require.NoError(t, testDB.First(&got, user.ID).Error)
	assert.Equal(t, "改名访客", got.Nickname)
	assert.True(t, got.LastSignedIn.After(firstSignIn))

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// 空资料字段不覆盖已有值
	_, err = s.upsertByOpenID("visitor-open-id", &oauthProfile{})
	require.NoError(t, err)
	require.NoError(t, testDB.First(&got, user.ID).Error)
	assert.Equal(t, "改名访客", got.Nickname)
}

func TestOwnerPromotionOnRelogin(t *testing.T) {
	resetTables(t)
	s := &UserService{db: testDB, logger: logger.GetSugaredLogger()}

	// 先以普通角色落库，模拟站长后来才被写进配置
	mustCreateUser(t, "owner-open-id", model.RoleUser)

	user, err := s.upsertByOpenID("owner-open-id", &oauthProfile{})
	require.NoError(t, err)

	var got model.User
	require.NoError(t, testDB.First(&got, user.ID).Error)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestFetchOAuthIdentity(t *testing.T) {
	resetTables(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			fmt.Fprint(w, "access_token=tok-123&expires_in=7776000")
		case "/openid":
			fmt.Fprint(w, `callback( {"client_id":"app","openid":"oauth-open-id"} );`)
		case "/profile":
			fmt.Fprint(w, `{"nickname":"第三方昵称","figureurl_qq_1":"http://img/avatar.png"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	orig := config.GlobalConfig.OAuth
	config.GlobalConfig.OAuth = config.OAuthConfig{
		ClientID:     "app",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost/callback",
		TokenURL:     server.URL + "/token",
		OpenIDURL:    server.URL + "/openid",
		UserInfoURL:  server.URL + "/profile",
	}
	defer func() { config.GlobalConfig.OAuth = orig }()

	s := &UserService{
		db:         testDB,
		logger:     logger.GetSugaredLogger(),
		httpClient: server.Client(),
	}

	openID, profile, err := s.fetchOAuthIdentity("auth-code")
	require.NoError(t, err)
	assert.Equal(t, "oauth-open-id", openID)
	assert.Equal(t, "第三方昵称", profile.Nickname)
	assert.Equal(t, "http://img/avatar.png", profile.Avatar)
}

func TestOAuthResponseParsing(t *testing.T) {
	assert.Equal(t, "tok", parseQueryValue("access_token=tok&expires_in=60", "access_token"))
	assert.Empty(t, parseQueryValue("access_token=tok", "refresh_token"))

	assert.Equal(t, "abc", extractOpenID(`callback( {"client_id":"x","openid":"abc"} );`))
	assert.Empty(t, extractOpenID(`callback( {"error":100016} );`))
}

func TestRefreshTokensRequiresExistingUser(t *testing.T) {
	resetTables(t)
	s := &UserService{db: testDB, logger: logger.GetSugaredLogger()}

	user := mustCreateUser(t, "refresh-user", model.RoleUser)

	pair, err := s.RefreshTokens(user.ID, "old-token-id", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = s.RefreshTokens(99999, "old-token-id", time.Now().Add(time.Hour))
	assert.Error(t, err)
}
