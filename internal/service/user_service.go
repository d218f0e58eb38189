package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/hxzhou/blog-platform/pkg/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	userService     *UserService
	userServiceOnce sync.Once

	openIDPattern = regexp.MustCompile(`"openid"\s*:\s*"(.*?)"`)
)

// UserService 用户服务
type UserService struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	httpClient *http.Client
}

// NewUserService 创建用户服务实例
func NewUserService() *UserService {
	userServiceOnce.Do(func() {
		userService = &UserService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
			httpClient: &http.Client{
				Timeout: 10 * time.Second,
			},
		}
	})
	return userService
}

// oauthProfile 第三方平台返回的用户资料
type oauthProfile struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"figureurl_qq_1"`
}

// Login 第三方授权码登录
// 按openID做upsert：首次登录创建用户，之后每次登录刷新资料和登录时间；
// openID匹配站长配置时提升为管理员
func (s *UserService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	openID, profile, err := s.fetchOAuthIdentity(req.Code)
	if err != nil {
		return nil, err
	}

	user, err := s.upsertByOpenID(openID, profile)
	if err != nil {
		return nil, err
	}

	tokenPair, err := auth.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         convertUserInfo(user),
	}, nil
}

// upsertByOpenID 以openID为键写入用户
func (s *UserService) upsertByOpenID(openID string, profile *oauthProfile) (*model.User, error) {
	cfg := config.GetConfig()
	now := time.Now()

	var user model.User
	err := s.db.Where("open_id = ?", openID).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// 首次登录创建用户
		role := model.RoleUser
		if cfg.App.OwnerOpenID != "" && openID == cfg.App.OwnerOpenID {
			role = model.RoleAdmin
		}

		user = model.User{
			OpenID:       openID,
			Nickname:     profile.Nickname,
			Avatar:       profile.Avatar,
			Role:         role,
			LastSignedIn: now,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		s.logger.Infof("新用户注册: id=%d role=%s", user.ID, user.Role)
		return &user, nil
	}

	// 再次登录刷新资料
	updates := map[string]interface{}{
		"last_signed_in": now,
	}
	if profile.Nickname != "" {
		updates["nickname"] = profile.Nickname
	}
	if profile.Avatar != "" {
		updates["avatar"] = profile.Avatar
	}
	if cfg.App.OwnerOpenID != "" && openID == cfg.App.OwnerOpenID && user.Role != model.RoleAdmin {
		updates["role"] = model.RoleAdmin
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// fetchOAuthIdentity 完成OAuth流程：授权码换token，再取openID和用户资料
func (s *UserService) fetchOAuthIdentity(code string) (string, *oauthProfile, error) {
	cfg := config.GetConfig().OAuth

	tokenURL := fmt.Sprintf("%s?grant_type=authorization_code&client_id=%s&client_secret=%s&code=%s&redirect_uri=%s",
		cfg.TokenURL, cfg.ClientID, cfg.ClientSecret, url.QueryEscape(code), url.QueryEscape(cfg.RedirectURI))

	tokenResp, err := s.httpGet(tokenURL)
	if err != nil {
		return "", nil, fmt.Errorf("获取access_token失败: %w", err)
	}

	accessToken := parseQueryValue(tokenResp, "access_token")
	if accessToken == "" {
		return "", nil, errors.New("授权码无效")
	}

	openIDResp, err := s.httpGet(fmt.Sprintf("%s?access_token=%s", cfg.OpenIDURL, accessToken))
	if err != nil {
		return "", nil, fmt.Errorf("获取openid失败: %w", err)
	}

	openID := extractOpenID(openIDResp)
	if openID == "" {
		return "", nil, errors.New("解析openid失败")
	}

	profileURL := fmt.Sprintf("%s?access_token=%s&oauth_consumer_key=%s&openid=%s",
		cfg.UserInfoURL, accessToken, cfg.ClientID, openID)

	var profile oauthProfile
	profileResp, err := s.httpGet(profileURL)
	if err != nil {
		// 资料获取失败不阻断登录
		s.logger.Warnf("获取用户资料失败: %v", err)
	} else if err := json.Unmarshal([]byte(profileResp), &profile); err != nil {
		s.logger.Warnf("解析用户资料失败: %v", err)
	}

	return openID, &profile, nil
}

// httpGet 发送GET请求，失败时有限次重试
func (s *UserService) httpGet(rawURL string) (string, error) {
	var body string
	err := retry.Do(
		func() error {
			resp, err := s.httpClient.Get(rawURL)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("上游返回 %d", resp.StatusCode)
			}

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			body = string(data)
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
	)
	return body, err
}

// parseQueryValue 从key=value&...格式响应中取值
func parseQueryValue(query, key string) string {
	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	return values.Get(key)
}

// extractOpenID 从回调响应中提取openID
func extractOpenID(resp string) string {
	matches := openIDPattern.FindStringSubmatch(resp)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*model.User, error) {
	if s.db == nil {
		return nil, nil
	}

	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Logout 注销登录，刷新令牌拉入黑名单
func (s *UserService) Logout(tokenID string, expireAt time.Time) error {
	return auth.GetTokenBlacklist().Add(tokenID, expireAt)
}

// RefreshTokens 轮换令牌对，旧令牌立即失效
func (s *UserService) RefreshTokens(userID uint, oldTokenID string, oldExpireAt time.Time) (*auth.TokenPair, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("用户不存在")
	}

	if err := auth.GetTokenBlacklist().Add(oldTokenID, oldExpireAt); err != nil {
		s.logger.Warnf("拉黑旧令牌失败: %v", err)
	}

	return auth.GenerateTokenPair(user.ID, user.Role)
}

// convertUserInfo 用户模型转DTO
func convertUserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:           user.ID,
		Nickname:     user.Nickname,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		Role:         user.Role,
		LastSignedIn: user.LastSignedIn,
	}
}
