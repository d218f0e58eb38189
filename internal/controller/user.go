package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/middleware"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
	"go.uber.org/zap"
)

// UserApi 用户API控制器
type UserApi struct {
	logger      *zap.SugaredLogger
	userService *service.UserService
}

// NewUserApi 创建用户API控制器
func NewUserApi() *UserApi {
	return &UserApi{
		logger:      logger.GetSugaredLogger(),
		userService: service.NewUserService(),
	}
}

// Login 第三方授权码登录
func (api *UserApi) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.userService.Login(&req)
	if err != nil {
		api.logger.Errorf("登录失败: %v", err)
		response.Unauthorized(c, "登录失败", err)
		return
	}

	response.Success(c, "登录成功", result)
}

// GetUserInfo 获取当前用户信息
func (api *UserApi) GetUserInfo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	user, err := api.userService.GetByID(userID)
	if err != nil {
		api.logger.Errorf("获取用户信息失败: %v", err)
		response.InternalServerError(c, "获取用户信息失败", err)
		return
	}
	if user == nil {
		response.NotFound(c, "用户不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"user": user})
}

// Logout 注销登录
func (api *UserApi) Logout(c *gin.Context) {
	tokenID, exists := middleware.GetTokenID(c)
	if !exists {
		response.Unauthorized(c, "未授权", nil)
		return
	}

	expireAt := time.Now().Add(24 * time.Hour)
	if v, ok := c.Get("tokenExpireAt"); ok {
		expireAt = v.(time.Time)
	}

	if err := api.userService.Logout(tokenID, expireAt); err != nil {
		api.logger.Errorf("注销失败: %v", err)
		response.InternalServerError(c, "注销失败", err)
		return
	}

	response.Success(c, "注销成功", nil)
}

// RefreshToken 刷新令牌对
func (api *UserApi) RefreshToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "未授权", nil)
		return
	}
	tokenID, _ := middleware.GetTokenID(c)

	expireAt := time.Now().Add(24 * time.Hour)
	if v, ok := c.Get("tokenExpireAt"); ok {
		expireAt = v.(time.Time)
	}

	pair, err := api.userService.RefreshTokens(userID, tokenID, expireAt)
	if err != nil {
		api.logger.Errorf("刷新令牌失败: %v", err)
		response.Unauthorized(c, "刷新令牌失败", err)
		return
	}

	response.Success(c, "刷新成功", pair)
}
