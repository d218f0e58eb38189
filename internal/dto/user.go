package dto

import "time"

// LoginRequest 第三方登录请求
type LoginRequest struct {
	Code string `json:"code" binding:"required"` // OAuth授权码
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string   `json:"access_token"`  // 访问令牌
	RefreshToken string   `json:"refresh_token"` // 刷新令牌
	ExpiresIn    int      `json:"expires_in"`    // 访问令牌有效期(秒)
	User         UserInfo `json:"user"`          // 用户信息
}

// UserInfo 用户信息
type UserInfo struct {
	ID           uint      `json:"id"`             // 用户ID
	Nickname     string    `json:"nickname"`       // 昵称
	Avatar       string    `json:"avatar"`         // 头像
	Bio          string    `json:"bio"`            // 简介
	Role         string    `json:"role"`           // 角色
	LastSignedIn time.Time `json:"last_signed_in"` // 最近登录时间
}
