package model

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型，首次第三方登录时创建
type User struct {
	Base
	OpenID       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"open_id"`
	Nickname     string    `gorm:"type:varchar(50)" json:"nickname"`
	Avatar       string    `gorm:"type:varchar(255)" json:"avatar"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // 角色: user admin
	LastSignedIn time.Time `json:"last_signed_in"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
