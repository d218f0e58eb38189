package dto

import "time"

// CommentCreateRequest 创建评论请求
type CommentCreateRequest struct {
	ArticleID uint   `json:"article_id" binding:"required"`       // 文章ID
	ParentID  *uint  `json:"parent_id"`                           // 父评论ID，回复时提供
	Content   string `json:"content" binding:"required,max=2000"` // 评论内容
}

// CommentListRequest 评论列表查询请求
type CommentListRequest struct {
	ArticleID uint `form:"article_id" binding:"required"` // 文章ID
}

// CommentAdminListRequest 后台评论列表查询请求
type CommentAdminListRequest struct {
	ArticleID uint   `form:"article_id"`                                                 // 文章ID，0表示全部
	Status    string `form:"status" binding:"omitempty,oneof=pending approved rejected"` // 状态
	Page      int    `form:"page" binding:"omitempty,min=1"`                             // 页码
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`                // 每页条数
}

// CommentNode 评论树节点
type CommentNode struct {
	ID        uint           `json:"id"`         // 评论ID
	Content   string         `json:"content"`    // 评论内容
	ArticleID uint           `json:"article_id"` // 文章ID
	ParentID  *uint          `json:"parent_id"`  // 父评论ID
	Status    string         `json:"status"`     // 状态
	Author    CommentAuthor  `json:"author"`     // 作者信息
	Children  []*CommentNode `json:"children"`   // 子评论
	CreatedAt time.Time      `json:"created_at"` // 创建时间
}

// CommentAuthor 评论作者信息
type CommentAuthor struct {
	ID       uint   `json:"id"`       // 用户ID
	Nickname string `json:"nickname"` // 昵称
	Avatar   string `json:"avatar"`   // 头像
	Role     string `json:"role"`     // 角色
}

// CommentAdminItem 后台评论列表项
type CommentAdminItem struct {
	ID           uint          `json:"id"`            // 评论ID
	Content      string        `json:"content"`       // 评论内容
	ArticleID    uint          `json:"article_id"`    // 文章ID
	ArticleTitle string        `json:"article_title"` // 文章标题
	ArticleSlug  string        `json:"article_slug"`  // 文章slug
	ParentID     *uint         `json:"parent_id"`     // 父评论ID
	Status       string        `json:"status"`        // 状态
	Author       CommentAuthor `json:"author"`        // 作者信息
	CreatedAt    time.Time     `json:"created_at"`    // 创建时间
}

// CommentAdminListResponse 后台评论列表响应
type CommentAdminListResponse struct {
	Total int64              `json:"total"` // 总记录数
	List  []CommentAdminItem `json:"list"`  // 评论列表
}
