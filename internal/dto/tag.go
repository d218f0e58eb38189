package dto

// TagCreateRequest 创建标签请求
type TagCreateRequest struct {
	Slug  string `json:"slug" binding:"required,slug,max=100"` // 标签slug
	Name  string `json:"name" binding:"required,max=50"`       // 标签名称
	Color string `json:"color" binding:"max=20"`               // 标签颜色
}

// TagUpdateRequest 更新标签请求
type TagUpdateRequest struct {
	Slug  string `json:"slug" binding:"omitempty,slug,max=100"` // 标签slug
	Name  string `json:"name" binding:"omitempty,max=50"`       // 标签名称
	Color string `json:"color" binding:"max=20"`                // 标签颜色
}

// TagInfo 标签信息
type TagInfo struct {
	ID    uint   `json:"id"`    // 标签ID
	Slug  string `json:"slug"`  // 标签slug
	Name  string `json:"name"`  // 标签名称
	Color string `json:"color"` // 标签颜色
}

// TagWithCount 标签及其已发布文章数
type TagWithCount struct {
	ID           uint   `json:"id"`            // 标签ID
	Slug         string `json:"slug"`          // 标签slug
	Name         string `json:"name"`          // 标签名称
	Color        string `json:"color"`         // 标签颜色
	ArticleCount int64  `json:"article_count"` // 已发布文章数
}
