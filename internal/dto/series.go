package dto

// SeriesCreateRequest 创建专栏请求
type SeriesCreateRequest struct {
	Slug        string `json:"slug" binding:"required,slug,max=100"` // 专栏slug
	Title       string `json:"title" binding:"required,max=255"`     // 专栏标题
	Description string `json:"description" binding:"max=1000"`       // 专栏描述
	CoverImage  string `json:"cover_image"`                          // 封面图片
}

// SeriesUpdateRequest 更新专栏请求
type SeriesUpdateRequest struct {
	Slug        string  `json:"slug" binding:"omitempty,slug,max=100"` // 专栏slug
	Title       string  `json:"title" binding:"omitempty,max=255"`     // 专栏标题
	Description *string `json:"description" binding:"omitempty"`       // 专栏描述
	CoverImage  *string `json:"cover_image"`                           // 封面图片
}

// SeriesInfo 专栏信息
type SeriesInfo struct {
	ID          uint   `json:"id"`          // 专栏ID
	Slug        string `json:"slug"`        // 专栏slug
	Title       string `json:"title"`       // 专栏标题
	Description string `json:"description"` // 专栏描述
	CoverImage  string `json:"cover_image"` // 封面图片
}

// SeriesWithCount 专栏及其已发布文章数
type SeriesWithCount struct {
	ID           uint   `json:"id"`            // 专栏ID
	Slug         string `json:"slug"`          // 专栏slug
	Title        string `json:"title"`         // 专栏标题
	Description  string `json:"description"`   // 专栏描述
	CoverImage   string `json:"cover_image"`   // 封面图片
	ArticleCount int64  `json:"article_count"` // 已发布文章数
}
