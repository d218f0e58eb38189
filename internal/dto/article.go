package dto

import "time"

// ArticleListRequest 文章列表查询请求，所有过滤条件可选且为AND组合
type ArticleListRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft published archived"` // 仅管理员接口生效
	SeriesID uint   `form:"series_id"`                                                 // 专栏ID
	Year     int    `form:"year"`                                                      // 发布年份
	TagID    uint   `form:"tag_id"`                                                    // 标签ID
	Search   string `form:"search" binding:"max=100"`                                  // 关键词，匹配标题/正文/摘要
	Order    string `form:"order" binding:"omitempty,oneof=newest oldest weight"`      // 排序方式
	Page     int    `form:"page" binding:"omitempty,min=1"`                            // 页码
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`               // 每页条数
}

// ArticleCreateRequest 创建文章请求
type ArticleCreateRequest struct {
	Slug        string     `json:"slug" binding:"required,slug,max=100"`                       // 文章slug
	Title       string     `json:"title" binding:"required,max=255"`                           // 文章标题
	Excerpt     string     `json:"excerpt" binding:"max=500"`                                  // 文章摘要
	Content     string     `json:"content" binding:"required"`                                 // 文章内容(markdown)
	CoverImage  string     `json:"cover_image"`                                                // 封面图片
	SeriesID    *uint      `json:"series_id"`                                                  // 专栏ID
	SeriesOrder int        `json:"series_order" binding:"min=0"`                               // 专栏内排序
	Weight      int        `json:"weight" binding:"min=0"`                                     // 推荐权重
	Status      string     `json:"status" binding:"required,oneof=draft published archived"`   // 状态
	TagIDs      []uint     `json:"tag_ids" binding:"dive,min=1"`                               // 标签ID列表
	Gallery     []string   `json:"gallery"`                                                    // 相册图片列表
	Footnotes   []Footnote `json:"footnotes" binding:"dive"`                                   // 脚注列表
}

// ArticleUpdateRequest 更新文章请求
type ArticleUpdateRequest struct {
	Slug        string     `json:"slug" binding:"omitempty,slug,max=100"`                      // 文章slug
	Title       string     `json:"title" binding:"omitempty,max=255"`                          // 文章标题
	Excerpt     *string    `json:"excerpt" binding:"omitempty"`                                // 文章摘要
	Content     string     `json:"content"`                                                    // 文章内容
	CoverImage  *string    `json:"cover_image"`                                                // 封面图片
	SeriesID    *uint      `json:"series_id"`                                                  // 专栏ID
	SeriesOrder *int       `json:"series_order" binding:"omitempty,min=0"`                     // 专栏内排序
	Weight      *int       `json:"weight" binding:"omitempty,min=0"`                           // 推荐权重
	Status      string     `json:"status" binding:"omitempty,oneof=draft published archived"`  // 状态
	TagIDs      []uint     `json:"tag_ids" binding:"omitempty,dive,min=1"`                     // 标签ID列表，提供时整体替换
	Gallery     []string   `json:"gallery"`                                                    // 相册图片列表
	Footnotes   []Footnote `json:"footnotes" binding:"omitempty,dive"`                         // 脚注列表
}

// Footnote 脚注
type Footnote struct {
	ID      string `json:"id" binding:"required,max=50"`  // 正文中的引用ID
	Content string `json:"content" binding:"required"`    // 脚注内容
}

// ArticleListItem 文章列表项
type ArticleListItem struct {
	ID          uint       `json:"id"`           // 文章ID
	Slug        string     `json:"slug"`         // 文章slug
	Title       string     `json:"title"`        // 文章标题
	Excerpt     string     `json:"excerpt"`      // 文章摘要
	CoverImage  string     `json:"cover_image"`  // 封面图片
	AuthorID    uint       `json:"author_id"`    // 作者ID
	AuthorName  string     `json:"author_name"`  // 作者名称
	SeriesID    *uint      `json:"series_id"`    // 专栏ID
	Weight      int        `json:"weight"`       // 推荐权重
	Status      string     `json:"status"`       // 状态
	ViewCount   int        `json:"view_count"`   // 浏览量
	Tags        []TagInfo  `json:"tags"`         // 标签列表
	PublishedAt *time.Time `json:"published_at"` // 发布时间
	CreatedAt   time.Time  `json:"created_at"`   // 创建时间
}

// ArticleListResponse 文章列表响应
type ArticleListResponse struct {
	Total int64             `json:"total"` // 总记录数
	List  []ArticleListItem `json:"list"`  // 文章列表
}

// ArticleDetailResponse 文章详情响应
type ArticleDetailResponse struct {
	ID          uint       `json:"id"`           // 文章ID
	Slug        string     `json:"slug"`         // 文章slug
	Title       string     `json:"title"`        // 文章标题
	Excerpt     string     `json:"excerpt"`      // 文章摘要
	Content     string     `json:"content"`      // 文章内容
	CoverImage  string     `json:"cover_image"`  // 封面图片
	AuthorID    uint       `json:"author_id"`    // 作者ID
	AuthorName  string     `json:"author_name"`  // 作者名称
	AuthorAvatar string    `json:"author_avatar"` // 作者头像
	SeriesID    *uint      `json:"series_id"`    // 专栏ID
	SeriesTitle string     `json:"series_title"` // 专栏标题
	SeriesSlug  string     `json:"series_slug"`  // 专栏slug
	SeriesOrder int        `json:"series_order"` // 专栏内排序
	Weight      int        `json:"weight"`       // 推荐权重
	Status      string     `json:"status"`       // 状态
	ViewCount   int        `json:"view_count"`   // 浏览量
	Gallery     []string   `json:"gallery"`      // 相册图片列表
	Footnotes   []Footnote `json:"footnotes"`    // 脚注列表
	Tags        []TagInfo  `json:"tags"`         // 标签列表
	PublishedAt *time.Time `json:"published_at"` // 发布时间
	CreatedAt   time.Time  `json:"created_at"`   // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`   // 更新时间
}
