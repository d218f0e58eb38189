package model

import (
	"time"
)

// 文章状态
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// Footnote 文章脚注，正文中以id引用
type Footnote struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Article 文章模型
type Article struct {
	Base
	Slug        string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:longtext" json:"content"`
	CoverImage  string     `gorm:"type:varchar(255)" json:"cover_image"`
	AuthorID    uint       `gorm:"type:int(11);not null;index" json:"author_id"`
	SeriesID    *uint      `gorm:"type:int(11);index" json:"series_id"`
	SeriesOrder int        `gorm:"type:int(11);not null;default:0" json:"series_order"`
	Weight      int        `gorm:"type:int(11);not null;default:0;index" json:"weight"`           // >0为推荐文章，数值越大越靠前
	Status      string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 状态: draft published archived
	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	ViewCount   int        `gorm:"type:int(11);not null;default:0" json:"view_count"`
	Gallery     []string   `gorm:"type:json;serializer:json" json:"gallery"`
	Footnotes   []Footnote `gorm:"type:json;serializer:json" json:"footnotes"`

	// 关联
	Author User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Series *Series `gorm:"foreignKey:SeriesID" json:"series,omitempty"`
	Tags   []Tag   `gorm:"many2many:article_tags;" json:"tags,omitempty"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// IsPublished 是否已发布
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}
