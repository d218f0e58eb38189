package model

// Tag 标签模型
type Tag struct {
	Base
	Slug  string `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Name  string `gorm:"type:varchar(50);not null" json:"name"`
	Color string `gorm:"type:varchar(20)" json:"color"`

	// 关联
	Articles []*Article `gorm:"many2many:article_tags;" json:"articles,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// ArticleTag 文章-标签关联模型，复合主键保证同一标签不会重复挂到同一文章
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey;type:int(11);not null" json:"article_id"`
	TagID     uint `gorm:"primaryKey;type:int(11);not null" json:"tag_id"`
}

// TableName 指定表名
func (ArticleTag) TableName() string {
	return "article_tags"
}
