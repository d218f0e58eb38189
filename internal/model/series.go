package model

// Series 专栏模型，文章的有序合集
type Series struct {
	Base
	Slug        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CoverImage  string `gorm:"type:varchar(255)" json:"cover_image"`

	// 关联
	Articles []*Article `gorm:"foreignKey:SeriesID" json:"articles,omitempty"`
}

// TableName 指定表名
func (Series) TableName() string {
	return "series"
}
