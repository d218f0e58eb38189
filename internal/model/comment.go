package model

// 评论状态
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
)

// Comment 评论模型，parent_id自引用构成回复树
type Comment struct {
	Base
	Content   string `gorm:"type:text;not null" json:"content"`
	ArticleID uint   `gorm:"type:int(11);not null;index" json:"article_id"`
	UserID    uint   `gorm:"type:int(11);not null;index" json:"user_id"`
	ParentID  *uint  `gorm:"type:int(11);index" json:"parent_id"`
	Status    string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 状态: pending approved rejected

	// 关联
	Article  Article    `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	User     User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Parent   *Comment   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []*Comment `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
