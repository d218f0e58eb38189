package dto

// ArchiveYear 归档年份统计
type ArchiveYear struct {
	Year  int   `json:"year"`  // 年份
	Count int64 `json:"count"` // 该年已发布文章数
}
