package service

import (
	"sort"
	"sync"
	"time"

	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	archiveService     *ArchiveService
	archiveServiceOnce sync.Once
)

// ArchiveService 归档统计服务
type ArchiveService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewArchiveService 创建归档统计服务实例
func NewArchiveService() *ArchiveService {
	archiveServiceOnce.Do(func() {
		archiveService = &ArchiveService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return archiveService
}

// Years 按发布年份统计已发布文章数，年份降序
// 只统计published且有发布时间的文章，publishedAt为空的行直接排除
func (s *ArchiveService) Years() ([]dto.ArchiveYear, error) {
	if s.db == nil {
		return []dto.ArchiveYear{}, nil
	}

	var publishedAts []time.Time
	err := s.db.Model(&model.Article{}).
		Where("status = ? AND published_at IS NOT NULL", model.ArticleStatusPublished).
		Pluck("published_at", &publishedAts).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64)
	for _, t := range publishedAts {
		counts[t.Year()]++
	}

	years := make([]dto.ArchiveYear, 0, len(counts))
	for year, count := range counts {
		years = append(years, dto.ArchiveYear{Year: year, Count: count})
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year > years[j].Year
	})
	return years, nil
}
