package service

import (
	"sync"

	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	statsService     *StatsService
	statsServiceOnce sync.Once
)

// StatsService 内容统计服务
type StatsService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	cron   *cron.Cron
}

// NewStatsService 创建内容统计服务实例
func NewStatsService() *StatsService {
	statsServiceOnce.Do(func() {
		statsService = &StatsService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
			cron:   cron.New(),
		}
	})
	return statsService
}

// StartSchedule 启动定时任务，每天凌晨3点输出一次内容统计
func (s *StatsService) StartSchedule() error {
	_, err := s.cron.AddFunc("0 3 * * *", s.logContentStats)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// StopSchedule 停止定时任务
func (s *StatsService) StopSchedule() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// logContentStats 统计并记录当前内容规模
func (s *StatsService) logContentStats() {
	if s.db == nil {
		return
	}

	var published, drafts, pendingComments int64
	if err := s.db.Model(&model.Article{}).
		Where("status = ?", model.ArticleStatusPublished).Count(&published).Error; err != nil {
		s.logger.Warnf("统计已发布文章数失败: %v", err)
		return
	}
	if err := s.db.Model(&model.Article{}).
		Where("status = ?", model.ArticleStatusDraft).Count(&drafts).Error; err != nil {
		s.logger.Warnf("统计草稿数失败: %v", err)
		return
	}
	if err := s.db.Model(&model.Comment{}).
		Where("status = ?", model.CommentStatusPending).Count(&pendingComments).Error; err != nil {
		s.logger.Warnf("统计待审核评论数失败: %v", err)
		return
	}

	logger.Info("内容统计",
		zap.Int64("published_articles", published),
		zap.Int64("draft_articles", drafts),
		zap.Int64("pending_comments", pendingComments),
	)
}
