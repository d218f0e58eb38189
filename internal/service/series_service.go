package service

import (
	"errors"
	"sync"

	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	seriesService     *SeriesService
	seriesServiceOnce sync.Once
)

// SeriesService 专栏服务
type SeriesService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewSeriesService 创建专栏服务实例
func NewSeriesService() *SeriesService {
	seriesServiceOnce.Do(func() {
		seriesService = &SeriesService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return seriesService
}

// List 获取专栏列表
func (s *SeriesService) List() ([]dto.SeriesInfo, error) {
	if s.db == nil {
		return []dto.SeriesInfo{}, nil
	}

	var series []model.Series
	if err := s.db.Order("id ASC").Find(&series).Error; err != nil {
		return nil, err
	}

	infos := make([]dto.SeriesInfo, 0, len(series))
	for _, sr := range series {
		infos = append(infos, convertSeriesInfo(&sr))
	}
	return infos, nil
}

// ListWithCount 获取专栏列表及各专栏下已发布文章数
func (s *SeriesService) ListWithCount() ([]dto.SeriesWithCount, error) {
	if s.db == nil {
		return []dto.SeriesWithCount{}, nil
	}

	var rows []dto.SeriesWithCount
	err := s.db.Table("series").
		Select("series.id, series.slug, series.title, series.description, series.cover_image, COUNT(articles.id) AS article_count").
		Joins("LEFT JOIN articles ON articles.series_id = series.id AND articles.status = ?",
			model.ArticleStatusPublished).
		Group("series.id, series.slug, series.title, series.description, series.cover_image").
		Order("series.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []dto.SeriesWithCount{}
	}
	return rows, nil
}

// GetByID 根据ID获取专栏
func (s *SeriesService) GetByID(id uint) (*model.Series, error) {
	return s.getOne("id = ?", id)
}

// GetBySlug 根据slug获取专栏
func (s *SeriesService) GetBySlug(slug string) (*model.Series, error) {
	return s.getOne("slug = ?", slug)
}

// getOne 按条件取单个专栏，不存在返回(nil, nil)
func (s *SeriesService) getOne(cond string, value interface{}) (*model.Series, error) {
	if s.db == nil {
		return nil, nil
	}

	var series model.Series
	if err := s.db.Where(cond, value).First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &series, nil
}

// Create 创建专栏
func (s *SeriesService) Create(req *dto.SeriesCreateRequest) (*model.Series, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	var count int64
	if err := s.db.Model(&model.Series{}).Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugConflict
	}

	series := &model.Series{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	}

	if err := s.db.Create(series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

// Update 更新专栏
func (s *SeriesService) Update(id uint, req *dto.SeriesUpdateRequest) (*model.Series, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	var series model.Series
	if err := s.db.First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("专栏不存在")
		}
		return nil, err
	}

	if req.Slug != "" && req.Slug != series.Slug {
		var count int64
		if err := s.db.Model(&model.Series{}).
			Where("slug = ? AND id != ?", req.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugConflict
		}
		series.Slug = req.Slug
	}

	if req.Title != "" {
		series.Title = req.Title
	}
	if req.Description != nil {
		series.Description = *req.Description
	}
	if req.CoverImage != nil {
		series.CoverImage = *req.CoverImage
	}

	if err := s.db.Model(&series).
		Select("slug", "title", "description", "cover_image").
		Updates(&series).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

// Delete 删除专栏
// 先将所有成员文章的series_id置空，文章不能指向不存在的专栏
func (s *SeriesService) Delete(id uint) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	var series model.Series
	if err := s.db.First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("专栏不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Article{}).
			Where("series_id = ?", id).
			Updates(map[string]interface{}{"series_id": nil, "series_order": 0}).Error; err != nil {
			return err
		}
		return tx.Delete(&series).Error
	})
}

// convertSeriesInfo 专栏模型转DTO
func convertSeriesInfo(series *model.Series) dto.SeriesInfo {
	return dto.SeriesInfo{
		ID:          series.ID,
		Slug:        series.Slug,
		Title:       series.Title,
		Description: series.Description,
		CoverImage:  series.CoverImage,
	}
}
