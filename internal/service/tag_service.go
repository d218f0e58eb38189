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
	tagService     *TagService
	tagServiceOnce sync.Once
)

// TagService 标签服务
type TagService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewTagService 创建标签服务实例
func NewTagService() *TagService {
	tagServiceOnce.Do(func() {
		tagService = &TagService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return tagService
}

// List 获取标签列表
func (s *TagService) List() ([]dto.TagInfo, error) {
	if s.db == nil {
		return []dto.TagInfo{}, nil
	}

	var tags []model.Tag
	if err := s.db.Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return convertTagInfos(tags), nil
}

// ListWithCount 获取标签列表及各标签下已发布文章数
// 草稿和已归档文章不计入公开计数
func (s *TagService) ListWithCount() ([]dto.TagWithCount, error) {
	if s.db == nil {
		return []dto.TagWithCount{}, nil
	}

	var rows []dto.TagWithCount
	err := s.db.Table("tags").
		Select("tags.id, tags.slug, tags.name, tags.color, COUNT(articles.id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Joins("LEFT JOIN articles ON articles.id = article_tags.article_id AND articles.status = ?",
			model.ArticleStatusPublished).
		Group("tags.id, tags.slug, tags.name, tags.color").
		Order("tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []dto.TagWithCount{}
	}
	return rows, nil
}

// GetByID 根据ID获取标签
func (s *TagService) GetByID(id uint) (*model.Tag, error) {
	return s.getOne("id = ?", id)
}

// GetBySlug 根据slug获取标签
func (s *TagService) GetBySlug(slug string) (*model.Tag, error) {
	return s.getOne("slug = ?", slug)
}

// getOne 按条件取单个标签，不存在返回(nil, nil)
func (s *TagService) getOne(cond string, value interface{}) (*model.Tag, error) {
	if s.db == nil {
		return nil, nil
	}

	var tag model.Tag
	if err := s.db.Where(cond, value).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Create 创建标签
func (s *TagService) Create(req *dto.TagCreateRequest) (*model.Tag, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	var count int64
	if err := s.db.Model(&model.Tag{}).Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugConflict
	}

	tag := &model.Tag{
		Slug:  req.Slug,
		Name:  req.Name,
		Color: req.Color,
	}

	if err := s.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// Update 更新标签
func (s *TagService) Update(id uint, req *dto.TagUpdateRequest) (*model.Tag, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	var tag model.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("标签不存在")
		}
		return nil, err
	}

	if req.Slug != "" && req.Slug != tag.Slug {
		var count int64
		if err := s.db.Model(&model.Tag{}).
			Where("slug = ? AND id != ?", req.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugConflict
		}
		tag.Slug = req.Slug
	}

	if req.Name != "" {
		tag.Name = req.Name
	}
	if req.Color != "" {
		tag.Color = req.Color
	}

	if err := s.db.Model(&tag).
		Select("slug", "name", "color").
		Updates(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete 删除标签，先删除文章关联再删除标签行
func (s *TagService) Delete(id uint) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	var tag model.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("标签不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
