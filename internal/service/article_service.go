package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	defaultPageSize  = 10
	featuredMaxLimit = 20
	// 同一访客对同一文章的浏览计数间隔
	viewGuardTTL = 30 * time.Minute
)

var (
	articleService     *ArticleService
	articleServiceOnce sync.Once
)

// ArticleService 文章服务
type ArticleService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.SugaredLogger
}

// NewArticleService 创建文章服务实例
func NewArticleService() *ArticleService {
	articleServiceOnce.Do(func() {
		articleService = &ArticleService{
			db:     database.GetDB(),
			redis:  database.GetRedis(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return articleService
}

// escapeLikePattern 转义LIKE通配符，用户输入的%和_按字面量匹配
// 以!作为转义符配合ESCAPE子句，MySQL与SQLite语义一致
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)
	return r.Replace(s)
}

// List 获取文章列表，非管理员强制只返回已发布文章
func (s *ArticleService) List(req *dto.ArticleListRequest, isAdmin bool) (*dto.ArticleListResponse, error) {
	// 读路径降级：存储不可用时返回空结果
	if s.db == nil {
		return &dto.ArticleListResponse{Total: 0, List: []dto.ArticleListItem{}}, nil
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}

	query := s.db.Model(&model.Article{})

	// 可见性：非管理员只能看到已发布文章，管理员可按状态过滤或不过滤
	if !isAdmin {
		query = query.Where("status = ?", model.ArticleStatusPublished)
	} else if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if req.SeriesID > 0 {
		query = query.Where("series_id = ?", req.SeriesID)
	}

	if req.Year > 0 {
		start := time.Date(req.Year, 1, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(1, 0, 0)
		query = query.Where("published_at >= ? AND published_at < ?", start, end)
	}

	// 标签过滤：先解析出携带该标签的文章ID集合，为空直接短路
	if req.TagID > 0 {
		var articleIDs []uint
		if err := s.db.Model(&model.ArticleTag{}).
			Where("tag_id = ?", req.TagID).
			Pluck("article_id", &articleIDs).Error; err != nil {
			return nil, err
		}
		if len(articleIDs) == 0 {
			return &dto.ArticleListResponse{Total: 0, List: []dto.ArticleListItem{}}, nil
		}
		query = query.Where("id IN ?", articleIDs)
	}

	if req.Search != "" {
		pattern := "%" + escapeLikePattern(req.Search) + "%"
		query = query.Where(
			"title LIKE ? ESCAPE '!' OR content LIKE ? ESCAPE '!' OR excerpt LIKE ? ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}

	// 总数与列表使用同一过滤条件，与分页参数无关
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	switch req.Order {
	case "oldest":
		query = query.Order("published_at ASC").Order("id ASC")
	case "weight":
		query = query.Order("weight DESC").Order("published_at DESC").Order("id ASC")
	default: // newest
		query = query.Order("published_at DESC").Order("id ASC")
	}

	var articles []model.Article
	err := query.Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Preload("Author").
		Preload("Tags").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}

	return &dto.ArticleListResponse{
		Total: total,
		List:  s.convertToListItems(articles),
	}, nil
}

// ListFeatured 获取推荐文章，weight>0的已发布文章按权重降序
func (s *ArticleService) ListFeatured(limit int) ([]dto.ArticleListItem, error) {
	if s.db == nil {
		return []dto.ArticleListItem{}, nil
	}

	if limit <= 0 {
		limit = 5
	}
	if limit > featuredMaxLimit {
		limit = featuredMaxLimit
	}

	var articles []model.Article
	err := s.db.Model(&model.Article{}).
		Where("status = ? AND weight > 0", model.ArticleStatusPublished).
		Order("weight DESC").Order("published_at DESC").Order("id ASC").
		Limit(limit).
		Preload("Author").
		Preload("Tags").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}

	return s.convertToListItems(articles), nil
}

// GetByID 根据ID获取文章详情，非管理员看不到未发布文章
func (s *ArticleService) GetByID(id uint, isAdmin bool) (*dto.ArticleDetailResponse, error) {
	return s.getOne("id = ?", id, isAdmin)
}

// GetBySlug 根据slug获取文章详情
func (s *ArticleService) GetBySlug(slug string, isAdmin bool) (*dto.ArticleDetailResponse, error) {
	return s.getOne("slug = ?", slug, isAdmin)
}

// getOne 按条件取单篇文章并执行可见性检查
// 不存在与无权查看统一返回(nil, nil)，避免泄露未发布内容的存在性
func (s *ArticleService) getOne(cond string, value interface{}, isAdmin bool) (*dto.ArticleDetailResponse, error) {
	if s.db == nil {
		return nil, nil
	}

	var article model.Article
	if err := s.db.Where(cond, value).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !article.IsPublished() && !isAdmin {
		return nil, nil
	}

	// 并发解析三组关联数据
	var (
		tags   []model.Tag
		author model.User
		series *model.Series
	)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&article).Association("Tags").Find(&tags)
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).First(&author, article.AuthorID).Error
	})
	if article.SeriesID != nil {
		g.Go(func() error {
			var sr model.Series
			if err := s.db.WithContext(ctx).First(&sr, *article.SeriesID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			series = &sr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.buildDetailResponse(&article, tags, &author, series), nil
}

// IncrementView 浏览量加一，只对已发布文章生效
// visitorKey非空且redis可用时做一次性防重，同一访客短时间内重复调用不重复计数
func (s *ArticleService) IncrementView(id uint, visitorKey string) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	if visitorKey != "" && s.redis != nil {
		key := fmt.Sprintf("article:viewed:%d:%s", id, visitorKey)
		ok, err := s.redis.SetNX(context.Background(), key, 1, viewGuardTTL).Result()
		if err != nil {
			s.logger.Warnf("浏览去重检查失败: %v", err)
		} else if !ok {
			return nil // 计数窗口内已经统计过
		}
	}

	// 原子自增，写入前再次确认已发布状态
	return s.db.Model(&model.Article{}).
		Where("id = ? AND status = ?", id, model.ArticleStatusPublished).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Create 创建文章，创建时即为已发布则立即盖发布时间戳
func (s *ArticleService) Create(authorID uint, req *dto.ArticleCreateRequest) (*model.Article, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	var count int64
	if err := s.db.Model(&model.Article{}).Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugConflict
	}

	article := &model.Article{
		Slug:        req.Slug,
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		AuthorID:    authorID,
		SeriesID:    req.SeriesID,
		SeriesOrder: req.SeriesOrder,
		Weight:      req.Weight,
		Status:      req.Status,
		Gallery:     req.Gallery,
		Footnotes:   convertFootnotes(req.Footnotes),
	}

	if article.Status == model.ArticleStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}

		if err := s.replaceTagLinks(tx, article.ID, req.TagIDs); err != nil {
			return err
		}

		return tx.Preload("Author").Preload("Tags").First(article, article.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

// Update 更新文章
// 发布时间戳只在首次进入published时盖章，归档后再发布保留原发布时间
func (s *ArticleService) Update(id uint, req *dto.ArticleUpdateRequest) (*model.Article, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	var article model.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("文章不存在")
		}
		return nil, err
	}

	if req.Slug != "" && req.Slug != article.Slug {
		var count int64
		if err := s.db.Model(&model.Article{}).
			Where("slug = ? AND id != ?", req.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugConflict
		}
		article.Slug = req.Slug
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.Content != "" {
		article.Content = req.Content
	}
	if req.CoverImage != nil {
		article.CoverImage = *req.CoverImage
	}
	if req.SeriesID != nil {
		article.SeriesID = req.SeriesID
	}
	if req.SeriesOrder != nil {
		article.SeriesOrder = *req.SeriesOrder
	}
	if req.Weight != nil {
		article.Weight = *req.Weight
	}
	if req.Gallery != nil {
		article.Gallery = req.Gallery
	}
	if req.Footnotes != nil {
		article.Footnotes = convertFootnotes(req.Footnotes)
	}

	if req.Status != "" && req.Status != article.Status {
		// 发布时间戳记录首次发布，归档后再发布不重盖
		if req.Status == model.ArticleStatusPublished && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
		article.Status = req.Status
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// view_count由原子自增维护，不随整体更新回写
		if err := tx.Model(&article).
			Select("slug", "title", "excerpt", "content", "cover_image", "series_id",
				"series_order", "weight", "status", "published_at", "gallery", "footnotes").
			Updates(&article).Error; err != nil {
			return err
		}

		if req.TagIDs != nil {
			if err := s.replaceTagLinks(tx, article.ID, req.TagIDs); err != nil {
				return err
			}
		}

		return tx.Preload("Author").Preload("Tags").First(&article, article.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// Delete 删除文章，级联删除标签关联与全部评论，依赖行先删
func (s *ArticleService) Delete(id uint) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	var article model.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("文章不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}

		if err := tx.Where("article_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&article).Error
	})
}

// replaceTagLinks 全量替换文章的标签关联，先清空再插入
func (s *ArticleService) replaceTagLinks(tx *gorm.DB, articleID uint, tagIDs []uint) error {
	if err := tx.Where("article_id = ?", articleID).Delete(&model.ArticleTag{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	// 去重，复合主键下重复插入会直接报错
	seen := make(map[uint]bool, len(tagIDs))
	var uniqueIDs []uint
	for _, tagID := range tagIDs {
		if !seen[tagID] {
			seen[tagID] = true
			uniqueIDs = append(uniqueIDs, tagID)
		}
	}

	var existing int64
	if err := tx.Model(&model.Tag{}).Where("id IN ?", uniqueIDs).Count(&existing).Error; err != nil {
		return err
	}
	if int(existing) != len(uniqueIDs) {
		return errors.New("存在无效的标签ID")
	}

	links := make([]model.ArticleTag, 0, len(uniqueIDs))
	for _, tagID := range uniqueIDs {
		links = append(links, model.ArticleTag{ArticleID: articleID, TagID: tagID})
	}
	return tx.Create(&links).Error
}

// convertToListItems 模型转列表项
func (s *ArticleService) convertToListItems(articles []model.Article) []dto.ArticleListItem {
	items := make([]dto.ArticleListItem, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		items = append(items, dto.ArticleListItem{
			ID:          a.ID,
			Slug:        a.Slug,
			Title:       a.Title,
			Excerpt:     a.Excerpt,
			CoverImage:  a.CoverImage,
			AuthorID:    a.AuthorID,
			AuthorName:  a.Author.Nickname,
			SeriesID:    a.SeriesID,
			Weight:      a.Weight,
			Status:      a.Status,
			ViewCount:   a.ViewCount,
			Tags:        convertTagInfos(a.Tags),
			PublishedAt: a.PublishedAt,
			CreatedAt:   a.CreatedAt,
		})
	}
	return items
}

// buildDetailResponse 组装文章详情响应
func (s *ArticleService) buildDetailResponse(article *model.Article, tags []model.Tag, author *model.User, series *model.Series) *dto.ArticleDetailResponse {
	resp := &dto.ArticleDetailResponse{
		ID:           article.ID,
		Slug:         article.Slug,
		Title:        article.Title,
		Excerpt:      article.Excerpt,
		Content:      article.Content,
		CoverImage:   article.CoverImage,
		AuthorID:     article.AuthorID,
		AuthorName:   author.Nickname,
		AuthorAvatar: author.Avatar,
		SeriesID:     article.SeriesID,
		SeriesOrder:  article.SeriesOrder,
		Weight:       article.Weight,
		Status:       article.Status,
		ViewCount:    article.ViewCount,
		Gallery:      article.Gallery,
		Footnotes:    convertModelFootnotes(article.Footnotes),
		Tags:         convertTagInfos(tags),
		PublishedAt:  article.PublishedAt,
		CreatedAt:    article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
	}

	if series != nil {
		resp.SeriesTitle = series.Title
		resp.SeriesSlug = series.Slug
	}
	return resp
}

// convertTagInfos 标签模型转DTO
func convertTagInfos(tags []model.Tag) []dto.TagInfo {
	infos := make([]dto.TagInfo, 0, len(tags))
	for _, t := range tags {
		infos = append(infos, dto.TagInfo{
			ID:    t.ID,
			Slug:  t.Slug,
			Name:  t.Name,
			Color: t.Color,
		})
	}
	return infos
}

// convertFootnotes 脚注DTO转模型
func convertFootnotes(footnotes []dto.Footnote) []model.Footnote {
	if footnotes == nil {
		return nil
	}
	result := make([]model.Footnote, 0, len(footnotes))
	for _, f := range footnotes {
		result = append(result, model.Footnote{ID: f.ID, Content: f.Content})
	}
	return result
}

// convertModelFootnotes 脚注模型转DTO
func convertModelFootnotes(footnotes []model.Footnote) []dto.Footnote {
	result := make([]dto.Footnote, 0, len(footnotes))
	for _, f := range footnotes {
		result = append(result, dto.Footnote{ID: f.ID, Content: f.Content})
	}
	return result
}
