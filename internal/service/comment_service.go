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
	commentService     *CommentService
	commentServiceOnce sync.Once
)

// CommentService 评论服务
type CommentService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewCommentService 创建评论服务实例
func NewCommentService() *CommentService {
	commentServiceOnce.Do(func() {
		commentService = &CommentService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return commentService
}

// Create 创建评论，管理员评论直接通过，其余进入待审核
func (s *CommentService) Create(userID uint, role string, req *dto.CommentCreateRequest) (*model.Comment, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	isAdmin := role == model.RoleAdmin

	// 检查文章是否存在，非管理员不能评论未发布文章
	var article model.Article
	if err := s.db.First(&article, req.ArticleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("文章不存在")
		}
		return nil, err
	}
	if !article.IsPublished() && !isAdmin {
		return nil, errors.New("文章不存在")
	}

	// 回复时父评论必须存在且属于同一篇文章
	if req.ParentID != nil && *req.ParentID > 0 {
		var parent model.Comment
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("回复的评论不存在")
			}
			return nil, err
		}
		if parent.ArticleID != req.ArticleID {
			return nil, errors.New("不能回复其他文章的评论")
		}
	}

	status := model.CommentStatusPending
	if isAdmin {
		status = model.CommentStatusApproved
	}

	comment := &model.Comment{
		Content:   req.Content,
		ArticleID: req.ArticleID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Status:    status,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByArticle 获取文章的公开评论树，只包含已通过的评论
func (s *CommentService) ListByArticle(articleID uint) ([]*dto.CommentNode, error) {
	if s.db == nil {
		return []*dto.CommentNode{}, nil
	}

	var comments []model.Comment
	err := s.db.Where("article_id = ? AND status = ?", articleID, model.CommentStatusApproved).
		Order("created_at ASC").Order("id ASC").
		Preload("User").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return buildCommentTree(comments), nil
}

// buildCommentTree 平铺行重建回复树：先建id->节点索引，再挂接父子关系
// 父评论不在结果集中（被拒或待审）的回复提升为根节点，保持可见
func buildCommentTree(comments []model.Comment) []*dto.CommentNode {
	nodes := make(map[uint]*dto.CommentNode, len(comments))
	for i := range comments {
		c := &comments[i]
		nodes[c.ID] = &dto.CommentNode{
			ID:        c.ID,
			Content:   c.Content,
			ArticleID: c.ArticleID,
			ParentID:  c.ParentID,
			Status:    c.Status,
			Author: dto.CommentAuthor{
				ID:       c.User.ID,
				Nickname: c.User.Nickname,
				Avatar:   c.User.Avatar,
				Role:     c.User.Role,
			},
			Children:  []*dto.CommentNode{},
			CreatedAt: c.CreatedAt,
		}
	}

	roots := make([]*dto.CommentNode, 0)
	for i := range comments {
		node := nodes[comments[i].ID]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// ListAdmin 后台评论列表，全部状态，带作者与文章信息
func (s *CommentService) ListAdmin(req *dto.CommentAdminListRequest) (*dto.CommentAdminListResponse, error) {
	if s.db == nil {
		return &dto.CommentAdminListResponse{Total: 0, List: []dto.CommentAdminItem{}}, nil
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}

	query := s.db.Model(&model.Comment{})
	if req.ArticleID > 0 {
		query = query.Where("article_id = ?", req.ArticleID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").Order("id DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Preload("User").
		Preload("Article").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentAdminItem, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		items = append(items, dto.CommentAdminItem{
			ID:           c.ID,
			Content:      c.Content,
			ArticleID:    c.ArticleID,
			ArticleTitle: c.Article.Title,
			ArticleSlug:  c.Article.Slug,
			ParentID:     c.ParentID,
			Status:       c.Status,
			Author: dto.CommentAuthor{
				ID:       c.User.ID,
				Nickname: c.User.Nickname,
				Avatar:   c.User.Avatar,
				Role:     c.User.Role,
			},
			CreatedAt: c.CreatedAt,
		})
	}

	return &dto.CommentAdminListResponse{Total: total, List: items}, nil
}

// ListPending 待审核评论队列
func (s *CommentService) ListPending(page, pageSize int) (*dto.CommentAdminListResponse, error) {
	return s.ListAdmin(&dto.CommentAdminListRequest{
		Status:   model.CommentStatusPending,
		Page:     page,
		PageSize: pageSize,
	})
}

// Approve 审核通过评论
func (s *CommentService) Approve(id uint) error {
	return s.updateStatus(id, model.CommentStatusApproved)
}

// Reject 拒绝评论，不级联影响子评论
func (s *CommentService) Reject(id uint) error {
	return s.updateStatus(id, model.CommentStatusRejected)
}

// updateStatus 评论状态变更
func (s *CommentService) updateStatus(id uint, status string) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	var comment model.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("评论不存在")
		}
		return err
	}

	return s.db.Model(&comment).Update("status", status).Error
}

// Delete 删除评论及其整棵回复子树
// 深度优先：先递归删除所有后代，再删除节点本身，不留悬空parent_id
func (s *CommentService) Delete(id uint) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	var comment model.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("评论不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteSubtree(tx, id)
	})
}

// deleteSubtree 递归删除以id为根的评论子树
func (s *CommentService) deleteSubtree(tx *gorm.DB, id uint) error {
	var childIDs []uint
	if err := tx.Model(&model.Comment{}).
		Where("parent_id = ?", id).
		Pluck("id", &childIDs).Error; err != nil {
		return err
	}

	for _, childID := range childIDs {
		if err := s.deleteSubtree(tx, childID); err != nil {
			return err
		}
	}

	return tx.Delete(&model.Comment{}, id).Error
}
