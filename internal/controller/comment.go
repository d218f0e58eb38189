package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/middleware"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
	"go.uber.org/zap"
)

// CommentApi 评论API控制器
type CommentApi struct {
	logger         *zap.SugaredLogger
	commentService *service.CommentService
}

// NewCommentApi 创建评论API控制器
func NewCommentApi() *CommentApi {
	return &CommentApi{
		logger:         logger.GetSugaredLogger(),
		commentService: service.NewCommentService(),
	}
}

// ListByArticle 获取文章的公开评论树
func (api *CommentApi) ListByArticle(c *gin.Context) {
	var req dto.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	comments, err := api.commentService.ListByArticle(req.ArticleID)
	if err != nil {
		api.logger.Errorf("获取评论列表失败: %v", err)
		response.InternalServerError(c, "获取评论列表失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"list": comments})
}

// ListAdmin 后台评论列表
func (api *CommentApi) ListAdmin(c *gin.Context) {
	var req dto.CommentAdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.commentService.ListAdmin(&req)
	if err != nil {
		api.logger.Errorf("获取后台评论列表失败: %v", err)
		response.InternalServerError(c, "获取评论列表失败", err)
		return
	}

	response.SuccessPage(c, "获取成功", result.List, req.Page, req.PageSize, result.Total)
}

// ListPending 待审核评论队列
func (api *CommentApi) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := api.commentService.ListPending(page, pageSize)
	if err != nil {
		api.logger.Errorf("获取待审核评论失败: %v", err)
		response.InternalServerError(c, "获取待审核评论失败", err)
		return
	}

	response.SuccessPage(c, "获取成功", result.List, page, pageSize, result.Total)
}

// Create 创建评论，管理员直接通过，其余待审核
func (api *CommentApi) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	comment, err := api.commentService.Create(userID, role, &req)
	if err != nil {
		api.logger.Errorf("创建评论失败: %v", err)
		response.InternalServerError(c, "创建评论失败", err)
		return
	}

	response.Success(c, "评论发布成功", gin.H{"comment": comment})
}

// Approve 审核通过评论
func (api *CommentApi) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return
	}

	if err := api.commentService.Approve(uint(id)); err != nil {
		api.logger.Errorf("审核评论失败: %v", err)
		response.InternalServerError(c, "审核评论失败", err)
		return
	}

	response.Success(c, "审核通过", nil)
}

// Reject 拒绝评论
func (api *CommentApi) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return
	}

	if err := api.commentService.Reject(uint(id)); err != nil {
		api.logger.Errorf("拒绝评论失败: %v", err)
		response.InternalServerError(c, "拒绝评论失败", err)
		return
	}

	response.Success(c, "已拒绝", nil)
}

// Delete 删除评论及其整棵回复子树
func (api *CommentApi) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return
	}

	if err := api.commentService.Delete(uint(id)); err != nil {
		api.logger.Errorf("删除评论失败: %v", err)
		response.InternalServerError(c, "删除评论失败", err)
		return
	}

	response.Success(c, "删除成功", nil)
}
