package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/middleware"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
	"go.uber.org/zap"
)

// ArticleApi 文章API控制器
type ArticleApi struct {
	logger         *zap.SugaredLogger
	articleService *service.ArticleService
}

// NewArticleApi 创建文章API控制器
func NewArticleApi() *ArticleApi {
	return &ArticleApi{
		logger:         logger.GetSugaredLogger(),
		articleService: service.NewArticleService(),
	}
}

// List 公开文章列表，强制只返回已发布文章
func (api *ArticleApi) List(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.articleService.List(&req, false)
	if err != nil {
		api.logger.Errorf("获取文章列表失败: %v", err)
		response.InternalServerError(c, "获取文章列表失败", err)
		return
	}

	response.SuccessPage(c, "获取成功", result.List, req.Page, req.PageSize, result.Total)
}

// ListAdmin 后台文章列表，可按任意状态过滤
func (api *ArticleApi) ListAdmin(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.articleService.List(&req, true)
	if err != nil {
		api.logger.Errorf("获取后台文章列表失败: %v", err)
		response.InternalServerError(c, "获取文章列表失败", err)
		return
	}

	response.SuccessPage(c, "获取成功", result.List, req.Page, req.PageSize, result.Total)
}

// Featured 推荐文章列表
func (api *ArticleApi) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	items, err := api.articleService.ListFeatured(limit)
	if err != nil {
		api.logger.Errorf("获取推荐文章失败: %v", err)
		response.InternalServerError(c, "获取推荐文章失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"list": items})
}

// GetByID 根据ID获取文章详情
func (api *ArticleApi) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	detail, err := api.articleService.GetByID(uint(id), middleware.IsAdmin(c))
	if err != nil {
		api.logger.Errorf("获取文章详情失败: %v", err)
		response.InternalServerError(c, "获取文章详情失败", err)
		return
	}
	if detail == nil {
		response.NotFound(c, "文章不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"article": detail})
}

// GetBySlug 根据slug获取文章详情
func (api *ArticleApi) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	detail, err := api.articleService.GetBySlug(slug, middleware.IsAdmin(c))
	if err != nil {
		api.logger.Errorf("获取文章详情失败: %v", err)
		response.InternalServerError(c, "获取文章详情失败", err)
		return
	}
	if detail == nil {
		response.NotFound(c, "文章不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"article": detail})
}

// IncrementView 浏览量加一，与详情读取分离的独立写操作
func (api *ArticleApi) IncrementView(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	if err := api.articleService.IncrementView(uint(id), c.ClientIP()); err != nil {
		api.logger.Errorf("更新浏览量失败: %v", err)
		response.InternalServerError(c, "更新浏览量失败", err)
		return
	}

	response.Success(c, "更新成功", nil)
}

// Create 创建文章
func (api *ArticleApi) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	article, err := api.articleService.Create(userID, &req)
	if err != nil {
		api.logger.Errorf("创建文章失败: %v", err)
		respondMutationError(c, "创建文章失败", err)
		return
	}

	response.Success(c, "创建成功", gin.H{"article": article})
}

// Update 更新文章
func (api *ArticleApi) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	var req dto.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	article, err := api.articleService.Update(uint(id), &req)
	if err != nil {
		api.logger.Errorf("更新文章失败: %v", err)
		respondMutationError(c, "更新文章失败", err)
		return
	}

	response.Success(c, "更新成功", gin.H{"article": article})
}

// Delete 删除文章
func (api *ArticleApi) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	if err := api.articleService.Delete(uint(id)); err != nil {
		api.logger.Errorf("删除文章失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "删除文章失败", err)
		return
	}

	response.Success(c, "删除成功", nil)
}
