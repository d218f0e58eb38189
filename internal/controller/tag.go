package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
	"go.uber.org/zap"
)

// TagApi 标签API控制器
type TagApi struct {
	logger     *zap.SugaredLogger
	tagService *service.TagService
}

// NewTagApi 创建标签API控制器
func NewTagApi() *TagApi {
	return &TagApi{
		logger:     logger.GetSugaredLogger(),
		tagService: service.NewTagService(),
	}
}

// List 获取标签列表
func (api *TagApi) List(c *gin.Context) {
	tags, err := api.tagService.List()
	if err != nil {
		api.logger.Errorf("获取标签列表失败: %v", err)
		response.InternalServerError(c, "获取标签列表失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"list": tags})
}

// ListWithCount 获取标签列表及已发布文章数
func (api *TagApi) ListWithCount(c *gin.Context) {
	tags, err := api.tagService.ListWithCount()
	if err != nil {
		api.logger.Errorf("获取标签统计失败: %v", err)
		response.InternalServerError(c, "获取标签统计失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"list": tags})
}

// GetByID 根据ID获取标签
func (api *TagApi) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的标签ID", err)
		return
	}

	tag, err := api.tagService.GetByID(uint(id))
	if err != nil {
		api.logger.Errorf("获取标签失败: %v", err)
		response.InternalServerError(c, "获取标签失败", err)
		return
	}
	if tag == nil {
		response.NotFound(c, "标签不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"tag": tag})
}

// GetBySlug 根据slug获取标签
func (api *TagApi) GetBySlug(c *gin.Context) {
	tag, err := api.tagService.GetBySlug(c.Param("slug"))
	if err != nil {
		api.logger.Errorf("获取标签失败: %v", err)
		response.InternalServerError(c, "获取标签失败", err)
		return
	}
	if tag == nil {
		response.NotFound(c, "标签不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"tag": tag})
}

// Create 创建标签
func (api *TagApi) Create(c *gin.Context) {
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	tag, err := api.tagService.Create(&req)
	if err != nil {
		api.logger.Errorf("创建标签失败: %v", err)
		respondMutationError(c, "创建标签失败", err)
		return
	}

	response.Success(c, "创建成功", gin.H{"tag": tag})
}

// Update 更新标签
func (api *TagApi) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的标签ID", err)
		return
	}

	var req dto.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	tag, err := api.tagService.Update(uint(id), &req)
	if err != nil {
		api.logger.Errorf("更新标签失败: %v", err)
		respondMutationError(c, "更新标签失败", err)
		return
	}

	response.Success(c, "更新成功", gin.H{"tag": tag})
}

// Delete 删除标签
func (api *TagApi) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的标签ID", err)
		return
	}

	if err := api.tagService.Delete(uint(id)); err != nil {
		api.logger.Errorf("删除标签失败: %v", err)
		response.InternalServerError(c, "删除标签失败", err)
		return
	}

	response.Success(c, "删除成功", nil)
}
