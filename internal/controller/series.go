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

// SeriesApi 专栏API控制器
type SeriesApi struct {
	logger        *zap.SugaredLogger
	seriesService *service.SeriesService
}

// NewSeriesApi 创建专栏API控制器
func NewSeriesApi() *SeriesApi {
	return &SeriesApi{
		logger:        logger.GetSugaredLogger(),
		seriesService: service.NewSeriesService(),
	}
}

// List 获取专栏列表
func (api *SeriesApi) List(c *gin.Context) {
	series, err := api.seriesService.List()
	if err != nil {
		api.logger.Errorf("获取专栏列表失败: %v", err)
		response.InternalServerError(c, "获取专栏列表失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"list": series})
}

// ListWithCount 获取专栏列表及已发布文章数
func (api *SeriesApi) ListWithCount(c *gin.Context) {
	series, err := api.seriesService.ListWithCount()
	if err != nil {
		api.logger.Errorf("获取专栏统计失败: %v", err)
		response.InternalServerError(c, "获取专栏统计失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"list": series})
}

// GetByID 根据ID获取专栏
func (api *SeriesApi) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的专栏ID", err)
		return
	}

	series, err := api.seriesService.GetByID(uint(id))
	if err != nil {
		api.logger.Errorf("获取专栏失败: %v", err)
		response.InternalServerError(c, "获取专栏失败", err)
		return
	}
	if series == nil {
		response.NotFound(c, "专栏不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"series": series})
}

// GetBySlug 根据slug获取专栏
func (api *SeriesApi) GetBySlug(c *gin.Context) {
	series, err := api.seriesService.GetBySlug(c.Param("slug"))
	if err != nil {
		api.logger.Errorf("获取专栏失败: %v", err)
		response.InternalServerError(c, "获取专栏失败", err)
		return
	}
	if series == nil {
		response.NotFound(c, "专栏不存在", nil)
		return
	}

	response.Success(c, "获取成功", gin.H{"series": series})
}

// Create 创建专栏
func (api *SeriesApi) Create(c *gin.Context) {
	var req dto.SeriesCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	series, err := api.seriesService.Create(&req)
	if err != nil {
		api.logger.Errorf("创建专栏失败: %v", err)
		respondMutationError(c, "创建专栏失败", err)
		return
	}

	response.Success(c, "创建成功", gin.H{"series": series})
}

// Update 更新专栏
func (api *SeriesApi) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的专栏ID", err)
		return
	}

	var req dto.SeriesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	series, err := api.seriesService.Update(uint(id), &req)
	if err != nil {
		api.logger.Errorf("更新专栏失败: %v", err)
		respondMutationError(c, "更新专栏失败", err)
		return
	}

	response.Success(c, "更新成功", gin.H{"series": series})
}

// Delete 删除专栏，成员文章的专栏引用一并置空
func (api *SeriesApi) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的专栏ID", err)
		return
	}

	if err := api.seriesService.Delete(uint(id)); err != nil {
		api.logger.Errorf("删除专栏失败: %v", err)
		response.InternalServerError(c, "删除专栏失败", err)
		return
	}

	response.Success(c, "删除成功", nil)
}
