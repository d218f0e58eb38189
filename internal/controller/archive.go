package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
	"go.uber.org/zap"
)

// ArchiveApi 归档API控制器
type ArchiveApi struct {
	logger         *zap.SugaredLogger
	archiveService *service.ArchiveService
}

// NewArchiveApi 创建归档API控制器
func NewArchiveApi() *ArchiveApi {
	return &ArchiveApi{
		logger:         logger.GetSugaredLogger(),
		archiveService: service.NewArchiveService(),
	}
}

// Years 按年份统计已发布文章数
func (api *ArchiveApi) Years(c *gin.Context) {
	years, err := api.archiveService.Years()
	if err != nil {
		api.logger.Errorf("获取归档统计失败: %v", err)
		response.InternalServerError(c, "获取归档统计失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{"years": years})
}
