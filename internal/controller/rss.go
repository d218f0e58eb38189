package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
	"go.uber.org/zap"
)

// RSSApi RSS订阅API控制器
type RSSApi struct {
	logger     *zap.SugaredLogger
	rssService *service.RSSService
}

// NewRSSApi 创建RSS订阅API控制器
func NewRSSApi() *RSSApi {
	return &RSSApi{
		logger:     logger.GetSugaredLogger(),
		rssService: service.NewRSSService(),
	}
}

// Feed 输出RSS 2.0订阅文档
func (api *RSSApi) Feed(c *gin.Context) {
	feed, err := api.rssService.Generate()
	if err != nil {
		api.logger.Errorf("生成RSS失败: %v", err)
		response.InternalServerError(c, "生成RSS失败", err)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(feed))
}
