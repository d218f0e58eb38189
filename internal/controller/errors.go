package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/hxzhou/blog-platform/pkg/response"
)

// respondMutationError 写操作错误统一映射
// slug冲突是客户端可修复的，返回409；其余按服务端错误处理
func respondMutationError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrSlugConflict) {
		response.Error(c, http.StatusConflict, service.ErrSlugConflict.Error(), err)
		return
	}
	response.InternalServerError(c, message, err)
}
