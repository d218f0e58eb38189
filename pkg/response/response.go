package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封，所有接口共用
type Response struct {
	Code    int    `json:"code"`           // 0表示成功，其余沿用HTTP状态码
	Message string `json:"message"`        // 给前端展示的消息
	Data    any    `json:"data"`           // 业务数据
	Meta    any    `json:"meta,omitempty"` // 分页等附加信息
}

// PageMeta 分页元数据
type PageMeta struct {
	Page  int   `json:"page"`  // 当前页码
	Size  int   `json:"size"`  // 每页大小
	Total int64 `json:"total"` // 总记录数
}

// Success 成功响应
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Message: message, Data: data})
}

// SuccessPage 带分页元数据的成功响应
func SuccessPage(c *gin.Context, message string, data any, page, size int, total int64) {
	c.JSON(http.StatusOK, Response{
		Message: message,
		Data:    data,
		Meta:    PageMeta{Page: page, Size: size, Total: total},
	})
}

// Error 错误响应，HTTP状态码与信封code保持一致
// err只进gin的错误链供日志中间件消费，不回传给客户端
func Error(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, Response{Code: status, Message: message})
}

// BadRequest 请求参数错误
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized 未认证
func Unauthorized(c *gin.Context, message string, err error) {
	Error(c, http.StatusUnauthorized, message, err)
}

// Forbidden 已认证但无权限
func Forbidden(c *gin.Context, message string, err error) {
	Error(c, http.StatusForbidden, message, err)
}

// NotFound 资源不存在
func NotFound(c *gin.Context, message string, err error) {
	Error(c, http.StatusNotFound, message, err)
}

// InternalServerError 服务端错误
func InternalServerError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}
