package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/controller"
	"github.com/hxzhou/blog-platform/internal/middleware"
)

// Setup 设置API路由
func Setup(r *gin.Engine) {
	registerValidators()

	api := r.Group("/api")

	// 用户相关路由
	setupUserRoutes(api)

	// 文章相关路由
	setupArticleRoutes(api)

	// 标签相关路由
	setupTagRoutes(api)

	// 专栏相关路由
	setupSeriesRoutes(api)

	// 评论相关路由
	setupCommentRoutes(api)

	// 归档与订阅
	setupArchiveRoutes(api)
}

// setupUserRoutes 设置用户相关路由
func setupUserRoutes(api *gin.RouterGroup) {
	userApi := controller.NewUserApi()

	// 公开路由
	userRoutes := api.Group("/users")
	{
		// 第三方登录
		userRoutes.POST("/login", userApi.Login)
	}

	// 需要刷新令牌的路由
	refreshRoutes := api.Group("/users", middleware.RefreshAuth())
	{
		// 刷新令牌
		refreshRoutes.POST("/refresh", userApi.RefreshToken)
		// 注销
		refreshRoutes.POST("/logout", userApi.Logout)
	}

	// 需要认证的路由
	authUserRoutes := api.Group("/users", middleware.JWTAuth())
	{
		// 获取当前用户信息
		authUserRoutes.GET("/me", userApi.GetUserInfo)
	}
}

// setupArticleRoutes 设置文章相关路由
func setupArticleRoutes(api *gin.RouterGroup) {
	articleApi := controller.NewArticleApi()

	// 公开路由，可选认证用于管理员预览未发布内容
	articleRoutes := api.Group("/articles", middleware.OptionalAuth())
	{
		// 文章列表
		articleRoutes.GET("", articleApi.List)
		// 推荐文章
		articleRoutes.GET("/featured", articleApi.Featured)
		// 根据slug获取文章详情
		articleRoutes.GET("/slug/:slug", articleApi.GetBySlug)
		// 根据ID获取文章详情
		articleRoutes.GET("/:id", articleApi.GetByID)
		// 浏览量上报
		articleRoutes.POST("/:id/view", articleApi.IncrementView)
	}

	// 需要管理员权限的路由
	adminArticleRoutes := api.Group("/admin/articles", middleware.AdminAuth())
	{
		// 全状态文章列表
		adminArticleRoutes.GET("", articleApi.ListAdmin)
		// 创建文章
		adminArticleRoutes.POST("", articleApi.Create)
		// 更新文章
		adminArticleRoutes.PUT("/:id", articleApi.Update)
		// 删除文章
		adminArticleRoutes.DELETE("/:id", articleApi.Delete)
	}
}

// setupTagRoutes 设置标签相关路由
func setupTagRoutes(api *gin.RouterGroup) {
	tagApi := controller.NewTagApi()

	// 公开路由
	tagRoutes := api.Group("/tags")
	{
		// 标签列表
		tagRoutes.GET("", tagApi.List)
		// 标签列表及文章数
		tagRoutes.GET("/with-count", tagApi.ListWithCount)
		// 根据slug获取标签
		tagRoutes.GET("/slug/:slug", tagApi.GetBySlug)
		// 根据ID获取标签
		tagRoutes.GET("/:id", tagApi.GetByID)
	}

	// 需要管理员权限的路由
	adminTagRoutes := api.Group("/admin/tags", middleware.AdminAuth())
	{
		// 创建标签
		adminTagRoutes.POST("", tagApi.Create)
		// 更新标签
		adminTagRoutes.PUT("/:id", tagApi.Update)
		// 删除标签
		adminTagRoutes.DELETE("/:id", tagApi.Delete)
	}
}

// setupSeriesRoutes 设置专栏相关路由
func setupSeriesRoutes(api *gin.RouterGroup) {
	seriesApi := controller.NewSeriesApi()

	// 公开路由
	seriesRoutes := api.Group("/series")
	{
		// 专栏列表
		seriesRoutes.GET("", seriesApi.List)
		// 专栏列表及文章数
		seriesRoutes.GET("/with-count", seriesApi.ListWithCount)
		// 根据slug获取专栏
		seriesRoutes.GET("/slug/:slug", seriesApi.GetBySlug)
		// 根据ID获取专栏
		seriesRoutes.GET("/:id", seriesApi.GetByID)
	}

	// 需要管理员权限的路由
	adminSeriesRoutes := api.Group("/admin/series", middleware.AdminAuth())
	{
		// 创建专栏
		adminSeriesRoutes.POST("", seriesApi.Create)
		// 更新专栏
		adminSeriesRoutes.PUT("/:id", seriesApi.Update)
		// 删除专栏
		adminSeriesRoutes.DELETE("/:id", seriesApi.Delete)
	}
}

// setupCommentRoutes 设置评论相关路由
func setupCommentRoutes(api *gin.RouterGroup) {
	commentApi := controller.NewCommentApi()

	// 公开路由
	commentRoutes := api.Group("/comments")
	{
		// 文章评论树
		commentRoutes.GET("", commentApi.ListByArticle)
	}

	// 需要认证的路由
	authCommentRoutes := api.Group("/comments", middleware.JWTAuth())
	{
		// 发表评论
		authCommentRoutes.POST("", commentApi.Create)
	}

	// 需要管理员权限的路由
	adminCommentRoutes := api.Group("/admin/comments", middleware.AdminAuth())
	{
		// 后台评论列表
		adminCommentRoutes.GET("", commentApi.ListAdmin)
		// 待审核队列
		adminCommentRoutes.GET("/pending", commentApi.ListPending)
		// 审核通过
		adminCommentRoutes.PUT("/:id/approve", commentApi.Approve)
		// 拒绝
		adminCommentRoutes.PUT("/:id/reject", commentApi.Reject)
		// 删除评论及回复子树
		adminCommentRoutes.DELETE("/:id", commentApi.Delete)
	}
}

// setupArchiveRoutes 设置归档与订阅路由
func setupArchiveRoutes(api *gin.RouterGroup) {
	archiveApi := controller.NewArchiveApi()
	rssApi := controller.NewRSSApi()

	// 归档年份统计
	api.GET("/archive/years", archiveApi.Years)
	// RSS订阅
	api.GET("/rss", rssApi.Feed)
}
