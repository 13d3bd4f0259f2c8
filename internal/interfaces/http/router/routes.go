// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/interfaces/http/middleware"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, authCfg middleware.AuthConfig, h Handlers) {
	requireAuth := middleware.Auth(authCfg)
	optionalAuth := middleware.OptionalAuth(authCfg)

	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", requireAuth, h.Auth.Logout)
		auth.GET("/me", optionalAuth, h.Auth.Me)
	}

	// 导航解析，匿名可用
	v1.GET("/navigation", optionalAuth, h.Navigation.Resolve)

	// 用户
	users := v1.Group("/users")
	{
		users.PUT("/me", requireAuth, h.User.UpdateProfile)
		users.GET("/:uid", h.User.GetUser)
		users.GET("/:uid/novels", h.User.GetUserNovels)
	}

	// 书目与阅读，读路径对游客开放
	novels := v1.Group("/novels")
	{
		novels.GET("", h.Novel.ListNovels)
		novels.GET("/recommended", h.Novel.Recommended)
		novels.GET("/fantasy", h.Novel.Fantasy)
		novels.GET("/tags/:tag", h.Novel.ByTag)
		novels.GET("/:nid", h.Novel.GetNovel)
		novels.POST("/:nid/like", requireAuth, h.Novel.LikeNovel)

		// 章节
		novels.GET("/:nid/episodes", h.Episode.ListEpisodes)
		novels.GET("/:nid/episodes/:eid", optionalAuth, h.Episode.GetEpisode)

		// 书评
		novels.GET("/:nid/reviews", h.Review.ListReviews)
		novels.POST("/:nid/reviews", requireAuth, h.Review.CreateReview)

		// 评论
		novels.GET("/:nid/episodes/:eid/comments", h.Comment.ListComments)
		novels.POST("/:nid/episodes/:eid/comments", requireAuth, h.Comment.CreateComment)
	}

	// 作者工作台
	writer := v1.Group("/writer", requireAuth, middleware.RequireWriter())
	{
		writer.GET("/novels", h.Writer.MyNovels)
		writer.POST("/novels", h.Writer.CreateNovel)
		writer.PUT("/novels/:nid", h.Writer.UpdateNovel)
		writer.DELETE("/novels/:nid", h.Writer.DeleteNovel)
		writer.POST("/novels/:nid/episodes", h.Writer.CreateEpisode)
		writer.PUT("/novels/:nid/episodes/:eid", h.Writer.UpdateEpisode)
		writer.DELETE("/novels/:nid/episodes/:eid", h.Writer.DeleteEpisode)
	}
}
