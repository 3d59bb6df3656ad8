package routes

import (
	"net/http"

	"yatube/api/handlers"
	"yatube/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) {
	// Главная страница - единственная, которая кешируется целиком
	router.GET("/", middleware.PageCache(), handlers.Index)

	router.GET("/group/:slug/", handlers.GroupPosts)
	router.GET("/profile/:username/", middleware.OptionalAuth(), handlers.Profile)
	router.GET("/posts/:id/", handlers.PostDetail)

	authed := router.Group("/", middleware.RequireAuth())
	{
		authed.GET("/create/", handlers.PostCreateForm)
		authed.POST("/create/", handlers.PostCreate)
		authed.GET("/posts/:id/edit/", handlers.PostEditForm)
		authed.POST("/posts/:id/edit/", handlers.PostEdit)
		authed.POST("/posts/:id/delete/", handlers.PostDelete)
		authed.POST("/posts/:id/comment/", handlers.AddComment)
		authed.GET("/follow/", handlers.FollowIndex)
		authed.GET("/profile/:username/follow/", handlers.ProfileFollow)
		authed.POST("/profile/:username/follow/", handlers.ProfileFollow)
		authed.GET("/profile/:username/unfollow/", handlers.ProfileUnfollow)
		authed.POST("/profile/:username/unfollow/", handlers.ProfileUnfollow)
		authed.POST("/groups/create/", handlers.GroupCreate)
	}

	router.POST("/internal/cache/clear", handlers.CacheClear)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
