package handler

import (
	"html/template"
	"net/http"

	"shorturl-analytics/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Assets 页面模板和静态资源
type Assets struct {
	Templates *template.Template
	Static    http.FileSystem
}

// RegisterRoutes 挂载全部路由, identity 负责解析当前用户
func RegisterRoutes(router *gin.Engine, assets Assets, identity gin.HandlerFunc, urlHandler *ShortLinkHandler, authHandler *AuthHandler) {
	router.SetHTMLTemplate(assets.Templates)
	router.StaticFS("/static", assets.Static)

	router.GET("/health", urlHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	site := router.Group("/", identity)
	{
		site.GET("/", urlHandler.IndexPage)
		site.POST("/", urlHandler.Shorten)
		site.GET("/display", urlHandler.Display)
		site.GET("/display/:owner", urlHandler.Display)
		site.GET("/clicks", urlHandler.Clicks)

		site.GET("/login", authHandler.LoginPage)
		site.POST("/login", authHandler.Login)
		site.GET("/logout", authHandler.Logout)
		site.GET("/create_account", authHandler.CreateAccountPage)
		site.POST("/create_account", authHandler.CreateAccount)

		site.GET("/:alias", urlHandler.RedirectToOriginal)
	}

	api := router.Group("/api", identity)
	{
		api.POST("/login", authHandler.APILogin)
		api.POST("/shorten", urlHandler.CreateShortLink)
		api.GET("/links", urlHandler.GetLinks)
		api.GET("/me", middleware.RequireLogin(), authHandler.Me)
	}
}
