// internal/api/router.go
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Corphon/ItemShowcase/internal/config"
	"github.com/Corphon/ItemShowcase/internal/di"
	"github.com/Corphon/ItemShowcase/internal/services"
	"github.com/Corphon/ItemShowcase/internal/storage"
)

// SetupRouter 配置HTTP路由
func SetupRouter() (*gin.Engine, error) {
	// 获取配置
	cfg := config.GetCurrentConfig()

	// 获取依赖注入容器
	container := di.GetContainer()

	// ✅ 只从容器获取服务，不再创建新实例
	assetStore, ok := container.Get("asset").(*storage.AssetStore)
	if !ok {
		return nil, fmt.Errorf("资产存储服务未正确初始化")
	}

	itemService, ok := container.Get("item").(*services.ItemService)
	if !ok {
		return nil, fmt.Errorf("物品服务未正确初始化")
	}

	mailService, ok := container.Get("mail").(*services.MailService)
	if !ok {
		return nil, fmt.Errorf("邮件服务未正确初始化")
	}

	handler := NewHandler(assetStore, itemService, mailService)

	// 创建路由
	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// 启用CORS
	r.Use(corsMiddleware())

	// 已摄入图片的静态访问
	r.Static("/uploads", cfg.UploadDir)

	// ===============================
	// API路由组
	// ===============================
	api := r.Group("/api")
	{
		itemsGroup := api.Group("/items")
		{
			itemsGroup.GET("", handler.ListItems)
			itemsGroup.POST("", handler.CreateItem)
			itemsGroup.GET("/status", handler.Status)

			// 询价会向外部申请一次性邮件帐号，单独限流
			itemsGroup.POST("/:id/enquire", EnquiryRateLimit(), handler.EnquireItem)
		}
	}

	return r, nil
}

// corsMiddleware 实现跨域资源共享
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
