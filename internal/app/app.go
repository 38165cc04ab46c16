// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Corphon/ItemShowcase/internal/config"
	"github.com/Corphon/ItemShowcase/internal/di"
	"github.com/Corphon/ItemShowcase/internal/services"
	"github.com/Corphon/ItemShowcase/internal/storage"
	"github.com/Corphon/ItemShowcase/internal/utils"
)

// InitServices 按依赖顺序初始化所有服务并注册到容器
// 资产存储没有依赖；物品服务只消费摄入产出的文件名；邮件服务独立于两者
func InitServices() error {
	container := di.GetContainer()
	cfg := config.GetCurrentConfig()

	// 日志系统
	logFile := filepath.Join(cfg.LogDir, fmt.Sprintf("server-%s.log", time.Now().Format("2006-01-02")))
	if err := utils.InitLogger(logFile); err != nil {
		return fmt.Errorf("初始化日志系统失败: %w", err)
	}

	// 资产存储服务
	assetStore, err := storage.NewAssetStore(cfg.UploadDir, cfg.MaxAssetSize)
	if err != nil {
		return fmt.Errorf("初始化资产存储失败: %w", err)
	}
	container.Register("asset", assetStore)

	// 物品目录服务
	itemService := services.NewItemService()
	container.Register("item", itemService)

	// 询价邮件服务
	mailService := services.NewMailService(cfg)
	container.Register("mail", mailService)

	return nil
}
