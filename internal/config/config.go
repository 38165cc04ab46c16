// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// 当前配置的单例实例
var (
	currentConfig *Config
	configMutex   sync.RWMutex
)

// Config 存储应用配置
type Config struct {
	Port      string
	UploadDir string
	LogDir    string
	DebugMode bool

	// 资产存储配置
	MaxAssetSize int64

	// 邮件通道配置
	MailAPIURL       string
	ProvisionTimeout time.Duration
	SendTimeout      time.Duration
	SocketTimeout    time.Duration
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	// 尝试加载.env文件（可选）
	godotenv.Load()

	config := &Config{
		Port:         getEnv("PORT", "5000"),
		UploadDir:    getEnvPath("UPLOAD_DIR", "uploads"),
		LogDir:       getEnvPath("LOG_DIR", "logs"),
		DebugMode:    getEnvBool("DEBUG_MODE", true),
		MaxAssetSize: getEnvInt64("MAX_ASSET_SIZE", 10<<20),

		MailAPIURL:       getEnv("MAIL_API_URL", "https://api.nodemailer.com/user"),
		ProvisionTimeout: getEnvDuration("MAIL_PROVISION_TIMEOUT", 10*time.Second),
		SendTimeout:      getEnvDuration("MAIL_SEND_TIMEOUT", 15*time.Second),
		SocketTimeout:    getEnvDuration("MAIL_SOCKET_TIMEOUT", 10*time.Second),
	}

	return config, nil
}

// InitConfig 初始化配置单例
func InitConfig() error {
	config, err := Load()
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()
	currentConfig = config

	return nil
}

// GetCurrentConfig 返回当前配置的副本
func GetCurrentConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if currentConfig == nil {
		// 紧急情况，返回一个基本配置
		baseConfig, _ := Load()
		return baseConfig
	}

	configCopy := *currentConfig
	return &configCopy
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath 获取环境变量表示的路径，如果不存在则返回默认值
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	// 确保目录存在
	if _, err := os.Stat(path); os.IsNotExist(err) {
		err = os.MkdirAll(path, 0755)
		if err != nil {
			fmt.Printf("警告: 创建目录失败 %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool 获取布尔类型环境变量
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt64 获取整数类型环境变量
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Printf("警告: 环境变量 %s 不是合法整数: %v\n", key, err)
		return defaultValue
	}
	return parsed
}

// getEnvDuration 获取时长类型环境变量（如 10s、1m30s）
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("警告: 环境变量 %s 不是合法时长: %v\n", key, err)
		return defaultValue
	}
	return parsed
}
