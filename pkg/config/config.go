package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Session  SessionConfig  `mapstructure:"session"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug | release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// CatalogConfig 商品目录 API 配置
// BaseURL 指向 /api 根（本机部署时即自身地址）
type CatalogConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Debug          bool   `mapstructure:"debug"`
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // "s3" | "cos" | "local"
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`   // 自定义端点 (腾讯云COS等)
	CDNDomain string `mapstructure:"cdn_domain"` // CDN域名 (可选)
	BasePath  string `mapstructure:"base_path"`  // 基础路径前缀
	BaseURL   string `mapstructure:"base_url"`   // local 模式下的访问地址
}

// SessionConfig 草稿会话配置
type SessionConfig struct {
	MaxIdleMinutes         int `mapstructure:"max_idle_minutes"`
	CleanupIntervalMinutes int `mapstructure:"cleanup_interval_minutes"`
}

// ==================== 加载 ====================

// Load 加载配置文件并合并环境变量
// path 为空时默认读取工作目录下的 config.yaml（不存在则全部走默认值+环境变量）
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// 环境变量覆盖，如 SERVER_PORT、STORAGE_ACCESS_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 允许没有配置文件，但指定了路径时必须存在
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("读取配置文件失败: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %v", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.dsn", "host=localhost user=sourcexpet password=1234 dbname=sourcexpet port=5432 sslmode=disable")

	v.SetDefault("catalog.base_url", "http://localhost:8080/api")
	v.SetDefault("catalog.timeout_seconds", 20)
	v.SetDefault("catalog.debug", false)

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.base_path", "./uploads")
	v.SetDefault("storage.base_url", "http://localhost:8080/uploads")

	v.SetDefault("session.max_idle_minutes", 60)
	v.SetDefault("session.cleanup_interval_minutes", 10)
}
