package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置结构体
// 两个服务（lending/blog）共享一份配置文件，各自读取自己的段
type Config struct {
	Lending LendingConfig `yaml:"lending"`
	Blog    BlogConfig    `yaml:"blog"`
	Log     LogConfig     `yaml:"log"`
}

// LendingConfig 借阅服务配置
type LendingConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// BlogConfig 博客服务配置
type BlogConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Port         string        `yaml:"port"`         // 服务器监听端口
	ReadTimeout  time.Duration `yaml:"readTimeout"`  // 读取超时时间
	WriteTimeout time.Duration `yaml:"writeTimeout"` // 写入超时时间
	IdleTimeout  time.Duration `yaml:"idleTimeout"`  // 空闲超时时间
}

// StorageConfig CSV文件存储配置
type StorageConfig struct {
	DataDir string `yaml:"dataDir"` // CSV数据文件目录
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `yaml:"host"`            // 数据库主机地址
	Port            int           `yaml:"port"`            // 数据库端口
	Username        string        `yaml:"username"`        // 数据库用户名
	Password        string        `yaml:"password"`        // 数据库密码
	Database        string        `yaml:"database"`        // 数据库名称
	Charset         string        `yaml:"charset"`         // 字符集
	MaxIdle         int           `yaml:"maxIdle"`         // 最大空闲连接数
	MaxOpen         int           `yaml:"maxOpen"`         // 最大打开连接数
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"` // 连接最大生命周期
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`      // 日志级别
	Filename   string `yaml:"filename"`   // 日志文件名
	MaxSize    int    `yaml:"maxSize"`    // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"maxBackups"` // 最大备份文件数
	MaxAge     int    `yaml:"maxAge"`     // 最大保存天数
	Compress   bool   `yaml:"compress"`   // 是否压缩
}

// LoadConfig 加载配置（混合方式：YAML文件 + 环境变量 + 默认值兜底）
func LoadConfig(path string) *Config {
	// 1. 首先从YAML文件加载配置
	config := loadFromYAML(path)

	// 2. 用环境变量覆盖配置（环境变量优先级更高）
	overrideWithEnvVars(config)

	// 3. 未设置的字段用默认值兜底
	fillDefaults(config)

	return config
}

// loadFromYAML 从YAML文件加载配置
func loadFromYAML(path string) *Config {
	var config Config

	// 读取配置文件，不存在或解析失败时返回空配置（由默认值兜底）
	data, err := os.ReadFile(path)
	if err != nil {
		return &config
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return &Config{}
	}

	return &config
}

// overrideWithEnvVars 用环境变量覆盖配置
func overrideWithEnvVars(config *Config) {
	// 借阅服务配置
	if port := getEnv("LENDING_PORT", ""); port != "" {
		config.Lending.Server.Port = port
	}
	if dir := getEnv("LENDING_DATA_DIR", ""); dir != "" {
		config.Lending.Storage.DataDir = dir
	}

	// 博客服务配置
	if port := getEnv("BLOG_PORT", ""); port != "" {
		config.Blog.Server.Port = port
	}

	// 数据库配置
	if host := getEnv("DB_HOST", ""); host != "" {
		config.Blog.Database.Host = host
	}
	if port := getEnvInt("DB_PORT", 0); port > 0 {
		config.Blog.Database.Port = port
	}
	if username := getEnv("DB_USERNAME", ""); username != "" {
		config.Blog.Database.Username = username
	}
	if password := getEnv("DB_PASSWORD", ""); password != "" {
		config.Blog.Database.Password = password
	}
	if database := getEnv("DB_DATABASE", ""); database != "" {
		config.Blog.Database.Database = database
	}
	if charset := getEnv("DB_CHARSET", ""); charset != "" {
		config.Blog.Database.Charset = charset
	}
	if maxIdle := getEnvInt("DB_MAX_IDLE", 0); maxIdle > 0 {
		config.Blog.Database.MaxIdle = maxIdle
	}
	if maxOpen := getEnvInt("DB_MAX_OPEN", 0); maxOpen > 0 {
		config.Blog.Database.MaxOpen = maxOpen
	}
	if lifetime := getEnvDuration("DB_CONN_MAX_LIFETIME", 0); lifetime > 0 {
		config.Blog.Database.ConnMaxLifetime = lifetime
	}

	// 日志配置
	if level := getEnv("LOG_LEVEL", ""); level != "" {
		config.Log.Level = level
	}
	if filename := getEnv("LOG_FILENAME", ""); filename != "" {
		config.Log.Filename = filename
	}
	if maxSize := getEnvInt("LOG_MAX_SIZE", 0); maxSize > 0 {
		config.Log.MaxSize = maxSize
	}
	if maxBackups := getEnvInt("LOG_MAX_BACKUPS", 0); maxBackups > 0 {
		config.Log.MaxBackups = maxBackups
	}
	if maxAge := getEnvInt("LOG_MAX_AGE", 0); maxAge > 0 {
		config.Log.MaxAge = maxAge
	}
	if compress := os.Getenv("LOG_COMPRESS"); compress != "" {
		config.Log.Compress = getEnvBool("LOG_COMPRESS", config.Log.Compress)
	}
}

// fillDefaults 未设置的字段用默认值兜底
func fillDefaults(config *Config) {
	if config.Lending.Server.Port == "" {
		config.Lending.Server.Port = "8080"
	}
	if config.Lending.Server.ReadTimeout <= 0 {
		config.Lending.Server.ReadTimeout = 30 * time.Second
	}
	if config.Lending.Server.WriteTimeout <= 0 {
		config.Lending.Server.WriteTimeout = 30 * time.Second
	}
	if config.Lending.Server.IdleTimeout <= 0 {
		config.Lending.Server.IdleTimeout = 60 * time.Second
	}
	if config.Lending.Storage.DataDir == "" {
		config.Lending.Storage.DataDir = "data"
	}

	if config.Blog.Server.Port == "" {
		config.Blog.Server.Port = "8081"
	}
	if config.Blog.Server.ReadTimeout <= 0 {
		config.Blog.Server.ReadTimeout = 30 * time.Second
	}
	if config.Blog.Server.WriteTimeout <= 0 {
		config.Blog.Server.WriteTimeout = 30 * time.Second
	}
	if config.Blog.Server.IdleTimeout <= 0 {
		config.Blog.Server.IdleTimeout = 60 * time.Second
	}

	if config.Blog.Database.Host == "" {
		config.Blog.Database.Host = "localhost"
	}
	if config.Blog.Database.Port <= 0 {
		config.Blog.Database.Port = 3306
	}
	if config.Blog.Database.Username == "" {
		config.Blog.Database.Username = "blog_user"
	}
	if config.Blog.Database.Database == "" {
		config.Blog.Database.Database = "blog"
	}
	if config.Blog.Database.Charset == "" {
		config.Blog.Database.Charset = "utf8mb4"
	}
	if config.Blog.Database.MaxIdle <= 0 {
		config.Blog.Database.MaxIdle = 10
	}
	if config.Blog.Database.MaxOpen <= 0 {
		config.Blog.Database.MaxOpen = 100
	}
	if config.Blog.Database.ConnMaxLifetime <= 0 {
		config.Blog.Database.ConnMaxLifetime = time.Hour
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Filename == "" {
		config.Log.Filename = "logs/app.log"
	}
	if config.Log.MaxSize <= 0 {
		config.Log.MaxSize = 100
	}
	if config.Log.MaxBackups <= 0 {
		config.Log.MaxBackups = 3
	}
	if config.Log.MaxAge <= 0 {
		config.Log.MaxAge = 7
	}
}

// 辅助函数：获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// 辅助函数：获取整数环境变量
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// 辅助函数：获取布尔环境变量
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// 辅助函数：获取时间环境变量
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
