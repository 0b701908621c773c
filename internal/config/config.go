package config

import (
	"errors"
	"fmt"
	"os"

	"shorturl-analytics/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	// SecretEnv 覆盖 auth.secret 的环境变量
	SecretEnv = "SHORTURL_AUTH_SECRET"
	// PlaceholderSecret 示例配置中的占位密钥, 生产模式下拒绝使用
	PlaceholderSecret = "change-me"
)

var (
	ErrMissingSecret     = errors.New("auth.secret 未配置")
	ErrPlaceholderSecret = errors.New("生产模式下不能使用示例密钥")
)

// 主配置结构
type Config struct {
	App       App       `yaml:"app"`
	Server    Server    `yaml:"server"`
	Database  DB        `yaml:"database"`
	Cache     Cache     `yaml:"cache"`
	Auth      Auth      `yaml:"auth"`
	Shortener Shortener `yaml:"shortener"`
	Log       Log       `yaml:"log"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port         int `yaml:"port"`
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`
}

// 数据库配置, driver 可选 mysql / postgres / sqlite
type DB struct {
	Driver          string `yaml:"driver"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	Charset         string `yaml:"charset"`
	SSLMode         string `yaml:"ssl_mode"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 秒
	ConnectRetries  uint64 `yaml:"connect_retries"`
}

// 缓存配置（Redis）, host 为空时退回进程内缓存
type Cache struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// 认证配置
type Auth struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	ExpirationHours int    `yaml:"expiration_hours"`
	CookieName      string `yaml:"cookie_name"`
	SecureCookie    bool   `yaml:"secure_cookie"`
}

// 短链配置
type Shortener struct {
	BaseURL           string `yaml:"base_url"`
	AliasLength       int    `yaml:"alias_length"`
	MaxRetries        int    `yaml:"max_retries"`
	DefaultScheme     string `yaml:"default_scheme"`
	SkipURLCheck      bool   `yaml:"skip_url_check"`
	ValidationTimeout int    `yaml:"validation_timeout"` // 秒
}

// 日志配置
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default 返回填好默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// 加载配置
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if secret := os.Getenv(SecretEnv); secret != "" {
		cfg.Auth.Secret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查默认值无法补全的配置项
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("%w, 请在配置文件或 %s 中设置", ErrMissingSecret, SecretEnv)
	}
	if c.App.Mode == "production" && c.Auth.Secret == PlaceholderSecret {
		return ErrPlaceholderSecret
	}
	if c.Shortener.AliasLength < 1 || c.Shortener.AliasLength > model.ShortCodeSize {
		return fmt.Errorf("shortener.alias_length 必须在 1 到 %d 之间", model.ShortCodeSize)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "shorturl-analytics"
	}
	if c.App.Mode == "" {
		c.App.Mode = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Name == "" {
		c.Database.Name = "shorturl.db"
	}
	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.ConnectRetries == 0 {
		c.Database.ConnectRetries = 5
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 24 * 60
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "shorturl-analytics"
	}
	if c.Auth.ExpirationHours == 0 {
		c.Auth.ExpirationHours = 24
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "token"
	}
	if c.Shortener.BaseURL == "" {
		c.Shortener.BaseURL = "http://localhost:8080/"
	}
	if c.Shortener.AliasLength == 0 {
		c.Shortener.AliasLength = 5
	}
	if c.Shortener.MaxRetries == 0 {
		c.Shortener.MaxRetries = 10
	}
	if c.Shortener.DefaultScheme == "" {
		c.Shortener.DefaultScheme = "https"
	}
	if c.Shortener.ValidationTimeout == 0 {
		c.Shortener.ValidationTimeout = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 30
	}
}
