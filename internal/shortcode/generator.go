package shortcode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"shorturl-analytics/internal/model"

	"go.uber.org/zap"
)

const (
	// Charset 包含用于生成短码的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultLength 是生成的短码的默认长度
	DefaultLength = 5
	// DefaultMaxRetries 冲突时的默认最大尝试次数
	DefaultMaxRetries = 10
)

// ErrExhausted 连续冲突达到上限
var ErrExhausted = errors.New("短码生成重试次数已用尽")

// Checker 判断短码是否已被占用
type Checker interface {
	AliasExists(ctx context.Context, owner, alias string) (bool, error)
}

// Generator 负责生成在查找范围内唯一的短码
type Generator struct {
	checker    Checker
	length     int
	maxRetries int
	randIndex  func(n int) (int, error)
	logger     *zap.SugaredLogger
}

// Option 生成器可选项
type Option func(*Generator)

// WithLength 设置短码长度, 超出列宽的值被忽略
func WithLength(n int) Option {
	return func(g *Generator) {
		if n > 0 && n <= model.ShortCodeSize {
			g.length = n
		}
	}
}

// WithMaxRetries 设置冲突重试上限
func WithMaxRetries(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxRetries = n
		}
	}
}

// WithRandIndex 替换随机源, 用于测试
func WithRandIndex(f func(n int) (int, error)) Option {
	return func(g *Generator) {
		g.randIndex = f
	}
}

// NewGenerator 创建一个新的短码生成器实例
func NewGenerator(checker Checker, logger *zap.SugaredLogger, opts ...Option) *Generator {
	g := &Generator{
		checker:    checker,
		length:     DefaultLength,
		maxRetries: DefaultMaxRetries,
		randIndex:  cryptoIndex,
		logger:     logger.Named("shortcode_generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 为 owner 生成一个未被占用的短码
func (g *Generator) Generate(ctx context.Context, owner string) (string, error) {
	for i := 0; i < g.maxRetries; i++ {
		code, err := g.randomString()
		if err != nil {
			return "", err
		}
		exists, err := g.checker.AliasExists(ctx, owner, code)
		if err != nil {
			return "", fmt.Errorf("检查短码失败: %w", err)
		}
		if !exists {
			return code, nil
		}
		g.logger.Debugf("短码 %s 已存在, 重试 (%d/%d)", code, i+1, g.maxRetries)
	}
	g.logger.Warnf("已尝试 %d 次生成短码, 但均存在冲突", g.maxRetries)
	return "", ErrExhausted
}

// randomString 按字符独立均匀抽取
func (g *Generator) randomString() (string, error) {
	b := make([]byte, g.length)
	for i := range b {
		idx, err := g.randIndex(len(Charset))
		if err != nil {
			return "", err
		}
		b[i] = Charset[idx]
	}
	return string(b), nil
}

// cryptoIndex 使用加密安全的随机数生成器
func cryptoIndex(n int) (int, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(num.Int64()), nil
}

// IsValid 判断字符串是否可能是短码: 仅含字母数字, 长度不超过列宽
// 不限定当前配置的长度, 修改 alias_length 后旧短码仍然有效
func IsValid(code string) bool {
	if code == "" || len(code) > model.ShortCodeSize {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
