package service

import (
	"errors"
	"fmt"
	"strings"

	"shorturl-analytics/internal/shortcode"
)

var (
	// ErrValidation 输入校验失败, 以表单错误展示
	ErrValidation = errors.New("输入无效")
	// ErrAuth 登录失败
	ErrAuth = errors.New("认证失败")
	// ErrNotFound 短码不存在
	ErrNotFound = errors.New("短码不存在")

	ErrInvalidURL       = fmt.Errorf("%w: 无效的 URL", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: 两次输入的密码不一致", ErrValidation)
	ErrUsernameTaken    = fmt.Errorf("%w: 用户名已被使用, 请换一个", ErrValidation)
	ErrUsernameInvalid  = fmt.Errorf("%w: 用户名或密码格式不正确", ErrValidation)

	ErrUnknownUser   = fmt.Errorf("%w: 用户名不存在", ErrAuth)
	ErrWrongPassword = fmt.Errorf("%w: 密码错误", ErrAuth)
)

// Message 返回展示给用户的错误文本
func Message(err error) string {
	for _, e := range []error{
		ErrInvalidURL, ErrPasswordMismatch, ErrUsernameTaken, ErrUsernameInvalid,
		ErrUnknownUser, ErrWrongPassword,
	} {
		if errors.Is(err, e) {
			return strings.TrimPrefix(e.Error(), errors.Unwrap(e).Error()+": ")
		}
	}
	if errors.Is(err, shortcode.ErrExhausted) {
		return "暂时无法生成短码, 请稍后重试"
	}
	return "服务器内部错误"
}
