package handler

import (
	"errors"
	"net/http"

	"shorturl-analytics/internal/middleware"
	"shorturl-analytics/internal/service"
	auth "shorturl-analytics/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 登录、退出与注册
type AuthHandler struct {
	accounts     *service.AuthService
	jwtManager   *auth.TokenManager
	cookieName   string
	secureCookie bool
	logger       *zap.SugaredLogger
}

// NewAuthHandler 创建一个新的 AuthHandler
func NewAuthHandler(accounts *service.AuthService, jwtManager *auth.TokenManager, cookieName string, secureCookie bool, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		accounts:     accounts,
		jwtManager:   jwtManager,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       logger.Named("auth_handler"),
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"wonderland"`
}

// AuthResponse 认证成功后的响应
type AuthResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LoginPage 登录表单
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Username": "", "Error": ""})
}

// Login 校验表单凭据, 成功后写入身份 cookie 并回到首页
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	token, err := h.accounts.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		h.logLoginFailure(username, err)
		c.HTML(statusFor(err), "login.html", gin.H{"Username": username, "Error": service.Message(err)})
		return
	}
	h.setCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

// APILogin godoc
// @Summary 用户登录
// @Description 使用用户名和密码获取 JWT 令牌
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   account  body   LoginRequest  true  "登录凭据"
// @Success 200 {object} AuthResponse "成功响应"
// @Failure 400 {object} ErrorResponse "请求无效"
// @Failure 401 {object} ErrorResponse "认证失败"
// @Router /api/login [post]
func (h *AuthHandler) APILogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的请求数据: " + err.Error()})
		return
	}
	token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logLoginFailure(req.Username, err)
		c.JSON(statusFor(err), ErrorResponse{Error: service.Message(err)})
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// Logout 清除身份 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, "/")
}

// CreateAccountPage 注册表单
func (h *AuthHandler) CreateAccountPage(c *gin.Context) {
	c.HTML(http.StatusOK, "create_account.html", gin.H{"Username": "", "Error": ""})
}

// CreateAccount 注册新账户, 成功后跳转到登录页
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	username := c.PostForm("username")
	_, err := h.accounts.Register(c.Request.Context(), username, c.PostForm("password"), c.PostForm("confirm_password"))
	if err != nil {
		if !errors.Is(err, service.ErrValidation) {
			h.logger.Errorw("注册失败", "username", username, "error", err)
		}
		c.HTML(statusFor(err), "create_account.html", gin.H{"Username": username, "Error": service.Message(err)})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Me godoc
// @Summary 当前身份
// @Tags Auth
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} map[string]string "成功响应"
// @Failure 401 {object} ErrorResponse "未登录"
// @Router /api/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": middleware.Owner(c)})
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.jwtManager.Expiration().Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) logLoginFailure(username string, err error) {
	if errors.Is(err, service.ErrAuth) {
		h.logger.Infow("登录失败", "username", username, "reason", service.Message(err))
		return
	}
	h.logger.Errorw("登录出错", "username", username, "error", err)
}
