package handler

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/middleware"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShortLinkHandler 短链页面与接口
type ShortLinkHandler struct {
	links  *service.LinkService
	logger *zap.SugaredLogger
}

// NewShortLinkHandler 创建处理器实例
func NewShortLinkHandler(links *service.LinkService, logger *zap.SugaredLogger) *ShortLinkHandler {
	return &ShortLinkHandler{links: links, logger: logger.Named("link_handler")}
}

// IndexPage 提交表单
func (h *ShortLinkHandler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.indexData(c, nil))
}

// Shorten 处理表单提交
func (h *ShortLinkHandler) Shorten(c *gin.Context) {
	rawURL := c.PostForm("url")
	sub, err := h.links.Submit(c.Request.Context(), middleware.Owner(c), rawURL)
	if err != nil {
		h.logFailure("提交短链失败", err)
		data := h.indexData(c, gin.H{"URL": rawURL, "Error": service.Message(err)})
		c.HTML(statusFor(err), "index.html", data)
		return
	}
	c.HTML(http.StatusOK, "index.html", h.indexData(c, gin.H{
		"ShortURL": sub.ShortURL,
		"Clicks":   sub.Clicks,
	}))
}

// Display 列出当前身份的短链, 不允许查看他人的列表
func (h *ShortLinkHandler) Display(c *gin.Context) {
	owner := middleware.Owner(c)
	if requested := c.Param("owner"); requested != "" && requested != owner {
		c.String(http.StatusForbidden, "无权查看该用户的链接")
		return
	}

	views, err := h.links.List(c.Request.Context(), owner)
	if err != nil {
		h.logFailure("查询链接列表失败", err)
		c.String(http.StatusInternalServerError, service.Message(err))
		return
	}
	c.HTML(http.StatusOK, "display.html", gin.H{"Owner": owner, "Links": views})
}

// RedirectToOriginal 跳转到原始链接并记录点击
func (h *ShortLinkHandler) RedirectToOriginal(c *gin.Context) {
	alias := c.Param("alias")
	target, err := h.links.Visit(c.Request.Context(), alias, analytics.Click{
		Referrer:  c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		At:        time.Now(),
	})
	if err != nil {
		if !service.IsNotFound(err) {
			h.logFailure("解析短码失败", err)
			c.String(http.StatusInternalServerError, service.Message(err))
			return
		}
		c.HTML(http.StatusNotFound, "invalid_url.html", gin.H{"Alias": alias})
		return
	}
	c.Redirect(http.StatusFound, target)
}

// ClicksResponse 点击统计
type ClicksResponse struct {
	ShortURL  string                  `json:"shortUrl" example:"aB3x9"`
	NumClicks int64                   `json:"numClicks" example:"2"`
	ClickData map[int]analytics.Event `json:"clickData"`
}

// ErrorResponse 错误信息
type ErrorResponse struct {
	Error string `json:"error" example:"短码不存在"`
}

// Clicks godoc
// @Summary 点击统计
// @Description 返回短码的点击次数和完整点击记录, short_url 可以是短码或完整短链
// @Tags ShortLink
// @Produce  json
// @Param   short_url  query  string  true  "短码或完整短链"
// @Success 200 {object} ClicksResponse "成功响应"
// @Failure 400 {object} ErrorResponse "缺少参数"
// @Failure 404 {object} ErrorResponse "短码不存在"
// @Router /clicks [get]
func (h *ShortLinkHandler) Clicks(c *gin.Context) {
	shortURL := c.Query("short_url")
	alias := aliasOf(shortURL)
	if alias == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "缺少 short_url 参数"})
		return
	}

	sum, err := h.links.Clicks(c.Request.Context(), alias)
	if err != nil {
		if !service.IsNotFound(err) {
			h.logFailure("查询点击统计失败", err)
		}
		c.JSON(statusFor(err), ErrorResponse{Error: errorText(err)})
		return
	}

	data := make(map[int]analytics.Event, len(sum.Events))
	for _, e := range sum.Events {
		data[e.Index] = e
	}
	c.JSON(http.StatusOK, ClicksResponse{ShortURL: shortURL, NumClicks: sum.Count, ClickData: data})
}

// HealthCheck 健康检查
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// CreateShortLinkRequest 创建短链请求
type CreateShortLinkRequest struct {
	URL string `json:"url" binding:"required" example:"https://github.com/gin-gonic/gin"`
}

// CreateShortLink godoc
// @Summary 创建短链接
// @Description 为长 URL 创建短链接, 同一用户重复提交同一 URL 返回已有短链
// @Tags ShortLink
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   url  body   CreateShortLinkRequest  true  "长链接 URL"
// @Success 201 {object} service.Submission "新建"
// @Success 200 {object} service.Submission "已存在"
// @Failure 400 {object} ErrorResponse "请求无效"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/shorten [post]
func (h *ShortLinkHandler) CreateShortLink(c *gin.Context) {
	var req CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的请求数据: " + err.Error()})
		return
	}

	sub, err := h.links.Submit(c.Request.Context(), middleware.Owner(c), req.URL)
	if err != nil {
		h.logFailure("创建短链失败", err)
		c.JSON(statusFor(err), ErrorResponse{Error: errorText(err)})
		return
	}

	status := http.StatusOK
	if sub.Created {
		status = http.StatusCreated
	}
	c.JSON(status, sub)
}

// GetLinks godoc
// @Summary 当前用户的短链
// @Description 未登录时返回 public 名下的短链
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} service.LinkView "成功响应"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/links [get]
func (h *ShortLinkHandler) GetLinks(c *gin.Context) {
	views, err := h.links.List(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		h.logFailure("查询链接列表失败", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: service.Message(err)})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ShortLinkHandler) indexData(c *gin.Context, extra gin.H) gin.H {
	name, _ := middleware.Username(c)
	data := gin.H{"Username": name, "URL": "", "Error": "", "ShortURL": "", "Clicks": int64(0)}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *ShortLinkHandler) logFailure(msg string, err error) {
	if errors.Is(err, service.ErrValidation) {
		h.logger.Debugw(msg, "error", err)
		return
	}
	h.logger.Errorw(msg, "error", err)
}

// aliasOf 取 short_url 的最后一段作为短码
func aliasOf(shortURL string) string {
	s := strings.TrimSpace(shortURL)
	if s == "" {
		return ""
	}
	if u, err := url.Parse(s); err == nil && u.Path != "" {
		s = u.Path
	}
	alias := path.Base(strings.TrimSuffix(s, "/"))
	if alias == "." || alias == "/" {
		return ""
	}
	return alias
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shortcode.ErrExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorText(err error) string {
	if errors.Is(err, service.ErrNotFound) {
		return service.ErrNotFound.Error()
	}
	return service.Message(err)
}
