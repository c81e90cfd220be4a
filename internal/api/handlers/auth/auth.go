package auth

import (
	"io"
	"net/http"

	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 註冊與登入
type Handler struct {
	service *auth.Service
}

// NewHandler 創建認證處理器
func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Register 註冊新使用者
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		common.WriteError(c, err)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		logFailure("註冊失敗", c, err)
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login 使用者登入
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := bindBody(c, &req); err != nil {
		common.WriteError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		logFailure("登入失敗", c, err)
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// bindBody 解析請求內容，空內容視為缺少欄位
func bindBody(c *gin.Context, v interface{}) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return common.ErrPayloadTooLarge
	}
	if len(body) == 0 {
		return common.ErrMissingFields
	}
	if err := common.ParseJSONBytes(body, v); err != nil {
		return common.ErrInvalidRequest
	}
	return nil
}

func logFailure(msg string, c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	if ce.Status >= http.StatusInternalServerError {
		common.LogError(msg, zap.Error(err), zap.String("request_id", requestid.Get(c)))
		return
	}
	common.LogDebug(msg, zap.String("code", ce.Code), zap.String("request_id", requestid.Get(c)))
}
