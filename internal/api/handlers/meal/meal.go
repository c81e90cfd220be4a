package meal

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"meal-recommender/internal/api/middleware"
	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHeader 用戶端帶入的匿名工作階段 ID
const SessionHeader = "X-Session-ID"

// Handler 推薦、偏好、回饋與餐點目錄
type Handler struct {
	recommender *meal.Service
	catalog     meal.Catalog
	preferences meal.PreferenceStore
	activity    meal.ActivityStore
}

// NewHandler 創建餐點處理器
func NewHandler(recommender *meal.Service, catalog meal.Catalog, preferences meal.PreferenceStore, activity meal.ActivityStore) *Handler {
	return &Handler{
		recommender: recommender,
		catalog:     catalog,
		preferences: preferences,
		activity:    activity,
	}
}

// RecommendationResponse 推薦結果
type RecommendationResponse struct {
	SessionID       string            `json:"session_id"`
	Recommendations []meal.ScoredMeal `json:"recommendations"`
}

// Recommend 依偏好推薦餐點，已登入時同時保存偏好
func (h *Handler) Recommend(c *gin.Context) {
	var prefs meal.Preferences
	if err := bindRecommendationBody(c, &prefs); err != nil {
		common.WriteError(c, err)
		return
	}
	prefs = prefs.WithDefaults()

	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = common.GenerateUUID()
	}

	ctx := c.Request.Context()
	if user, ok := middleware.CurrentUser(c); ok {
		if err := h.preferences.SavePreferences(ctx, user.ID, prefs); err != nil {
			common.LogError("保存偏好失敗",
				zap.Error(err),
				zap.Int64("user_id", user.ID),
				zap.String("request_id", requestid.Get(c)),
			)
			common.WriteError(c, err)
			return
		}
	}

	result, err := h.recommender.Recommend(ctx, prefs)
	if err != nil {
		common.LogError("推薦失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{
		SessionID:       sessionID,
		Recommendations: result.Meals,
	})
}

// bindBody 解析 JSON 請求內容，空內容回傳 empty
func bindBody(c *gin.Context, v interface{}, empty error) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return common.ErrPayloadTooLarge
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return empty
	}
	if err := common.ParseJSONBytes(body, v); err != nil {
		return common.ErrInvalidRequest
	}
	return nil
}

// bindRecommendationBody 空內容、null 或沒有任何欄位的物件皆視為未提供資料
func bindRecommendationBody(c *gin.Context, prefs *meal.Preferences) error {
	var fields map[string]json.RawMessage
	if err := bindBody(c, &fields, common.ErrNoData); err != nil {
		return err
	}
	if len(fields) == 0 {
		return common.ErrNoData
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return common.ErrInvalidRequest
	}
	if err := common.ParseJSONBytes(raw, prefs); err != nil {
		return common.ErrInvalidRequest
	}
	return nil
}
