package meal

import (
	"errors"
	"net/http"
	"strconv"

	"meal-recommender/internal/api/middleware"
	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// GetPreferences 取得目前使用者的偏好，尚未設定時回傳 null
func (h *Handler) GetPreferences(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	prefs, err := h.preferences.GetPreferences(c.Request.Context(), user.ID)
	if errors.Is(err, common.ErrPreferencesNotFound) {
		c.JSON(http.StatusOK, gin.H{"preferences": nil})
		return
	}
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// SavePreferences 新增或覆寫目前使用者的偏好
func (h *Handler) SavePreferences(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var prefs meal.Preferences
	if err := bindBody(c, &prefs, common.ErrNoData); err != nil {
		common.WriteError(c, err)
		return
	}

	if err := h.preferences.SavePreferences(c.Request.Context(), user.ID, prefs.WithDefaults()); err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferences saved successfully"})
}

// GetHistory 取得瀏覽紀錄，limit 預設 10
func (h *Handler) GetHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxHistoryLimit)
		}
	}

	history, err := h.activity.GetHistory(c.Request.Context(), user.ID, limit)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

type historyRequest struct {
	MealID *int64 `json:"meal_id"`
}

// AddHistory 記錄一次餐點瀏覽
func (h *Handler) AddHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req historyRequest
	if err := bindBody(c, &req, common.ErrMissingFields); err != nil {
		common.WriteError(c, err)
		return
	}
	if req.MealID == nil {
		common.WriteError(c, common.ErrMissingFields)
		return
	}

	if err := h.activity.AddHistory(c.Request.Context(), user.ID, *req.MealID); err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "History recorded"})
}

type feedbackRequest struct {
	MealID   *int64  `json:"meal_id"`
	Liked    *bool   `json:"liked"`
	Feedback *string `json:"feedback"`
}

// SubmitFeedback 新增餐點回饋
func (h *Handler) SubmitFeedback(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req feedbackRequest
	if err := bindBody(c, &req, common.ErrMissingFields); err != nil {
		common.WriteError(c, err)
		return
	}
	if req.MealID == nil || req.Liked == nil {
		common.WriteError(c, common.ErrMissingFields)
		return
	}

	err := h.activity.SaveFeedback(c.Request.Context(), meal.Feedback{
		UserID:   user.ID,
		MealID:   *req.MealID,
		Liked:    *req.Liked,
		Feedback: req.Feedback,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback submitted successfully"})
}
