package meal

import (
	"net/http"
	"strconv"

	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetMeal 依 ID 取得單一餐點
func (h *Handler) GetMeal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		common.WriteError(c, common.ErrMealNotFound)
		return
	}

	m, err := h.catalog.GetMeal(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": m})
}

// ResetMeals 重設餐點目錄為範例資料
func (h *Handler) ResetMeals(c *gin.Context) {
	if err := h.catalog.ResetMeals(c.Request.Context(), meal.SampleMeals()); err != nil {
		common.LogError("重設餐點失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Error: "Failed to reset meals data",
			Code:  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meals data reset successfully"})
}
