package meal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-recommender/internal/api/middleware"
	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  *database.MemoryStore
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := database.NewMemoryStore(meal.SampleMeals())
	tokens, err := auth.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)
	authSvc := auth.NewService(store, tokens, bcrypt.MinCost)

	ctx := context.Background()
	_, err = authSvc.Register(ctx, auth.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)
	login, err := authSvc.Login(ctx, auth.LoginRequest{Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)

	h := NewHandler(meal.NewService(store, nil), store, store, store)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/recommendations", middleware.OptionalAuth(authSvc), h.Recommend)
	api.GET("/meals/:id", h.GetMeal)
	api.POST("/admin/reset-meals", h.ResetMeals)
	api.POST("/feedback", middleware.RequireAuth(authSvc), h.SubmitFeedback)
	user := api.Group("/user", middleware.RequireAuth(authSvc))
	user.GET("/preferences", h.GetPreferences)
	user.POST("/preferences", h.SavePreferences)
	user.GET("/history", h.GetHistory)
	user.POST("/history", h.AddHistory)

	return &testEnv{router: r, store: store, token: login.Token}
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestRecommend(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/recommendations",
		`{"diet_type":"vegetarian","preferences":"american, mexican","allergies":["feta cheese"],"health_goal":"lose"}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RecommendationResponse
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.SessionID)

	names := make([]string, 0, len(resp.Recommendations))
	for i, m := range resp.Recommendations {
		names = append(names, m.Name)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Recommendations[i-1].RecommendationScore, m.RecommendationScore)
		}
	}
	assert.ElementsMatch(t, []string{"Avocado Toast with Poached Eggs", "Bean and Cheese Burrito"}, names)
}

func TestRecommendSessionHeader(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{"health_goal":"maintain"}`))
	req.Header.Set(SessionHeader, "abc-123")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RecommendationResponse
	decode(t, w, &resp)
	assert.Equal(t, "abc-123", resp.SessionID)
	assert.Len(t, resp.Recommendations, 5)
}

func TestRecommendEmptyResultIsNotAnError(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/recommendations", `{"diet_type":"keto"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recommendations":[]`)
}

func TestRecommendBadBodies(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty", "", "No data provided"},
		{"whitespace", "  \n", "No data provided"},
		{"empty object", `{}`, "No data provided"},
		{"null", `null`, "No data provided"},
		{"malformed", `{"diet_type":`, "Invalid request format"},
		{"wrong shape", `["vegan"]`, "Invalid request format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/recommendations", tt.body, false)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			decode(t, w, &resp)
			assert.Equal(t, tt.message, resp["error"])
		})
	}
}

func TestRecommendStoresPreferencesForAuthenticatedUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/user/preferences", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"preferences":null}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/recommendations", `{"diet_type":"vegan","allergies":"nuts, soy"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/user/preferences", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Preferences *meal.Preferences `json:"preferences"`
	}
	decode(t, w, &resp)
	require.NotNil(t, resp.Preferences)
	assert.Equal(t, "vegan", resp.Preferences.DietType)
	assert.Equal(t, meal.StringList{"nuts", "soy"}, resp.Preferences.Allergies)
	assert.Equal(t, "maintain", resp.Preferences.HealthGoal)
}

func TestSavePreferencesOverwrites(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/user/preferences", `{"diet_type":"vegan","health_goal":"gain"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Preferences saved successfully"}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/user/preferences", `{"preferences":["asian"]}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	prefs, err := env.store.GetPreferences(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "any", prefs.DietType)
	assert.Equal(t, "maintain", prefs.HealthGoal)
	assert.Equal(t, meal.StringList{"asian"}, prefs.Preferences)
}

func TestUserRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/user/preferences", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is missing")
}

func TestSubmitFeedback(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/feedback", `{"meal_id":2,"liked":true,"feedback":"great"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Feedback submitted successfully"}`, w.Body.String())

	feedback := env.store.Feedback()
	require.Len(t, feedback, 1)
	assert.Equal(t, int64(2), feedback[0].MealID)
	assert.True(t, feedback[0].Liked)

	w = env.do(http.MethodPost, "/api/feedback", `{"meal_id":2}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/feedback", `{"meal_id":99,"liked":false}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"1", "3", "2"} {
		w := env.do(http.MethodPost, "/api/user/history", `{"meal_id":`+id+`}`, true)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodGet, "/api/user/history?limit=2", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []meal.HistoryEntry `json:"history"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.History, 2)
	assert.Equal(t, int64(2), resp.History[0].ID)
	assert.Equal(t, int64(3), resp.History[1].ID)

	w = env.do(http.MethodPost, "/api/user/history", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMeal(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/meals/2", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Meal meal.Meal `json:"meal"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Vegetable Stir Fry", resp.Meal.Name)

	for _, path := range []string{"/api/meals/42", "/api/meals/abc"} {
		w = env.do(http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestResetMeals(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/feedback", `{"meal_id":1,"liked":true}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/admin/reset-meals", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Meals data reset successfully"}`, w.Body.String())
	assert.Empty(t, env.store.Feedback())

	w = env.do(http.MethodPost, "/api/recommendations", `{"diet_type":"any"}`, false)
	var resp RecommendationResponse
	decode(t, w, &resp)
	assert.Len(t, resp.Recommendations, 5)
}
