package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Question{}))

	svc := service.NewQuestionService(repository.NewQuestionRepository(db), nil, nil)
	ctrl := NewQuestionController(svc)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/questions", ctrl.ListQuestions)
	api.POST("/questions", ctrl.CreateQuestion)
	api.DELETE("/questions/:id", ctrl.DeleteQuestion)
	return router
}

func postQuestion(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/questions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListQuestionsEmpty(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var questions []model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	assert.Empty(t, questions)
}

func TestCreateQuestion(t *testing.T) {
	router := newTestRouter(t)

	w := postQuestion(t, router, `{
		"question": "2+2?",
		"answers": {"A": "3", "B": "4"},
		"correct": {"A": false, "B": true}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "2+2?", created.Question)

	// 创建后的题目出现在列表中
	req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	require.Equal(t, http.StatusOK, lw.Code)

	var questions []model.Question
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, created.ID, questions[0].ID)
	assert.Equal(t, map[string]string{"A": "3", "B": "4"}, questions[0].Answers.Data())
}

func TestCreateQuestionMissingFields(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"no question", `{"answers": {"A": "x"}, "correct": {"A": true}}`},
		{"no answers", `{"question": "q", "correct": {"A": true}}`},
		{"no correct", `{"question": "q", "answers": {"A": "x"}}`},
		{"malformed json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postQuestion(t, router, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var payload map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			assert.Equal(t, "Missing required fields", payload["error"])
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	router := newTestRouter(t)

	w := postQuestion(t, router, `{
		"question": "q",
		"answers": {"A": "x"},
		"correct": {"A": true}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	dw := httptest.NewRecorder()
	router.ServeHTTP(dw, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/questions/%d", created.ID), nil))
	require.Equal(t, http.StatusOK, dw.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(dw.Body.Bytes(), &payload))
	assert.Equal(t, "Question deleted successfully", payload["message"])

	// 删除后从列表中消失
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, httptest.NewRequest(http.MethodGet, "/api/questions", nil))

	var questions []model.Question
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &questions))
	assert.Empty(t, questions)
}

func TestDeleteNonExistentQuestion(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/questions/424242", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Question deleted successfully", payload["message"])
}

func TestDeleteInvalidID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/questions/abc", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Invalid question ID", payload["error"])
}
