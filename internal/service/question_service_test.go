package service

import (
	"context"
	"fmt"
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *QuestionService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Question{}))

	return NewQuestionService(repository.NewQuestionRepository(db), nil, nil)
}

func validRequest() QuestionRequest {
	return QuestionRequest{
		Question: "2+2?",
		Answers:  map[string]string{"A": "3", "B": "4"},
		Correct:  map[string]bool{"A": false, "B": true},
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, err := s.Create(ctx, validRequest())
	require.NoError(t, err)
	second, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	questions, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, first.ID, questions[0].ID)
	assert.Equal(t, second.ID, questions[1].ID)
}

func TestCreateRoundTripsLabelMaps(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	questions, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, created.ID, q.ID)
	assert.Equal(t, "2+2?", q.Question)
	assert.Equal(t, map[string]string{"A": "3", "B": "4"}, q.Answers.Data())
	assert.True(t, q.IsCorrect("B"))
	assert.False(t, q.IsCorrect("A"))
	assert.Equal(t, []string{"B"}, q.CorrectLabels())
}

func TestCreateMissingFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  QuestionRequest
	}{
		{"empty question", QuestionRequest{Answers: map[string]string{"A": "x"}, Correct: map[string]bool{"A": true}}},
		{"nil answers", QuestionRequest{Question: "q", Correct: map[string]bool{"A": true}}},
		{"nil correct", QuestionRequest{Question: "q", Answers: map[string]string{"A": "x"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.req)
			assert.ErrorIs(t, err, util.ErrMissingFields)
		})
	}

	questions, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	questions, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, questions)

	// 再次删除同一 id 仍然成功
	assert.NoError(t, s.Delete(ctx, created.ID))
	// 从未存在过的 id 也一样
	assert.NoError(t, s.Delete(ctx, 9999))
}
