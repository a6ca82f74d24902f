package service

import (
	"context"
	"encoding/json"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"
	"quiz_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const questionListCacheKey = "questions:all"

type QuestionService struct {
	Repo     *repository.QuestionRepository
	Redis    *redis.Client
	cacheTTL time.Duration
}

func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client, cfg *config.Config) *QuestionService {
	ttl := 10 * time.Minute
	if cfg != nil && cfg.Cache.QuestionTTLMinutes > 0 {
		ttl = time.Duration(cfg.Cache.QuestionTTLMinutes) * time.Minute
	}
	return &QuestionService{Repo: repo, Redis: rdb, cacheTTL: ttl}
}

type QuestionRequest struct {
	Question string            `json:"question"`
	Answers  map[string]string `json:"answers"`
	Correct  map[string]bool   `json:"correct"`
}

// List 读穿缓存：命中直接返回，未命中回源数据库并回填
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, questionListCacheKey).Result()
		if err == nil {
			var cached []model.Question
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("question cache read failed", zap.Error(err))
		}
	}

	questions, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(questions); err == nil {
			if err := s.Redis.Set(ctx, questionListCacheKey, data, s.cacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.Error(err))
			}
		}
	}

	return questions, nil
}

// Create 校验三个字段均存在后写库，成功后显式失效列表缓存
func (s *QuestionService) Create(ctx context.Context, req QuestionRequest) (*model.Question, error) {
	if req.Question == "" || len(req.Answers) == 0 || len(req.Correct) == 0 {
		return nil, util.ErrMissingFields
	}

	question := model.NewQuestion(req.Question, req.Answers, req.Correct)
	if err := s.Repo.Create(question); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.updateQuestionGauge()
	return question, nil
}

// Delete 删除不存在的 id 同样视为成功
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.updateQuestionGauge()
	return nil
}

func (s *QuestionService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, questionListCacheKey).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}

func (s *QuestionService) updateQuestionGauge() {
	if count, err := s.Repo.Count(); err == nil {
		monitoring.QuestionCount.Set(float64(count))
	}
}
