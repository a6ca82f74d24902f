package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"quiz_backend/internal/model"

	"github.com/google/uuid"
)

var (
	ErrEmptyPool       = errors.New("no questions available")
	ErrNotRunning      = errors.New("no quiz session in progress")
	ErrIndexOutOfRange = errors.New("question index out of range")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// AnswerRecord 一次作答：题目在会话中的下标与是否答对。只追加，不修改。
type AnswerRecord struct {
	Index     int  `json:"index"`
	IsCorrect bool `json:"isCorrect"`
}

// Session 一次测验会话：从题库抽取的固定题目序列加作答记录。
// 纯内存状态，不持久化。
type Session struct {
	ID        string
	Questions []model.Question
	Answers   []AnswerRecord
}

// Start 从题库无放回均匀抽取 min(max(size,1), len(pool)) 道题，顺序随机。
// 题库为空时返回错误；size 小于 1 时按 1 处理。
func Start(pool []model.Question, size int) (*Session, error) {
	return start(pool, size, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func start(pool []model.Question, size int, rng *rand.Rand) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if size < 1 {
		size = 1
	}
	if size > len(pool) {
		size = len(pool)
	}

	// 截断 Fisher-Yates：只需要前 size 个位置
	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)
	for i := 0; i < size; i++ {
		j := i + rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return &Session{
		ID:        uuid.New().String(),
		Questions: shuffled[:size],
	}, nil
}

// Answer 为第 index 道题记录一次作答。同一道题只能作答一次。
func (s *Session) Answer(index int, label string) (bool, error) {
	if index < 0 || index >= len(s.Questions) {
		return false, ErrIndexOutOfRange
	}
	if s.Answered(index) {
		return false, ErrAlreadyAnswered
	}

	isCorrect := s.Questions[index].IsCorrect(label)
	s.Answers = append(s.Answers, AnswerRecord{Index: index, IsCorrect: isCorrect})
	return isCorrect, nil
}

// Answered 第 index 道题是否已作答
func (s *Session) Answered(index int) bool {
	for _, a := range s.Answers {
		if a.Index == index {
			return true
		}
	}
	return false
}

// Record 返回第 index 道题的作答记录
func (s *Session) Record(index int) (AnswerRecord, bool) {
	for _, a := range s.Answers {
		if a.Index == index {
			return a, true
		}
	}
	return AnswerRecord{}, false
}

// Complete 所有抽取的题目均已作答
func (s *Session) Complete() bool {
	return len(s.Questions) > 0 && len(s.Answers) == len(s.Questions)
}

// CorrectCount 答对的题数
func (s *Session) CorrectCount() int {
	count := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			count++
		}
	}
	return count
}

// Percent 正确率百分比，保留两位小数
func (s *Session) Percent() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	raw := float64(s.CorrectCount()) / float64(len(s.Questions)) * 100
	return math.Round(raw*100) / 100
}

// Result 完成后的成绩行，如 "1 out of 1 (100.00%)"
func (s *Session) Result() string {
	return fmt.Sprintf("%d out of %d (%.2f%%)", s.CorrectCount(), len(s.Questions), s.Percent())
}

// Restart 无条件清空会话状态，回到设置视图
func (s *Session) Restart() {
	s.Questions = nil
	s.Answers = nil
}
