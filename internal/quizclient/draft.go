package quizclient

import (
	"errors"
	"strings"

	"quiz_backend/internal/model"
)

var (
	ErrEmptyPrompt = errors.New("question text is required")
	ErrNoAnswers   = errors.New("at least one answer is required")
	ErrNoCorrect   = errors.New("at least one answer must be marked correct")
)

// Draft 编辑中的题目表单，独立于任何已持久化的题目。
// 标签域在构造时按数量生成，不硬编码。
type Draft struct {
	Prompt  string
	Labels  []string
	Answers map[string]string
	Correct map[string]bool
}

func NewDraft(labelCount int) *Draft {
	d := &Draft{Labels: model.Labels(labelCount)}
	d.Reset()
	return d
}

// Validate 返回第一条未满足的要求；通过校验的草稿才允许发起请求
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Prompt) == "" {
		return ErrEmptyPrompt
	}

	hasAnswer := false
	for _, text := range d.Answers {
		if strings.TrimSpace(text) != "" {
			hasAnswer = true
			break
		}
	}
	if !hasAnswer {
		return ErrNoAnswers
	}

	for _, ok := range d.Correct {
		if ok {
			return nil
		}
	}
	return ErrNoCorrect
}

// Reset 提交成功后清空所有字段
func (d *Draft) Reset() {
	d.Prompt = ""
	d.Answers = make(map[string]string, len(d.Labels))
	d.Correct = make(map[string]bool, len(d.Labels))
	for _, label := range d.Labels {
		d.Answers[label] = ""
		d.Correct[label] = false
	}
}
