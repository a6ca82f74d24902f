package model

import (
	"sort"

	"gorm.io/datatypes"
)

// Question 测验题目，answers/correct 以 JSON 列存储标签映射
// swagger:model Question
type Question struct {
	ID       uint                                  `gorm:"primaryKey;autoIncrement" json:"id"`
	Question string                                `gorm:"type:text;not null" json:"question"`
	Answers  datatypes.JSONType[map[string]string] `gorm:"type:json" json:"answers"`
	Correct  datatypes.JSONType[map[string]bool]   `gorm:"type:json" json:"correct"`
}

func (Question) TableName() string {
	return "questions"
}

// NewQuestion 从标签映射构造题目（id 由存储层分配）
func NewQuestion(prompt string, answers map[string]string, correct map[string]bool) *Question {
	return &Question{
		Question: prompt,
		Answers:  datatypes.NewJSONType(answers),
		Correct:  datatypes.NewJSONType(correct),
	}
}

// AnswerTexts 返回标签到答案文本的映射，空文本视为该标签不存在
func (q *Question) AnswerTexts() map[string]string {
	out := make(map[string]string)
	for label, text := range q.Answers.Data() {
		if text != "" {
			out[label] = text
		}
	}
	return out
}

// IsCorrect 判断某标签是否为正确答案
func (q *Question) IsCorrect(label string) bool {
	return q.Correct.Data()[label]
}

// CorrectLabels 返回所有正确标签，按标签字典序排列
func (q *Question) CorrectLabels() []string {
	var labels []string
	for label, ok := range q.Correct.Data() {
		if ok {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Labels 生成大小为 n 的标签域（"A".."Z"），答案选项数量由构造时决定
func Labels(n int) []string {
	if n < 1 {
		n = 1
	}
	if n > 26 {
		n = 26
	}
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		labels = append(labels, string(rune('A'+i)))
	}
	return labels
}
