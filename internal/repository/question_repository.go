package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create 插入题目并回填自增 id
func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// FindAll 按插入顺序返回全部题目
func (r *QuestionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Delete 删除题目，id 不存在时同样视为成功
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Count(&count).Error
	return count, err
}
