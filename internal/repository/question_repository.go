package repository

import (
	"quiz_ai_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByTopic(topic string, limit int) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Where("topic = ?", topic)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	result := r.DB.Delete(&model.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuestionRepository) DistinctTopics() ([]string, error) {
	var topics []string
	err := r.DB.Model(&model.Question{}).
		Distinct("topic").
		Order("topic ASC").
		Pluck("topic", &topics).Error
	return topics, err
}
