package repository

import (
	"quiz_ai_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptRepository 负责测验记录与进行中的会话。统计计算不在这里做：
// 取出记录集合后交给 pkg/quizstats 的纯函数处理。
type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindAll() ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Order("end_time DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindByUser(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("end_time DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindByTopic(topic string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("topic = ?", topic).
		Order("end_time DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindRecent(limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Order("end_time DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

// SaveSession 保存用户的进行中会话，同一用户重复开始时覆盖旧会话
func (r *AttemptRepository) SaveSession(session *model.QuizSession) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(session).Error
}

func (r *AttemptRepository) GetSession(userID uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.Where("user_id = ?", userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *AttemptRepository) DeleteSession(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.QuizSession{}).Error
}
