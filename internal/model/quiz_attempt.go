package model

import (
	"time"
)

// QuizAttempt 一次完成的测验，提交后不再变更
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID          uint            `gorm:"index;not null" json:"userId"`
	Username        string          `gorm:"size:100" json:"username"`
	Topic           string          `gorm:"size:100;index;not null" json:"topic"`
	Score           int             `gorm:"not null" json:"score"`
	TotalQuestions  int             `gorm:"not null" json:"totalQuestions"`
	ScorePercentage float64         `gorm:"not null" json:"scorePercentage"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	Answers         map[uint]string `gorm:"serializer:json" json:"answers"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizSession 用户当前进行中的测验状态。显式建模并按用户持久化，
// 同一用户重新开始测验会覆盖旧会话，提交后删除。
type QuizSession struct {
	BaseModel
	UserID      uint            `gorm:"uniqueIndex;not null" json:"userId"`
	Topic       string          `gorm:"size:100;not null" json:"topic"`
	QuestionIDs []uint          `gorm:"serializer:json" json:"questionIds"`
	Answers     map[uint]string `gorm:"serializer:json" json:"answers"`
	StartTime   time.Time       `json:"startTime"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
