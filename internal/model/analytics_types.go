package model

import "quiz_ai_backend/pkg/quizstats"

// QuizView 开始测验时返回给用户的载荷
type QuizView struct {
	Topic     string         `json:"topic"`
	Questions []QuestionView `json:"questions"`
	StartTime string         `json:"startTime"`
}

// QuizResultItem 单题判分明细
type QuizResultItem struct {
	QuestionID    uint   `json:"questionId"`
	Selected      string `json:"selected"`
	CorrectOption string `json:"correctOption"`
	Correct       bool   `json:"correct"`
}

// QuizResult 提交测验后的判分结果
type QuizResult struct {
	AttemptID       uint             `json:"attemptId"`
	Score           int              `json:"score"`
	TotalQuestions  int              `json:"totalQuestions"`
	ScorePercentage float64          `json:"scorePercentage"`
	Items           []QuizResultItem `json:"items"`
}

// UserStatsReport 用户个人统计，附趋势归类
type UserStatsReport struct {
	quizstats.UserSummary
	Trend            string               `json:"trend"` // improving / declining / stable
	TrendLine        *quizstats.TrendLine `json:"trendLine"`
	SpeedCorrelation *float64             `json:"speedCorrelation"`
}

// InsightReport AI分析结果：小节化的文本加原始全文
type InsightReport struct {
	Sections map[string][]string `json:"sections"`
	Raw      string              `json:"raw"`
}
