package service

import (
	"sort"
	"time"

	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/internal/repository"
	"quiz_ai_backend/pkg/quizstats"
)

// 难题榜的过滤阈值：少于3次作答的主题样本太小，均分没有参考价值
const difficultMinAttempts = 3

// AnalyticsService 从存储层取出测验记录并委托 quizstats 做聚合计算。
type AnalyticsService struct {
	AttemptRepo *repository.AttemptRepository
}

func NewAnalyticsService(attemptRepo *repository.AttemptRepository) *AnalyticsService {
	return &AnalyticsService{AttemptRepo: attemptRepo}
}

func toStatsAttempts(attempts []model.QuizAttempt) []quizstats.Attempt {
	out := make([]quizstats.Attempt, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, quizstats.Attempt{
			UserID:          a.UserID,
			Username:        a.Username,
			Topic:           a.Topic,
			Score:           a.Score,
			TotalQuestions:  a.TotalQuestions,
			ScorePercentage: a.ScorePercentage,
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
		})
	}
	return out
}

func (s *AnalyticsService) allAttempts() ([]quizstats.Attempt, error) {
	attempts, err := s.AttemptRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return toStatsAttempts(attempts), nil
}

func (s *AnalyticsService) Overview() (*quizstats.Overview, error) {
	attempts, err := s.allAttempts()
	if err != nil {
		return nil, err
	}
	overview := quizstats.ComputeOverview(attempts)
	return &overview, nil
}

func (s *AnalyticsService) DailyStats(windowDays int) ([]quizstats.DailyStat, error) {
	attempts, err := s.allAttempts()
	if err != nil {
		return nil, err
	}
	return quizstats.DailyBreakdown(attempts, windowDays, time.Now()), nil
}

func (s *AnalyticsService) TopicStats() ([]quizstats.TopicStatistic, error) {
	attempts, err := s.allAttempts()
	if err != nil {
		return nil, err
	}
	return quizstats.TopicBreakdown(attempts), nil
}

func (s *AnalyticsService) DifficultTopics(limit int) ([]quizstats.TopicStatistic, error) {
	attempts, err := s.allAttempts()
	if err != nil {
		return nil, err
	}
	return quizstats.DifficultTopics(attempts, difficultMinAttempts, limit), nil
}

func (s *AnalyticsService) PopularTopics(limit int) ([]quizstats.TopicStatistic, error) {
	attempts, err := s.allAttempts()
	if err != nil {
		return nil, err
	}
	return quizstats.PopularTopics(attempts, limit), nil
}

func (s *AnalyticsService) TopicDurations() ([]quizstats.TopicDuration, error) {
	attempts, err := s.allAttempts()
	if err != nil {
		return nil, err
	}
	return quizstats.TopicDurations(attempts), nil
}

// UserStats 单用户的汇总统计，附趋势归类与作答速度相关性。
func (s *AnalyticsService) UserStats(userID uint) (*model.UserStatsReport, error) {
	raw, err := s.AttemptRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	attempts := toStatsAttempts(raw)

	// 趋势计算需要按时间正序的分数序列
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].EndTime.Before(attempts[j].EndTime)
	})
	scores := make([]float64, len(attempts))
	for i, a := range attempts {
		scores[i] = a.ScorePercentage
	}

	trendLine := quizstats.LinearTrend(scores)
	report := &model.UserStatsReport{
		UserSummary:      quizstats.ComputeUserSummary(attempts),
		Trend:            quizstats.ClassifyTrend(trendLine),
		TrendLine:        trendLine,
		SpeedCorrelation: quizstats.SpeedCorrelation(attempts),
	}
	return report, nil
}
