package service

import (
	"fmt"
	"strings"

	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/internal/util"
	"quiz_ai_backend/pkg/analysis"
	"quiz_ai_backend/pkg/quizstats"
)

// InsightService 把平台统计喂给AI获得分析文本，再按小节词表
// 切分成结构化报告。AI输出不符合格式时原文仍然完整返回。
type InsightService struct {
	Analytics *AnalyticsService
	AI        *AIService
}

func NewInsightService(analytics *AnalyticsService, ai *AIService) *InsightService {
	return &InsightService{Analytics: analytics, AI: ai}
}

func buildPlatformPrompt(overview *quizstats.Overview, topics []quizstats.TopicStatistic, difficult []quizstats.TopicStatistic) string {
	var b strings.Builder
	b.WriteString("You are an education data analyst. Analyze the following quiz platform statistics.\n\n")
	fmt.Fprintf(&b, "Total attempts: %d, unique users: %d, average score: %.1f%%, active topics: %d\n\n",
		overview.TotalAttempts, overview.UniqueUsers, overview.AvgScore, overview.ActiveTopics)

	b.WriteString("Per-topic performance:\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "- %s: %d attempts, average %.1f%%\n", t.Topic, t.Attempts, t.AvgScore)
	}
	if len(difficult) > 0 {
		b.WriteString("\nLowest scoring topics:\n")
		for _, t := range difficult {
			fmt.Fprintf(&b, "- %s: average %.1f%% over %d attempts\n", t.Topic, t.AvgScore, t.Attempts)
		}
	}

	b.WriteString("\nStructure your response in exactly these sections:\n")
	b.WriteString("1. Key Insights\n2. Recommendations\n3. Topics to Focus On\n")
	b.WriteString("Use short bullet points under each section.")
	return b.String()
}

func buildCoachingPrompt(username string, report *model.UserStatsReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a personal study coach. Write feedback for the student %q based on their quiz history.\n\n", username)
	fmt.Fprintf(&b, "Quizzes taken: %d, questions answered: %d, correct: %d, average score: %.1f%%\n",
		report.TotalQuizzes, report.TotalQuestions, report.CorrectAnswers, report.AvgScore)
	fmt.Fprintf(&b, "Overall trend: %s\n", report.Trend)
	if report.BestTopic != nil {
		fmt.Fprintf(&b, "Strongest topic: %s (%.1f%%)\n", report.BestTopic.Topic, report.BestTopic.AvgScore)
	}
	if report.WorstTopic != nil {
		fmt.Fprintf(&b, "Weakest topic: %s (%.1f%%)\n", report.WorstTopic.Topic, report.WorstTopic.AvgScore)
	}
	if report.SpeedCorrelation != nil {
		fmt.Fprintf(&b, "Correlation between answering speed and score: %.2f\n", *report.SpeedCorrelation)
	}

	b.WriteString("\nStructure your response in exactly these sections:\n")
	b.WriteString("1. Performance Summary\n2. Strengths\n3. Areas for Improvement\n4. Study Plan\n5. Motivation\n")
	b.WriteString("Be encouraging and specific.")
	return b.String()
}

func buildTopicGuidancePrompt(topic string, stat *quizstats.TopicStatistic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a subject tutor. Write a study guide for the topic %q.\n", topic)
	if stat != nil {
		fmt.Fprintf(&b, "Learners currently average %.1f%% over %d quiz attempts on this topic.\n", stat.AvgScore, stat.Attempts)
	}

	b.WriteString("\nStructure your response in exactly these sections:\n")
	b.WriteString("1. Topic Overview\n2. Common Challenges\n3. Study Strategies\n4. Recommended Resources\n5. Practice Approach\n")
	return b.String()
}

// PlatformInsights 面向管理端的全局分析
func (s *InsightService) PlatformInsights() (*model.InsightReport, error) {
	overview, err := s.Analytics.Overview()
	if err != nil {
		return nil, err
	}
	topics, err := s.Analytics.TopicStats()
	if err != nil {
		return nil, err
	}
	difficult, err := s.Analytics.DifficultTopics(5)
	if err != nil {
		return nil, err
	}

	raw, err := s.AI.Generate("insights", buildPlatformPrompt(overview, topics, difficult))
	if err != nil {
		return nil, util.ErrGenerationFailed
	}

	return &model.InsightReport{
		Sections: analysis.Parse(raw, analysis.QuizInsightHeadings),
		Raw:      raw,
	}, nil
}

// UserCoaching 面向单个用户的学习建议
func (s *InsightService) UserCoaching(userID uint, username string) (*model.InsightReport, error) {
	report, err := s.Analytics.UserStats(userID)
	if err != nil {
		return nil, err
	}
	if !report.HasData {
		return nil, util.ErrNoAttempts
	}

	raw, err := s.AI.Generate("coaching", buildCoachingPrompt(username, report))
	if err != nil {
		return nil, util.ErrGenerationFailed
	}

	return &model.InsightReport{
		Sections: analysis.Parse(raw, analysis.UserCoachingHeadings),
		Raw:      raw,
	}, nil
}

// TopicGuidance 针对某个主题的学习指引
func (s *InsightService) TopicGuidance(topic string) (*model.InsightReport, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, util.ErrTopicRequired
	}

	var stat *quizstats.TopicStatistic
	topics, err := s.Analytics.TopicStats()
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if strings.EqualFold(topics[i].Topic, topic) {
			stat = &topics[i]
			break
		}
	}

	raw, err := s.AI.Generate("guidance", buildTopicGuidancePrompt(topic, stat))
	if err != nil {
		return nil, util.ErrGenerationFailed
	}

	return &model.InsightReport{
		Sections: analysis.Parse(raw, analysis.TopicGuidanceHeadings),
		Raw:      raw,
	}, nil
}
