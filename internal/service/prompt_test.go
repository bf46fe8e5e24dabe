package service

import (
	"fmt"
	"strings"
	"testing"

	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/pkg/analysis"
	"quiz_ai_backend/pkg/mcqparse"
	"quiz_ai_backend/pkg/quizstats"
)

func TestGenerationPromptExampleIsParseable(t *testing.T) {
	// 提示词里给模型的格式示例本身必须能被解析器识别，
	// 否则模型照着示例输出也会被丢弃
	prompt := buildGenerationPrompt("Go concurrency", 3)

	example := `1. What does a buffered channel do?
a) Blocks every send
b) *Allows sends up to capacity without a receiver
c) Panics on send
d) Closes automatically`

	parsed := mcqparse.Parse(example)
	if len(parsed) != 1 {
		t.Fatalf("example format produced %d questions, want 1", len(parsed))
	}
	if parsed[0].CorrectOption != "b" {
		t.Errorf("got correct option %q, want %q", parsed[0].CorrectOption, "b")
	}

	if !strings.Contains(prompt, "3 multiple-choice questions") {
		t.Errorf("prompt does not mention requested count: %q", prompt)
	}
	if !strings.Contains(prompt, "Go concurrency") {
		t.Errorf("prompt does not mention topic: %q", prompt)
	}
}

// 模拟一个完全遵循提示词格式要求的模型响应
func responseFollowing(table analysis.HeadingTable) string {
	var b strings.Builder
	for i, h := range table {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h.Match)
		fmt.Fprintf(&b, "- bullet item %d\n", i+1)
	}
	return b.String()
}

func TestPromptHeadingsMatchSectionVocabularies(t *testing.T) {
	overview := &quizstats.Overview{TotalAttempts: 10, UniqueUsers: 3, AvgScore: 72.5, ActiveTopics: 2}
	topics := []quizstats.TopicStatistic{{Topic: "Go", Attempts: 6, AvgScore: 80}}

	report := &model.UserStatsReport{Trend: "improving"}
	report.TotalQuizzes = 4
	report.AvgScore = 75

	tests := []struct {
		name   string
		prompt string
		table  analysis.HeadingTable
	}{
		{"platform insights", buildPlatformPrompt(overview, topics, nil), analysis.QuizInsightHeadings},
		{"user coaching", buildCoachingPrompt("alice", report), analysis.UserCoachingHeadings},
		{"topic guidance", buildTopicGuidancePrompt("Go", &topics[0]), analysis.TopicGuidanceHeadings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 提示词必须把词表里的每个小节名都要求出来
			lower := strings.ToLower(tt.prompt)
			for _, h := range tt.table {
				if !strings.Contains(lower, h.Match) {
					t.Errorf("prompt does not request section %q", h.Match)
				}
			}

			// 照要求输出的响应必须能切分出全部小节
			sections := analysis.Parse(responseFollowing(tt.table), tt.table)
			for _, h := range tt.table {
				if len(sections[h.Key]) == 0 {
					t.Errorf("section %q not recovered from well-formed response", h.Key)
				}
			}
		})
	}
}

func TestCoachingPromptIncludesUserContext(t *testing.T) {
	best := quizstats.TopicScoreRange{Topic: "Networking", AvgScore: 91}
	worst := quizstats.TopicScoreRange{Topic: "Databases", AvgScore: 42}

	report := &model.UserStatsReport{Trend: "declining"}
	report.TotalQuizzes = 7
	report.BestTopic = &best
	report.WorstTopic = &worst

	prompt := buildCoachingPrompt("bob", report)

	for _, want := range []string{"bob", "Networking", "Databases", "declining"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
