package analysis

import (
	"fmt"
	"reflect"
	"testing"
)

func TestParseExplicitHeadings(t *testing.T) {
	raw := `
Key Insights
Scores cluster around 70%.
Most activity happens on weekends.

Recommendations
Add more intermediate questions.

Topics to Focus On
Chemistry
History
`

	got := Parse(raw, QuizInsightHeadings)

	want := Sections{
		"key_insights":    {"Scores cluster around 70%.", "Most activity happens on weekends."},
		"recommendations": {"Add more intermediate questions."},
		"focus_topics":    {"Chemistry", "History"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseNumberedFallback(t *testing.T) {
	raw := `1. The quiz pool is heavily skewed toward easy topics.
Average scores confirm this.
2. Add harder questions for advanced users.
3. Chemistry
Physics`

	got := Parse(raw, QuizInsightHeadings)

	if len(got["key_insights"]) != 2 {
		t.Errorf("key_insights = %v", got["key_insights"])
	}
	if len(got["recommendations"]) != 1 {
		t.Errorf("recommendations = %v", got["recommendations"])
	}
	if len(got["focus_topics"]) != 2 {
		t.Errorf("focus_topics = %v", got["focus_topics"])
	}
	// 位置约定命中的编号行保留为内容
	if got["key_insights"][0] != "1. The quiz pool is heavily skewed toward easy topics." {
		t.Errorf("numbered line dropped: %v", got["key_insights"])
	}
}

func TestParseMixedConventions(t *testing.T) {
	// 明确标题与编号小节混用；小节内部的编号列表不触发切换
	raw := `Topic Overview
Algebra underpins most of later mathematics.
2. Common Challenges
Students confuse variables and constants.
Study Strategies
1. Practice daily.
2. Review mistakes.
3. Teach someone else.`

	got := Parse(raw, TopicGuidanceHeadings)

	if len(got["overview"]) != 1 {
		t.Errorf("overview = %v", got["overview"])
	}
	if len(got["challenges"]) == 0 {
		t.Errorf("challenges missing: %v", got)
	}
	// strategies 小节里的编号列表应整体归属于 strategies
	if len(got["strategies"]) != 3 {
		t.Errorf("strategies = %v", got["strategies"])
	}
}

func TestParseHeadingLineExcluded(t *testing.T) {
	raw := "Strengths\nGreat recall under time pressure.\n"

	got := Parse(raw, UserCoachingHeadings)
	for _, line := range got["strengths"] {
		if line == "Strengths" {
			t.Error("heading line leaked into section content")
		}
	}
}

func TestParseDropsLeadingUnattributedLines(t *testing.T) {
	raw := "Here is your analysis, as requested.\n\nKey Insights\nOne insight.\n"

	got := Parse(raw, QuizInsightHeadings)
	if len(got) != 1 || len(got["key_insights"]) != 1 {
		t.Errorf("got %v", got)
	}
}

func TestParseEmptyAndUnmatchedInput(t *testing.T) {
	if got := Parse("", QuizInsightHeadings); len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}
	if got := Parse("just prose\nwith no structure", QuizInsightHeadings); len(got) != 0 {
		t.Errorf("unmatched input: got %v", got)
	}
}

func TestParseOmitsEmptySections(t *testing.T) {
	raw := "Key Insights\n\nRecommendations\nOnly this section has content.\n"

	got := Parse(raw, QuizInsightHeadings)
	if _, ok := got["key_insights"]; ok {
		t.Error("empty section should be omitted")
	}
	if len(got["recommendations"]) != 1 {
		t.Errorf("recommendations = %v", got["recommendations"])
	}
}

func TestParseAllVocabularies(t *testing.T) {
	tables := []struct {
		name  string
		table HeadingTable
	}{
		{"quiz insights", QuizInsightHeadings},
		{"user coaching", UserCoachingHeadings},
		{"topic guidance", TopicGuidanceHeadings},
	}

	for _, tc := range tables {
		t.Run(tc.name, func(t *testing.T) {
			// 正文行不能含标题关键字，否则会被当作新小节
			raw := ""
			for i, h := range tc.table {
				raw += h.Match + "\n" + fmt.Sprintf("content %d", i) + "\n"
			}

			got := Parse(raw, tc.table)
			if len(got) != len(tc.table) {
				t.Fatalf("got %d sections, want %d: %v", len(got), len(tc.table), got)
			}
			for _, h := range tc.table {
				if len(got[h.Key]) != 1 {
					t.Errorf("section %s = %v", h.Key, got[h.Key])
				}
			}
		})
	}
}
