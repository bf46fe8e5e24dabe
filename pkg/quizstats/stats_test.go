package quizstats

import (
	"math"
	"testing"
	"time"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// makeAttempt 构造一条10题、耗时5分钟的记录
func makeAttempt(user uint, topic string, pct float64, end time.Time) Attempt {
	return Attempt{
		UserID:          user,
		Topic:           topic,
		Score:           int(pct / 10),
		TotalQuestions:  10,
		ScorePercentage: pct,
		StartTime:       end.Add(-5 * time.Minute),
		EndTime:         end,
	}
}

func TestTopicBreakdown(t *testing.T) {
	attempts := []Attempt{
		makeAttempt(1, "A", 80, base),
		makeAttempt(1, "A", 60, base.Add(time.Hour)),
		makeAttempt(2, "B", 100, base.Add(2*time.Hour)),
	}

	stats := TopicBreakdown(attempts)
	if len(stats) != 2 {
		t.Fatalf("got %d topics, want 2", len(stats))
	}
	if stats[0].Topic != "A" || stats[0].Attempts != 2 || stats[0].AvgScore != 70.0 {
		t.Errorf("topic A = %+v", stats[0])
	}
	if stats[1].Topic != "B" || stats[1].Attempts != 1 || stats[1].AvgScore != 100.0 {
		t.Errorf("topic B = %+v", stats[1])
	}
}

func TestTopicBreakdownEmpty(t *testing.T) {
	if got := TopicBreakdown(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestDailyBreakdown(t *testing.T) {
	now := base.AddDate(0, 0, 10)
	attempts := []Attempt{
		makeAttempt(1, "A", 50, base),                   // 10天前，窗口内
		makeAttempt(1, "A", 70, base),                   // 同一天
		makeAttempt(1, "A", 90, base.AddDate(0, 0, 5)),  // 5天前
		makeAttempt(1, "A", 10, base.AddDate(0, 0, -60)), // 窗口外
	}

	stats := DailyBreakdown(attempts, 30, now)
	if len(stats) != 2 {
		t.Fatalf("got %d days, want 2: %+v", len(stats), stats)
	}
	if stats[0].Date != "2025-03-10" || stats[0].Count != 2 || stats[0].AvgScore != 60.0 {
		t.Errorf("first day = %+v", stats[0])
	}
	if stats[1].Date != "2025-03-15" || stats[1].Count != 1 {
		t.Errorf("second day = %+v", stats[1])
	}
	if !(stats[0].Date < stats[1].Date) {
		t.Error("days not sorted ascending")
	}
}

func TestDifficultTopicsFiltersSmallSamples(t *testing.T) {
	var attempts []Attempt
	// hard: 5次20分, medium: 3次50分, rare: 1次0分
	for i := 0; i < 5; i++ {
		attempts = append(attempts, makeAttempt(1, "hard", 20, base.Add(time.Duration(i)*time.Hour)))
	}
	for i := 0; i < 3; i++ {
		attempts = append(attempts, makeAttempt(1, "medium", 50, base.Add(time.Duration(i)*time.Hour)))
	}
	attempts = append(attempts, makeAttempt(1, "rare", 0, base))

	stats := DifficultTopics(attempts, 3, 5)
	if len(stats) != 2 {
		t.Fatalf("got %d topics, want 2: %+v", len(stats), stats)
	}
	for _, s := range stats {
		if s.Topic == "rare" {
			t.Error("single-attempt topic should be excluded regardless of score")
		}
	}
	if stats[0].Topic != "hard" {
		t.Errorf("expected hardest topic first, got %+v", stats)
	}
}

func TestPopularTopics(t *testing.T) {
	attempts := []Attempt{
		makeAttempt(1, "A", 50, base),
		makeAttempt(1, "B", 50, base),
		makeAttempt(1, "B", 50, base),
	}
	stats := PopularTopics(attempts, 1)
	if len(stats) != 1 || stats[0].Topic != "B" {
		t.Errorf("got %+v", stats)
	}
}

func TestComputeOverview(t *testing.T) {
	attempts := []Attempt{
		makeAttempt(1, "A", 40, base),
		makeAttempt(2, "A", 60, base),
		makeAttempt(1, "B", 80, base),
	}
	overview := ComputeOverview(attempts)
	if overview.TotalAttempts != 3 || overview.UniqueUsers != 2 || overview.ActiveTopics != 2 {
		t.Errorf("overview = %+v", overview)
	}
	if overview.AvgScore != 60.0 {
		t.Errorf("avg = %v, want 60", overview.AvgScore)
	}
}

func TestUserSummaryNoData(t *testing.T) {
	summary := ComputeUserSummary(nil)
	if summary.HasData {
		t.Error("expected HasData=false for empty input")
	}
}

func TestUserSummaryTrendThresholds(t *testing.T) {
	mk := func(n int) []Attempt {
		var out []Attempt
		for i := 0; i < n; i++ {
			out = append(out, makeAttempt(1, "A", float64(50+i*10), base.Add(time.Duration(i)*time.Hour)))
		}
		return out
	}

	if s := ComputeUserSummary(mk(1)); s.RecentTrend != nil {
		t.Error("1 attempt: recent trend should be nil")
	}
	if s := ComputeUserSummary(mk(2)); s.RecentTrend == nil {
		t.Error("2 attempts: recent trend should be present")
	}
	if s := ComputeUserSummary(mk(4)); s.RollingTrend != nil {
		t.Error("4 attempts: rolling trend should be nil")
	}
	if s := ComputeUserSummary(mk(5)); s.RollingTrend == nil {
		t.Error("5 attempts: rolling trend should be present")
	}
}

func TestUserSummaryValues(t *testing.T) {
	// 升序分数 50..90，5条记录
	var attempts []Attempt
	for i := 0; i < 5; i++ {
		attempts = append(attempts, makeAttempt(1, "A", float64(50+i*10), base.Add(time.Duration(i)*time.Hour)))
	}

	s := ComputeUserSummary(attempts)
	if !s.HasData || s.TotalQuizzes != 5 || s.TotalQuestions != 50 {
		t.Errorf("summary = %+v", s)
	}
	if s.AvgScore != 70.0 {
		t.Errorf("avg = %v, want 70", s.AvgScore)
	}
	if *s.RecentTrend != 40.0 {
		t.Errorf("recent trend = %v, want 40", *s.RecentTrend)
	}
	// 窗口3的移动平均: ma[4]=(70+80+90)/3=80, ma[2]=(50+60+70)/3=60
	if math.Abs(*s.RollingTrend-20.0) > 1e-9 {
		t.Errorf("rolling trend = %v, want 20", *s.RollingTrend)
	}
	// 每条记录5分钟10题 → 2题/分钟
	if math.Abs(s.AvgQuestionRate-2.0) > 1e-9 {
		t.Errorf("question rate = %v, want 2", s.AvgQuestionRate)
	}
	if math.Abs(s.AvgDuration-300.0) > 1e-9 {
		t.Errorf("duration = %v, want 300", s.AvgDuration)
	}
}

func TestUserSummaryBestWorstTopics(t *testing.T) {
	attempts := []Attempt{
		makeAttempt(1, "strong", 90, base),
		makeAttempt(1, "strong", 95, base.Add(time.Hour)),
		makeAttempt(1, "weak", 30, base.Add(2*time.Hour)),
	}

	s := ComputeUserSummary(attempts)
	if s.BestTopic == nil || s.BestTopic.Topic != "strong" {
		t.Errorf("best topic = %+v", s.BestTopic)
	}
	if s.WorstTopic == nil || s.WorstTopic.Topic != "weak" {
		t.Errorf("worst topic = %+v", s.WorstTopic)
	}
	if s.BestTopic.MinScore != 90 || s.BestTopic.MaxScore != 95 {
		t.Errorf("score range = %+v", s.BestTopic)
	}
}

func TestUserSummaryExcludesZeroDurations(t *testing.T) {
	good := makeAttempt(1, "A", 80, base)
	broken := makeAttempt(1, "A", 80, base.Add(time.Hour))
	broken.StartTime = broken.EndTime // 时长为0，应被剔除而非按0计入

	s := ComputeUserSummary([]Attempt{good, broken})
	if math.Abs(s.AvgDuration-300.0) > 1e-9 {
		t.Errorf("duration = %v, want 300 (zero-duration attempt excluded)", s.AvgDuration)
	}
}

func TestLinearTrendIncreasing(t *testing.T) {
	trend := LinearTrend([]float64{50, 60, 70, 80, 90})
	if trend == nil {
		t.Fatal("expected trend for 5 points")
	}
	if trend.Slope <= 0 {
		t.Errorf("slope = %v, want > 0", trend.Slope)
	}
	if trend.Correlation <= 0.3 {
		t.Errorf("correlation = %v, want > 0.3", trend.Correlation)
	}
	if math.Abs(trend.Slope-10.0) > 1e-9 || math.Abs(trend.Intercept-50.0) > 1e-9 {
		t.Errorf("fit = %+v, want slope 10 intercept 50", trend)
	}
}

func TestLinearTrendEdges(t *testing.T) {
	if LinearTrend([]float64{42}) != nil {
		t.Error("single point should yield nil")
	}
	flat := LinearTrend([]float64{70, 70, 70})
	if flat == nil || flat.Correlation != 0 {
		t.Errorf("flat series: %+v, want correlation 0", flat)
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		trend *TrendLine
		want  string
	}{
		{nil, "stable"},
		{&TrendLine{Slope: 2, Correlation: 0.9}, "improving"},
		{&TrendLine{Slope: -2, Correlation: -0.9}, "declining"},
		{&TrendLine{Slope: 5, Correlation: 0.2}, "stable"},
		{&TrendLine{Slope: -5, Correlation: -0.3}, "stable"},
	}
	for _, tc := range cases {
		if got := ClassifyTrend(tc.trend); got != tc.want {
			t.Errorf("ClassifyTrend(%+v) = %q, want %q", tc.trend, got, tc.want)
		}
	}
}

func TestSpeedCorrelation(t *testing.T) {
	// 速度与得分正相关：答得越快得分越高
	var attempts []Attempt
	for i := 0; i < 5; i++ {
		a := makeAttempt(1, "A", float64(50+i*10), base.Add(time.Duration(i)*time.Hour))
		a.StartTime = a.EndTime.Add(-time.Duration(10-i) * time.Minute)
		attempts = append(attempts, a)
	}

	r := SpeedCorrelation(attempts)
	if r == nil {
		t.Fatal("expected correlation for 5 attempts")
	}
	if *r <= 0 {
		t.Errorf("correlation = %v, want > 0", *r)
	}
}

func TestSpeedCorrelationInsufficientSample(t *testing.T) {
	var attempts []Attempt
	for i := 0; i < 3; i++ {
		attempts = append(attempts, makeAttempt(1, "A", float64(50+i*10), base.Add(time.Duration(i)*time.Hour)))
	}
	if SpeedCorrelation(attempts) != nil {
		t.Error("fewer than 4 attempts should yield nil")
	}
}

func TestSpeedCorrelationZeroVariance(t *testing.T) {
	// 所有得分相同 → 方差为0 → nil
	var attempts []Attempt
	for i := 0; i < 5; i++ {
		a := makeAttempt(1, "A", 70, base.Add(time.Duration(i)*time.Hour))
		a.StartTime = a.EndTime.Add(-time.Duration(i+1) * time.Minute)
		attempts = append(attempts, a)
	}
	if SpeedCorrelation(attempts) != nil {
		t.Error("zero score variance should yield nil")
	}
}

func TestHourAndDayActivity(t *testing.T) {
	attempts := []Attempt{
		makeAttempt(1, "A", 60, time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)),  // 周一 9点开始
		makeAttempt(1, "A", 80, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)), // 周一 9点
		makeAttempt(1, "A", 40, time.Date(2025, 3, 15, 22, 10, 0, 0, time.UTC)), // 周六 22点
	}

	s := ComputeUserSummary(attempts)
	if len(s.HourActivity) != 2 {
		t.Fatalf("hour buckets = %+v", s.HourActivity)
	}
	if s.HourActivity[0].Hour != 9 || s.HourActivity[0].Count != 2 || s.HourActivity[0].AvgScore != 70.0 {
		t.Errorf("9am bucket = %+v", s.HourActivity[0])
	}
	if len(s.DayActivity) != 2 {
		t.Fatalf("day buckets = %+v", s.DayActivity)
	}
	if s.DayActivity[0].Name != "Monday" || s.DayActivity[0].Count != 2 {
		t.Errorf("monday bucket = %+v", s.DayActivity[0])
	}
}
