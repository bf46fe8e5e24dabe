// Package quizstats 在内存中的测验记录集合上计算描述性与推断性统计。
//
// 所有函数都是纯函数：不做I/O，不持有状态，重复计算结果一致，可被多个
// 调用方并发使用。样本不足时返回显式的空值/哨兵而不是错误。
package quizstats

import (
	"math"
	"sort"
	"time"
)

// Attempt 一次已完成的测验记录，由调用方从存储层取出后传入
type Attempt struct {
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	Topic           string    `json:"topic"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	ScorePercentage float64   `json:"score_percentage"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
}

// TopicStatistic 按主题聚合的统计
type TopicStatistic struct {
	Topic    string  `json:"topic"`
	Attempts int     `json:"attempts"`
	AvgScore float64 `json:"avgScore"`
}

// TopicScoreRange 单用户视角下的主题统计，带分数区间
type TopicScoreRange struct {
	Topic    string  `json:"topic"`
	Attempts int     `json:"attempts"`
	AvgScore float64 `json:"avgScore"`
	MinScore float64 `json:"minScore"`
	MaxScore float64 `json:"maxScore"`
}

// DailyStat 按自然日聚合的统计
type DailyStat struct {
	Date     string  `json:"date"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

// HourStat 按一天中的小时聚合
type HourStat struct {
	Hour     int     `json:"hour"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

// WeekdayStat 按星期几聚合，Day 使用 time.Weekday 的取值（周日为0）
type WeekdayStat struct {
	Day      int     `json:"day"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

// TopicDuration 主题平均作答时长
type TopicDuration struct {
	Topic       string  `json:"topic"`
	Count       int     `json:"count"`
	AvgDuration float64 `json:"avgDurationSeconds"`
}

// Overview 全局概览
type Overview struct {
	TotalAttempts int     `json:"totalAttempts"`
	UniqueUsers   int     `json:"uniqueUsers"`
	AvgScore      float64 `json:"avgScore"`
	ActiveTopics  int     `json:"activeTopics"`
}

// TrendLine 分数对次序做最小二乘拟合的结果
type TrendLine struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	Correlation float64 `json:"correlation"`
}

// UserSummary 单用户的全量统计汇总。HasData 为 false 时其余字段无意义。
// RecentTrend 需要至少2次记录，RollingTrend 需要至少5次，否则为 nil。
type UserSummary struct {
	HasData         bool              `json:"hasData"`
	TotalQuizzes    int               `json:"totalQuizzes"`
	TotalQuestions  int               `json:"totalQuestions"`
	CorrectAnswers  int               `json:"correctAnswers"`
	AvgScore        float64           `json:"avgScore"`
	RecentTrend     *float64          `json:"recentTrend"`
	RollingTrend    *float64          `json:"rollingTrend"`
	Topics          []TopicScoreRange `json:"topics"`
	BestTopic       *TopicScoreRange  `json:"bestTopic"`
	WorstTopic      *TopicScoreRange  `json:"worstTopic"`
	HourActivity    []HourStat        `json:"hourActivity"`
	DayActivity     []WeekdayStat     `json:"dayActivity"`
	AvgDuration     float64           `json:"avgDurationSeconds"`
	AvgQuestionRate float64           `json:"avgQuestionsPerMinute"`
}

// TopicBreakdown 按主题分组计算次数与平均分，按主题名排序。
// 没有记录的主题不出现在结果中。
func TopicBreakdown(attempts []Attempt) []TopicStatistic {
	groups := map[string][]float64{}
	for _, a := range attempts {
		groups[a.Topic] = append(groups[a.Topic], a.ScorePercentage)
	}

	stats := make([]TopicStatistic, 0, len(groups))
	for topic, scores := range groups {
		stats = append(stats, TopicStatistic{
			Topic:    topic,
			Attempts: len(scores),
			AvgScore: mean(scores),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Topic < stats[j].Topic })
	return stats
}

// DailyBreakdown 统计 now 之前 windowDays 天内按结束日期分组的数据，
// 按日期升序返回。
func DailyBreakdown(attempts []Attempt, windowDays int, now time.Time) []DailyStat {
	cutoff := now.AddDate(0, 0, -windowDays)

	groups := map[string][]float64{}
	for _, a := range attempts {
		if a.EndTime.Before(cutoff) {
			continue
		}
		day := a.EndTime.Format("2006-01-02")
		groups[day] = append(groups[day], a.ScorePercentage)
	}

	stats := make([]DailyStat, 0, len(groups))
	for day, scores := range groups {
		stats = append(stats, DailyStat{Date: day, Count: len(scores), AvgScore: mean(scores)})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

// DifficultTopics 返回至少有 minAttempts 次记录的主题中平均分最低的
// limit 个，升序排列。样本太少的主题被过滤，避免单次记录误导难度判断。
func DifficultTopics(attempts []Attempt, minAttempts, limit int) []TopicStatistic {
	var stats []TopicStatistic
	for _, s := range TopicBreakdown(attempts) {
		if s.Attempts >= minAttempts {
			stats = append(stats, s)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].AvgScore < stats[j].AvgScore })
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// PopularTopics 按记录数降序返回前 limit 个主题。
func PopularTopics(attempts []Attempt, limit int) []TopicStatistic {
	stats := TopicBreakdown(attempts)
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Attempts > stats[j].Attempts })
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// TopicDurations 按主题统计平均作答时长（秒），降序。时长非正的记录
// 视为缺失，不计入均值。
func TopicDurations(attempts []Attempt) []TopicDuration {
	groups := map[string][]float64{}
	for _, a := range attempts {
		d := a.EndTime.Sub(a.StartTime).Seconds()
		if d <= 0 {
			continue
		}
		groups[a.Topic] = append(groups[a.Topic], d)
	}

	stats := make([]TopicDuration, 0, len(groups))
	for topic, durations := range groups {
		stats = append(stats, TopicDuration{
			Topic:       topic,
			Count:       len(durations),
			AvgDuration: mean(durations),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].AvgDuration > stats[j].AvgDuration })
	return stats
}

// ComputeOverview 全局概览：总次数、独立用户数、全局平均分、活跃主题数。
func ComputeOverview(attempts []Attempt) Overview {
	users := map[uint]struct{}{}
	topics := map[string]struct{}{}
	scores := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		users[a.UserID] = struct{}{}
		topics[a.Topic] = struct{}{}
		scores = append(scores, a.ScorePercentage)
	}
	return Overview{
		TotalAttempts: len(attempts),
		UniqueUsers:   len(users),
		AvgScore:      mean(scores),
		ActiveTopics:  len(topics),
	}
}

// ComputeUserSummary 计算单个用户的全量统计。记录为空时返回
// HasData=false 的哨兵。
func ComputeUserSummary(attempts []Attempt) UserSummary {
	if len(attempts) == 0 {
		return UserSummary{HasData: false}
	}

	sorted := make([]Attempt, len(attempts))
	copy(sorted, attempts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EndTime.Before(sorted[j].EndTime) })

	summary := UserSummary{HasData: true, TotalQuizzes: len(sorted)}

	scores := make([]float64, len(sorted))
	for i, a := range sorted {
		summary.TotalQuestions += a.TotalQuestions
		summary.CorrectAnswers += a.Score
		scores[i] = a.ScorePercentage
	}
	summary.AvgScore = mean(scores)

	if len(sorted) >= 2 {
		trend := scores[len(scores)-1] - scores[0]
		summary.RecentTrend = &trend
	}
	if len(sorted) >= 5 {
		ma := rollingMean(scores, 3)
		rolling := ma[len(ma)-1] - ma[2]
		summary.RollingTrend = &rolling
	}

	summary.Topics = topicRanges(sorted)
	if len(summary.Topics) > 0 {
		best, worst := summary.Topics[0], summary.Topics[0]
		for _, t := range summary.Topics[1:] {
			if t.AvgScore > best.AvgScore {
				best = t
			}
			if t.AvgScore < worst.AvgScore {
				worst = t
			}
		}
		summary.BestTopic = &best
		summary.WorstTopic = &worst
	}

	summary.HourActivity = hourActivity(sorted)
	summary.DayActivity = dayActivity(sorted)

	var durations, rates []float64
	for _, a := range sorted {
		d := a.EndTime.Sub(a.StartTime).Seconds()
		if d <= 0 {
			// 缺失或异常的时长不计入均值，避免把平均值拉向0
			continue
		}
		durations = append(durations, d)
		rates = append(rates, float64(a.TotalQuestions)/(d/60))
	}
	summary.AvgDuration = mean(durations)
	summary.AvgQuestionRate = mean(rates)

	return summary
}

// LinearTrend 对分数序列按次序（0,1,2,...）做最小二乘拟合。
// 样本少于2个时返回 nil。分数方差为0时相关系数取0。
func LinearTrend(scores []float64) *TrendLine {
	n := len(scores)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}

	fn := float64(n)
	denomX := fn*sumXX - sumX*sumX
	slope := (fn*sumXY - sumX*sumY) / denomX
	intercept := (sumY - slope*sumX) / fn

	denomY := fn*sumYY - sumY*sumY
	correlation := 0.0
	if denomY > 0 {
		correlation = (fn*sumXY - sumX*sumY) / math.Sqrt(denomX*denomY)
	}

	return &TrendLine{Slope: slope, Intercept: intercept, Correlation: correlation}
}

// ClassifyTrend 将拟合结果归类为 improving / declining / stable。
// |r| <= 0.3 时认为没有有意义的趋势。
func ClassifyTrend(t *TrendLine) string {
	if t == nil || math.Abs(t.Correlation) <= 0.3 {
		return "stable"
	}
	if t.Slope > 0 {
		return "improving"
	}
	return "declining"
}

// SpeedCorrelation 计算作答速度（题/分钟）与得分的皮尔逊相关系数。
// 有效样本少于4个或任一序列方差为0时返回 nil。
func SpeedCorrelation(attempts []Attempt) *float64 {
	var rates, scores []float64
	for _, a := range attempts {
		d := a.EndTime.Sub(a.StartTime).Seconds()
		if d <= 0 {
			continue
		}
		rates = append(rates, float64(a.TotalQuestions)/(d/60))
		scores = append(scores, a.ScorePercentage)
	}
	if len(rates) < 4 {
		return nil
	}

	r, ok := pearson(rates, scores)
	if !ok {
		return nil
	}
	return &r
}

func topicRanges(attempts []Attempt) []TopicScoreRange {
	groups := map[string][]float64{}
	for _, a := range attempts {
		groups[a.Topic] = append(groups[a.Topic], a.ScorePercentage)
	}

	stats := make([]TopicScoreRange, 0, len(groups))
	for topic, scores := range groups {
		min, max := scores[0], scores[0]
		for _, s := range scores[1:] {
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
		}
		stats = append(stats, TopicScoreRange{
			Topic:    topic,
			Attempts: len(scores),
			AvgScore: mean(scores),
			MinScore: min,
			MaxScore: max,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Topic < stats[j].Topic })
	return stats
}

func hourActivity(attempts []Attempt) []HourStat {
	groups := map[int][]float64{}
	for _, a := range attempts {
		h := a.StartTime.Hour()
		groups[h] = append(groups[h], a.ScorePercentage)
	}

	stats := make([]HourStat, 0, len(groups))
	for h, scores := range groups {
		stats = append(stats, HourStat{Hour: h, Count: len(scores), AvgScore: mean(scores)})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Hour < stats[j].Hour })
	return stats
}

func dayActivity(attempts []Attempt) []WeekdayStat {
	groups := map[time.Weekday][]float64{}
	for _, a := range attempts {
		d := a.StartTime.Weekday()
		groups[d] = append(groups[d], a.ScorePercentage)
	}

	stats := make([]WeekdayStat, 0, len(groups))
	for d, scores := range groups {
		stats = append(stats, WeekdayStat{
			Day:      int(d),
			Name:     d.String(),
			Count:    len(scores),
			AvgScore: mean(scores),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Day < stats[j].Day })
	return stats
}

// rollingMean 计算窗口为 window 的尾随移动平均，窗口不足时用已有元素
// （等价于 pandas rolling(min_periods=1)）。
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		out[i] = mean(values[start : i+1])
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}

	denom := (n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY)
	if denom <= 0 {
		return 0, false
	}
	return (n*sumXY - sumX*sumY) / math.Sqrt(denom), true
}
