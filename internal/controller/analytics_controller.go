package controller

import (
	"strconv"

	"quiz_ai_backend/internal/service"
	"quiz_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// Overview godoc
// @Summary 平台概览
// @Description 全平台的测验次数、用户数、平均分和活跃主题数
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=quizstats.Overview}
// @Router /api/admin/stats/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	overview, err := c.AnalyticsService.Overview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// Daily godoc
// @Summary 每日统计
// @Description 最近N天每天的测验次数和平均分
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Param   days query int false "时间窗口天数，默认30"
// @Success 200 {object} util.Response{data=[]quizstats.DailyStat}
// @Router /api/admin/stats/daily [get]
func (c *AnalyticsController) Daily(ctx *gin.Context) {
	days, err := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		util.BadRequest(ctx, "days参数必须为正整数")
		return
	}

	stats, err := c.AnalyticsService.DailyStats(days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Topics godoc
// @Summary 主题统计
// @Description 各主题的测验次数和平均分
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]quizstats.TopicStatistic}
// @Router /api/admin/stats/topics [get]
func (c *AnalyticsController) Topics(ctx *gin.Context) {
	stats, err := c.AnalyticsService.TopicStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Difficult godoc
// @Summary 难题主题榜
// @Description 平均分最低的主题，样本过少的主题不参与排名
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "数量上限，默认5"
// @Success 200 {object} util.Response{data=[]quizstats.TopicStatistic}
// @Router /api/admin/stats/difficult [get]
func (c *AnalyticsController) Difficult(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))

	stats, err := c.AnalyticsService.DifficultTopics(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Popular godoc
// @Summary 热门主题榜
// @Description 测验次数最多的主题
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "数量上限，默认5"
// @Success 200 {object} util.Response{data=[]quizstats.TopicStatistic}
// @Router /api/admin/stats/popular [get]
func (c *AnalyticsController) Popular(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))

	stats, err := c.AnalyticsService.PopularTopics(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Durations godoc
// @Summary 主题作答时长
// @Description 各主题的平均作答时长（秒），异常时长已剔除
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]quizstats.TopicDuration}
// @Router /api/admin/stats/durations [get]
func (c *AnalyticsController) Durations(ctx *gin.Context) {
	stats, err := c.AnalyticsService.TopicDurations()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// MyStats godoc
// @Summary 个人统计
// @Description 当前用户的汇总统计、成绩趋势和作答速度相关性
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserStatsReport}
// @Router /api/stats/me [get]
func (c *AnalyticsController) MyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.AnalyticsService.UserStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
