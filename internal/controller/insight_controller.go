package controller

import (
	"errors"

	"quiz_ai_backend/internal/service"
	"quiz_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	InsightService *service.InsightService
	AuthService    *service.AuthService
}

func NewInsightController(insightService *service.InsightService, authService *service.AuthService) *InsightController {
	return &InsightController{InsightService: insightService, AuthService: authService}
}

// Platform godoc
// @Summary 平台AI分析
// @Description 对全平台统计生成结构化分析报告
// @Tags AI分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.InsightReport}
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/admin/stats/insights [get]
func (c *InsightController) Platform(ctx *gin.Context) {
	report, err := c.InsightService.PlatformInsights()
	if err != nil {
		if errors.Is(err, util.ErrGenerationFailed) {
			util.Error(ctx, 502, "AI生成失败，请稍后重试")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}

// Coaching godoc
// @Summary 个人学习建议
// @Description 基于当前用户的测验历史生成学习建议
// @Tags AI分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.InsightReport}
// @Failure 404 {object} util.Response "暂无测验记录"
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/stats/me/coaching [get]
func (c *InsightController) Coaching(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Error(ctx, 401, "未登录或会话已过期")
		return
	}

	report, err := c.InsightService.UserCoaching(user.ID, user.Name)
	if err != nil {
		if errors.Is(err, util.ErrNoAttempts) {
			util.Error(ctx, 404, "暂无测验记录，先完成一次测验吧")
		} else if errors.Is(err, util.ErrGenerationFailed) {
			util.Error(ctx, 502, "AI生成失败，请稍后重试")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}

// TopicGuidance godoc
// @Summary 主题学习指引
// @Description 针对指定主题生成学习指引
// @Tags AI分析
// @Produce  json
// @Security BearerAuth
// @Param   topic path string true "主题"
// @Success 200 {object} util.Response{data=model.InsightReport}
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/stats/topics/{topic}/guidance [get]
func (c *InsightController) TopicGuidance(ctx *gin.Context) {
	topic := ctx.Param("topic")

	report, err := c.InsightService.TopicGuidance(topic)
	if err != nil {
		if errors.Is(err, util.ErrTopicRequired) {
			util.BadRequest(ctx, err.Error())
		} else if errors.Is(err, util.ErrGenerationFailed) {
			util.Error(ctx, 502, "AI生成失败，请稍后重试")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
