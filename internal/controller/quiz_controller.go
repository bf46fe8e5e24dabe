package controller

import (
	"errors"

	"quiz_ai_backend/internal/service"
	"quiz_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	AuthService *service.AuthService
}

func NewQuizController(quizService *service.QuizService, authService *service.AuthService) *QuizController {
	return &QuizController{QuizService: quizService, AuthService: authService}
}

// StartQuizRequest 开始测验请求
// swagger:model StartQuizRequest
type StartQuizRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}

// Start godoc
// @Summary 开始测验
// @Description 按主题抽题并创建会话，正确答案不会出现在响应中
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartQuizRequest true "测验参数"
// @Success 200 {object} util.Response{data=model.QuizView}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "该主题暂无题目"
// @Router /api/quiz/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	var req StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.QuizService.StartQuiz(claims.UserID, req.Topic, req.Count)
	if err != nil {
		if errors.Is(err, util.ErrNoQuestions) {
			util.Error(ctx, 404, "该主题暂无题目")
		} else if errors.Is(err, util.ErrTopicRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// SubmitQuizRequest 提交答案请求。键为题目ID，值为所选选项字母。
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交测验
// @Description 对当前会话判分并归档，未作答的题按答错处理
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitQuizRequest true "作答内容"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "没有进行中的测验"
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Error(ctx, 401, "未登录或会话已过期")
		return
	}

	result, err := c.QuizService.SubmitQuiz(user.ID, user.Name, req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveQuiz) {
			util.Error(ctx, 409, "没有进行中的测验")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// History godoc
// @Summary 测验历史
// @Description 当前用户的全部测验记录，按完成时间倒序
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quiz/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.QuizService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// RecordAnswerRequest 单题作答请求
// swagger:model RecordAnswerRequest
type RecordAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Selected   string `json:"selected" binding:"required"`
}

// Answer godoc
// @Summary 记录单题作答
// @Description 把一道题的作答存入当前会话，提交时可不再重传
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RecordAnswerRequest true "作答内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不在当前会话中"
// @Failure 409 {object} util.Response "没有进行中的测验"
// @Router /api/quiz/answer [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	var req RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.QuizService.RecordAnswer(claims.UserID, req.QuestionID, req.Selected); err != nil {
		if errors.Is(err, util.ErrNoActiveQuiz) {
			util.Error(ctx, 409, "没有进行中的测验")
		} else if errors.Is(err, util.ErrQuestionNotFound) {
			util.Error(ctx, 404, "题目不在当前会话中")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"recorded": req.QuestionID})
}

// ExplainRequest 题目讲解请求
// swagger:model ExplainRequest
type ExplainRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Selected   string `json:"selected"`
}

// Explain godoc
// @Summary 题目讲解
// @Description 让AI解释指定题目的正确答案，附带用户所选答案时一并点评
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ExplainRequest true "讲解请求"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/quiz/explanation [post]
func (c *QuizController) Explain(ctx *gin.Context) {
	var req ExplainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	text, err := c.QuizService.ExplainQuestion(req.QuestionID, req.Selected)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.Error(ctx, 404, "题目不存在")
		} else {
			util.Error(ctx, 502, "AI生成失败，请稍后重试")
		}
		return
	}
	util.Success(ctx, gin.H{"explanation": text})
}
