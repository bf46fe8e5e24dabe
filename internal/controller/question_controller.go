package controller

import (
	"errors"
	"strconv"

	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/internal/service"
	"quiz_ai_backend/internal/util"
	"quiz_ai_backend/pkg/mcqparse"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GenerateRequest 生成题目请求
// swagger:model GenerateRequest
type GenerateRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}

// Generate godoc
// @Summary AI生成题目
// @Description 按主题生成多选题，返回解析后的预览，不直接入库
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateRequest true "生成参数"
// @Success 200 {object} util.Response{data=object} "生成成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/admin/questions/generate [post]
func (c *QuestionController) Generate(ctx *gin.Context) {
	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	parsed, err := c.QuestionService.GenerateQuestions(req.Topic, req.Count)
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

	util.Success(ctx, gin.H{
		"topic":     req.Topic,
		"questions": parsed,
	})
}

// SaveRequest 保存题目请求
// swagger:model SaveRequest
type SaveRequest struct {
	Topic     string             `json:"topic" binding:"required"`
	Questions []SaveQuestionItem `json:"questions" binding:"required,min=1,dive"`
}

type SaveQuestionItem struct {
	Question      string           `json:"question" binding:"required"`
	Options       []SaveOptionItem `json:"options" binding:"required,min=2,dive"`
	CorrectOption string           `json:"correctOption" binding:"required"`
}

type SaveOptionItem struct {
	Letter string `json:"letter" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// Save godoc
// @Summary 保存题目
// @Description 把确认后的题目批量写入题库
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SaveRequest true "题目列表"
// @Success 201 {object} util.Response{data=object} "保存成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/questions [post]
func (c *QuestionController) Save(ctx *gin.Context) {
	var req SaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	parsed := make([]mcqparse.ParsedQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		options := make([]mcqparse.Option, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, mcqparse.Option{Letter: o.Letter, Text: o.Text})
		}
		parsed = append(parsed, mcqparse.ParsedQuestion{
			Question:      q.Question,
			Options:       options,
			CorrectOption: q.CorrectOption,
		})
	}

	questions, err := c.QuestionService.SaveQuestions(req.Topic, parsed, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"saved": len(questions)})
}

// List godoc
// @Summary 按主题列出题目
// @Tags 题库管理
// @Produce  json
// @Security BearerAuth
// @Param   topic query string true "主题"
// @Param   limit query int false "数量上限"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	topic := ctx.Query("topic")
	if topic == "" {
		util.BadRequest(ctx, "topic参数不能为空")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	questions, err := c.QuestionService.ListByTopic(topic, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// UpdateRequest 更新题目请求
type UpdateRequest struct {
	Text          string           `json:"text"`
	Options       []SaveOptionItem `json:"options"`
	CorrectOption string           `json:"correctOption"`
}

// Update godoc
// @Summary 更新题目
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Param   body body UpdateRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}

	var req UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.GetQuestion(uint(id))
	if err != nil {
		util.Error(ctx, 404, "题目不存在")
		return
	}

	if req.Text != "" {
		question.Text = req.Text
	}
	if len(req.Options) > 0 {
		options := make([]model.QuestionOption, 0, len(req.Options))
		for _, o := range req.Options {
			options = append(options, model.QuestionOption{Letter: o.Letter, Text: o.Text})
		}
		question.Options = options
	}
	if req.CorrectOption != "" {
		question.CorrectOption = req.CorrectOption
	}

	if err := c.QuestionService.UpdateQuestion(question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Delete godoc
// @Summary 删除题目
// @Tags 题库管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}

	if err := c.QuestionService.DeleteQuestion(uint(id)); err != nil {
		util.Error(ctx, 404, "题目不存在")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// Topics godoc
// @Summary 可用主题列表
// @Description 返回题库中的全部主题，结果有短时缓存
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/topics [get]
func (c *QuestionController) Topics(ctx *gin.Context) {
	topics, err := c.QuestionService.Topics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}
