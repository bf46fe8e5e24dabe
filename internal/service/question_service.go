package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/internal/repository"
	"quiz_ai_backend/internal/util"
	"quiz_ai_backend/pkg/logger"
	"quiz_ai_backend/pkg/mcqparse"
	"quiz_ai_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const topicCacheKey = "quizai:topics"
const topicCacheTTL = 60 * time.Second

// QuestionService 负责题目的AI生成、入库和维护。
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	AI           *AIService
	Redis        *redis.Client
}

func NewQuestionService(questionRepo *repository.QuestionRepository, ai *AIService, rdb *redis.Client) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		AI:           ai,
		Redis:        rdb,
	}
}

func buildGenerationPrompt(topic string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple-choice questions about %s.\n\n", count, topic)
	b.WriteString("Format each question exactly like this:\n")
	b.WriteString("1. Question text here?\n")
	b.WriteString("a) First option\n")
	b.WriteString("b) Second option\n")
	b.WriteString("c) Third option\n")
	b.WriteString("d) *Correct option (mark the correct one with an asterisk)\n\n")
	b.WriteString("Number the questions sequentially. Do not add explanations or any other text.")
	return b.String()
}

// GenerateQuestions 调用AI生成题目文本并解析成结构化结果。
// 解析失败的题块会被整块丢弃，因此返回数量可能少于请求数量。
func (s *QuestionService) GenerateQuestions(topic string, count int) ([]mcqparse.ParsedQuestion, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, util.ErrTopicRequired
	}
	if count <= 0 {
		count = 5
	}

	raw, err := s.AI.Generate("questions", buildGenerationPrompt(topic, count))
	if err != nil {
		logger.Log.Error("question generation failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return nil, util.ErrGenerationFailed
	}

	parsed := mcqparse.Parse(raw)
	monitoring.ParsedQuestionCounter.WithLabelValues("parsed").Add(float64(len(parsed)))
	if len(parsed) < count {
		monitoring.ParsedQuestionCounter.WithLabelValues("dropped").Add(float64(count - len(parsed)))
	}
	if len(parsed) == 0 {
		logger.Log.Warn("generated text produced no parseable questions",
			zap.String("topic", topic),
			zap.Int("raw_length", len(raw)),
		)
		return nil, util.ErrGenerationFailed
	}

	return parsed, nil
}

// SaveQuestions 把解析结果持久化为题库记录并使主题缓存失效。
func (s *QuestionService) SaveQuestions(topic string, parsed []mcqparse.ParsedQuestion, createdBy uint) ([]model.Question, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, util.ErrTopicRequired
	}
	if len(parsed) == 0 {
		return nil, util.ErrNoQuestions
	}

	questions := make([]model.Question, 0, len(parsed))
	for _, p := range parsed {
		options := make([]model.QuestionOption, 0, len(p.Options))
		for _, o := range p.Options {
			options = append(options, model.QuestionOption{Letter: o.Letter, Text: o.Text})
		}
		questions = append(questions, model.Question{
			Topic:         topic,
			Text:          p.Question,
			Options:       options,
			CorrectOption: p.CorrectOption,
			CreatedBy:     createdBy,
		})
	}

	if err := s.QuestionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	s.invalidateTopicCache()
	return questions, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionService) ListByTopic(topic string, limit int) ([]model.Question, error) {
	return s.QuestionRepo.FindByTopic(topic, limit)
}

func (s *QuestionService) UpdateQuestion(question *model.Question) error {
	if _, err := s.QuestionRepo.FindByID(question.ID); err != nil {
		return util.ErrQuestionNotFound
	}
	if err := s.QuestionRepo.Update(question); err != nil {
		return err
	}
	s.invalidateTopicCache()
	return nil
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	if err := s.QuestionRepo.Delete(id); err != nil {
		return util.ErrQuestionNotFound
	}
	s.invalidateTopicCache()
	return nil
}

// Topics 返回题库中的全部主题，带60秒的Redis缓存。
func (s *QuestionService) Topics(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, topicCacheKey).Result()
		if err == nil {
			var topics []string
			if json.Unmarshal([]byte(cached), &topics) == nil {
				return topics, nil
			}
		}
	}

	topics, err := s.QuestionRepo.DistinctTopics()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(topics); err == nil {
			s.Redis.Set(ctx, topicCacheKey, data, topicCacheTTL)
		}
	}
	return topics, nil
}

func (s *QuestionService) invalidateTopicCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), topicCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate topic cache", zap.Error(err))
	}
}
