package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/internal/repository"
	"quiz_ai_backend/internal/util"
	"quiz_ai_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizService 管理测验会话的生命周期：开始、提交判分、历史查询。
type QuizService struct {
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	AI           *AIService
}

func NewQuizService(questionRepo *repository.QuestionRepository, attemptRepo *repository.AttemptRepository, ai *AIService) *QuizService {
	return &QuizService{
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		AI:           ai,
	}
}

// StartQuiz 按主题抽题并为该用户建立新会话，旧会话被覆盖。
func (s *QuizService) StartQuiz(userID uint, topic string, count int) (*model.QuizView, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, util.ErrTopicRequired
	}
	if count <= 0 {
		count = 5
	}

	questions, err := s.QuestionRepo.FindByTopic(topic, 0)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if count < len(questions) {
		questions = questions[:count]
	}

	startTime := time.Now()
	ids := make([]uint, 0, len(questions))
	views := make([]model.QuestionView, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
		views = append(views, q.View())
	}

	session := &model.QuizSession{
		UserID:      userID,
		Topic:       topic,
		QuestionIDs: ids,
		Answers:     map[uint]string{},
		StartTime:   startTime,
	}
	if err := s.AttemptRepo.SaveSession(session); err != nil {
		return nil, err
	}

	return &model.QuizView{
		Topic:     topic,
		Questions: views,
		StartTime: startTime.Format(time.RFC3339),
	}, nil
}

// RecordAnswer 把单题作答写入会话，随交随存，提交时可以不再重传全部答案。
func (s *QuizService) RecordAnswer(userID, questionID uint, selected string) error {
	session, err := s.AttemptRepo.GetSession(userID)
	if err != nil {
		return util.ErrNoActiveQuiz
	}

	inSession := false
	for _, id := range session.QuestionIDs {
		if id == questionID {
			inSession = true
			break
		}
	}
	if !inSession {
		return util.ErrQuestionNotFound
	}

	if session.Answers == nil {
		session.Answers = map[uint]string{}
	}
	session.Answers[questionID] = strings.ToLower(strings.TrimSpace(selected))
	return s.AttemptRepo.SaveSession(session)
}

// SubmitQuiz 对当前会话判分，落库一条测验记录并结束会话。
// 请求里的答案覆盖会话中已记录的答案，未作答的题按答错处理。
func (s *QuizService) SubmitQuiz(userID uint, username string, answers map[uint]string) (*model.QuizResult, error) {
	session, err := s.AttemptRepo.GetSession(userID)
	if err != nil {
		return nil, util.ErrNoActiveQuiz
	}

	questions, err := s.QuestionRepo.FindByIDs(session.QuestionIDs)
	if err != nil {
		return nil, err
	}

	merged := make(map[uint]string, len(session.Answers)+len(answers))
	for id, sel := range session.Answers {
		merged[id] = sel
	}
	for id, sel := range answers {
		merged[id] = sel
	}
	answers = merged

	score := 0
	items := make([]model.QuizResultItem, 0, len(questions))
	for _, q := range questions {
		selected := strings.ToLower(strings.TrimSpace(answers[q.ID]))
		correct := selected != "" && selected == strings.ToLower(q.CorrectOption)
		if correct {
			score++
		}
		items = append(items, model.QuizResultItem{
			QuestionID:    q.ID,
			Selected:      selected,
			CorrectOption: q.CorrectOption,
			Correct:       correct,
		})
	}

	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	attempt := &model.QuizAttempt{
		UserID:          userID,
		Username:        username,
		Topic:           session.Topic,
		Score:           score,
		TotalQuestions:  total,
		ScorePercentage: percentage,
		StartTime:       session.StartTime,
		EndTime:         time.Now(),
		Answers:         answers,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	if err := s.AttemptRepo.DeleteSession(userID); err != nil {
		logger.Log.Warn("failed to clear quiz session",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}

	return &model.QuizResult{
		AttemptID:       attempt.ID,
		Score:           score,
		TotalQuestions:  total,
		ScorePercentage: percentage,
		Items:           items,
	}, nil
}

func (s *QuizService) History(userID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.FindByUser(userID)
}

// ExplainQuestion 让AI解释某道题的正确答案。selected 非空时一并
// 说明用户所选答案错在哪里。
func (s *QuizService) ExplainQuestion(questionID uint, selected string) (string, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return "", util.ErrQuestionNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Explain the following multiple-choice question and why the correct answer is right.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	for _, o := range q.Options {
		fmt.Fprintf(&b, "%s) %s\n", o.Letter, o.Text)
	}
	fmt.Fprintf(&b, "\nCorrect answer: %s\n", q.CorrectOption)
	selected = strings.ToLower(strings.TrimSpace(selected))
	if selected != "" && selected != strings.ToLower(q.CorrectOption) {
		fmt.Fprintf(&b, "The student chose %s. Also explain why that choice is wrong.\n", selected)
	}
	b.WriteString("Keep the explanation concise and educational.")

	text, err := s.AI.Generate("explanation", b.String())
	if err != nil {
		return "", util.ErrGenerationFailed
	}
	return text, nil
}
