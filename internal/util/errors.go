package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrNoQuestions        = errors.New("no questions available for this topic")
	ErrNoActiveQuiz       = errors.New("no active quiz session")
	ErrNoAttempts         = errors.New("no quiz attempts recorded yet")
	ErrGenerationFailed   = errors.New("text generation failed")
	ErrTopicRequired      = errors.New("topic cannot be empty")
)
