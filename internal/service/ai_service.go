package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quiz_ai_backend/internal/config"
	"quiz_ai_backend/pkg/logger"
	"quiz_ai_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AIService 封装对Gemini generateContent接口的调用。重试、退避都在
// 这一层处理，解析层只接收提取出来的纯文本。
type AIService struct {
	config config.GeminiConfig
	client *http.Client
}

func NewAIService(cfg config.GeminiConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate 发送提示词并返回生成的文本。限流(429)和服务端错误(5xx)
// 最多重试 MaxRetries 次，间隔逐次加长。kind 只用于指标标签。
func (s *AIService) Generate(kind, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
			logger.Log.Warn("retrying text generation",
				zap.String("kind", kind),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
		}

		text, retryable, err := s.generateOnce(prompt)
		if err == nil {
			monitoring.GenerationCounter.WithLabelValues(kind, "success").Inc()
			return text, nil
		}

		lastErr = err
		if !retryable {
			break
		}
	}

	monitoring.GenerationCounter.WithLabelValues(kind, "failure").Inc()
	return "", lastErr
}

func (s *AIService) generateOnce(prompt string) (string, bool, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		s.config.BaseURL, s.config.Model, s.config.APIKey)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// 网络层错误视为瞬时故障
		return "", true, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", false, err
	}

	if result.Error != nil {
		return "", false, fmt.Errorf("gemini API error: %s", result.Error.Message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("gemini returned no candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, false, nil
}
