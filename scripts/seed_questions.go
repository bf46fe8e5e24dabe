// 手动触发题库批量生成脚本
//
// 为给定的主题列表调用AI生成题目并直接入库，适合首次部署时
// 快速填充题库。日常的题目生成走管理端接口。
//
// 用法: go run scripts/seed_questions.go <topic> [topic...]

package main

import (
	"log"
	"os"

	"quiz_ai_backend/internal/config"
	"quiz_ai_backend/internal/repository"
	"quiz_ai_backend/internal/service"
	"quiz_ai_backend/pkg/database"
	"quiz_ai_backend/pkg/logger"
)

const questionsPerTopic = 10

func main() {
	if len(os.Args) < 2 {
		log.Fatal("用法: go run scripts/seed_questions.go <topic> [topic...]")
	}
	topics := os.Args[1:]

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	aiService := service.NewAIService(cfg.Gemini)
	questionService := service.NewQuestionService(repository.NewQuestionRepository(db), aiService, nil)

	for _, topic := range topics {
		log.Printf("正在为主题 %q 生成题目...", topic)
		parsed, err := questionService.GenerateQuestions(topic, questionsPerTopic)
		if err != nil {
			log.Printf("主题 %q 生成失败: %v", topic, err)
			continue
		}

		saved, err := questionService.SaveQuestions(topic, parsed, 0)
		if err != nil {
			log.Printf("主题 %q 入库失败: %v", topic, err)
			continue
		}
		log.Printf("主题 %q 入库 %d 道题", topic, len(saved))
	}
	log.Println("完成！")
}
