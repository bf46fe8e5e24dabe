// Package mcqparse 将AI生成的自由文本解析为结构化的选择题记录。
//
// 上游生成接口返回的格式并不稳定（编号可能是 "1." 或 "1)"，选项字母可能
// 大写，正确答案可能用星号或 "correct" 标注），因此这里只做尽力恢复：
// 能解析出完整题目的块被保留，残缺的块整体丢弃，任何输入都不会返回错误。
package mcqparse

import (
	"regexp"
	"strings"
)

// Option 选择题的一个选项
type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// ParsedQuestion 一道解析完成的选择题
type ParsedQuestion struct {
	Question      string   `json:"question"`
	Options       []Option `json:"options"`
	CorrectOption string   `json:"correct_option"`
}

var (
	// 题目起始行：行首（允许前导空白）一个整数后跟 . 或 )
	questionStartPattern = regexp.MustCompile(`^\s*(\d+)[.)]\s*(.*)$`)
	// 选项行：a-d 单字母（不区分大小写），可选 . 或 )，之后至少一个空格
	optionPattern = regexp.MustCompile(`^([a-dA-D])[.)]?\s+(.+)$`)
)

// Parse 从原始文本中恢复尽可能多的完整题目。
//
// 分块以题目起始行为锚点，第一个锚点之前的文本视为前言丢弃。块内缺少
// 题干、缺少选项或没有标注正确答案的，整块丢弃而不输出部分数据。
// 同一块内有多个选项被标注为正确时，第一个标注生效。
func Parse(raw string) []ParsedQuestion {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var questions []ParsedQuestion
	var block []string
	inBlock := false

	flush := func() {
		if q, ok := buildQuestion(block); ok {
			questions = append(questions, q)
		}
		block = block[:0]
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := questionStartPattern.FindStringSubmatch(line); m != nil {
			if inBlock {
				flush()
			}
			inBlock = true
			// 锚点行去掉编号后剩余的部分就是题干（可能为空，
			// 此时题干落在块内的下一个非空行）
			block = append(block, m[2])
			continue
		}
		if inBlock {
			block = append(block, line)
		}
	}
	if inBlock {
		flush()
	}

	return questions
}

// buildQuestion 将一个文本块转换为题目，块不完整时返回 false。
func buildQuestion(lines []string) (ParsedQuestion, bool) {
	var q ParsedQuestion

	i := 0
	for ; i < len(lines); i++ {
		if text := strings.TrimSpace(lines[i]); text != "" {
			q.Question = text
			i++
			break
		}
	}
	if q.Question == "" {
		return ParsedQuestion{}, false
	}

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		m := optionPattern.FindStringSubmatch(line)
		if m == nil {
			// 不符合选项格式的行（解说、空话）直接忽略
			continue
		}

		letter := strings.ToLower(m[1])
		text := strings.TrimSpace(m[2])

		if strings.Contains(text, "*") || strings.Contains(strings.ToLower(text), "correct") {
			if q.CorrectOption == "" {
				q.CorrectOption = letter
			}
			text = strings.TrimSpace(strings.ReplaceAll(text, "*", ""))
		}

		q.Options = append(q.Options, Option{Letter: letter, Text: text})
	}

	if len(q.Options) == 0 || q.CorrectOption == "" {
		return ParsedQuestion{}, false
	}
	return q, true
}
