// Package analysis 将AI生成的分析文本切分为命名小节。
//
// 生成接口对输出排版没有契约：有时使用明确的小节标题，有时只用 "1." "2."
// 这样的编号，有时两者混用。这里采用双重匹配策略：优先按配置的标题词
// 匹配，匹配不到时退回位置约定（第N个顶层编号项对应标题表中第N个小节）。
// 位置约定假设编号顺序与标题表顺序一致，不校验数量是否匹配；编号错位的
// 输入会把内容归到错误的小节，这是已知限制。
package analysis

import (
	"regexp"
	"strings"
)

// Heading 标题表中的一项：Match 为不区分大小写的子串匹配词，Key 为小节键
type Heading struct {
	Match string
	Key   string
}

// HeadingTable 有序标题表，一种分析类型一张表
type HeadingTable []Heading

// Sections 小节键到该小节文本行的映射，只包含非空小节
type Sections map[string][]string

// 三类分析各自的小节词表，与提示词中要求的产出结构对应。
var (
	QuizInsightHeadings = HeadingTable{
		{Match: "key insights", Key: "key_insights"},
		{Match: "recommendations", Key: "recommendations"},
		{Match: "topics to focus", Key: "focus_topics"},
	}

	UserCoachingHeadings = HeadingTable{
		{Match: "performance summary", Key: "summary"},
		{Match: "strengths", Key: "strengths"},
		{Match: "areas for improvement", Key: "improvements"},
		{Match: "study plan", Key: "study_plan"},
		{Match: "motivation", Key: "motivation"},
	}

	TopicGuidanceHeadings = HeadingTable{
		{Match: "topic overview", Key: "overview"},
		{Match: "common challenges", Key: "challenges"},
		{Match: "study strategies", Key: "strategies"},
		{Match: "recommended resources", Key: "resources"},
		{Match: "practice approach", Key: "practice"},
	}
)

var enumeratedItemPattern = regexp.MustCompile(`^(\d+)\.`)

// Parse 按标题表切分文本。
//
// 标题行本身不计入小节内容；位置约定命中的编号行保留为内容首行。
// 在识别出任何小节之前出现的行被丢弃。空小节不出现在结果中。
func Parse(raw string, table HeadingTable) Sections {
	sections := Sections{}
	current := ""
	var buffer []string

	flush := func() {
		if current != "" && len(buffer) > 0 {
			sections[current] = buffer
		}
		buffer = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if key, ok := matchHeading(line, table); ok {
			flush()
			current = key
			continue
		}

		if idx, ok := positionalIndex(line, current, table); ok {
			flush()
			current = table[idx].Key
			buffer = append(buffer, line)
			continue
		}

		if current != "" {
			buffer = append(buffer, line)
		}
	}
	flush()

	return sections
}

func matchHeading(line string, table HeadingTable) (string, bool) {
	lower := strings.ToLower(line)
	for _, h := range table {
		if strings.Contains(lower, strings.ToLower(h.Match)) {
			return h.Key, true
		}
	}
	return "", false
}

// positionalIndex 判断一行是否是位置约定下的小节转换：第1个编号项
// 在尚无小节时开启第一个小节，第N个编号项在当前小节为第N-1个时开启
// 第N个小节。其余编号行按普通内容处理（小节内部的编号列表很常见）。
func positionalIndex(line, current string, table HeadingTable) (int, bool) {
	m := enumeratedItemPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	n := 0
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	idx := n - 1
	if idx < 0 || idx >= len(table) {
		return 0, false
	}

	if idx == 0 {
		if current == "" {
			return 0, true
		}
		return 0, false
	}
	if current == table[idx-1].Key {
		return idx, true
	}
	return 0, false
}
