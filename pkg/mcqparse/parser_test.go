package mcqparse

import "testing"

func TestParseTwoQuestions(t *testing.T) {
	raw := "1. What is 2+2?\na) 3\nb) 4*\nc) 5\nd) 6\n2. Capital of France?\na) Berlin\nb) Paris*\nc) Rome"

	questions := Parse(raw)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Question != "What is 2+2?" {
		t.Errorf("question text = %q", first.Question)
	}
	if first.CorrectOption != "b" {
		t.Errorf("correct option = %q, want b", first.CorrectOption)
	}
	if len(first.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(first.Options))
	}
	if first.Options[1].Text != "4" {
		t.Errorf("asterisk not stripped: option text = %q", first.Options[1].Text)
	}

	second := questions[1]
	if second.Question != "Capital of France?" {
		t.Errorf("question text = %q", second.Question)
	}
	if second.CorrectOption != "b" {
		t.Errorf("correct option = %q, want b", second.CorrectOption)
	}
	if len(second.Options) != 3 {
		t.Errorf("expected 3 options, got %d", len(second.Options))
	}
	if second.Options[1].Text != "Paris" {
		t.Errorf("option text = %q, want Paris", second.Options[1].Text)
	}
}

func TestParsePreservesOrderAndText(t *testing.T) {
	raw := "Here are your questions:\n" +
		"1) First question?\n" +
		"a. alpha\n" +
		"b. beta (correct)\n" +
		"2) Second question?\n" +
		"A) one*\n" +
		"B) two\n" +
		"3) Third question?\n" +
		"a) x\n" +
		"b) y\n" +
		"c) z*\n"

	questions := Parse(raw)
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	wantQuestions := []string{"First question?", "Second question?", "Third question?"}
	wantCorrect := []string{"b", "a", "c"}
	for i, q := range questions {
		if q.Question != wantQuestions[i] {
			t.Errorf("question %d text = %q, want %q", i, q.Question, wantQuestions[i])
		}
		if q.CorrectOption != wantCorrect[i] {
			t.Errorf("question %d correct = %q, want %q", i, q.CorrectOption, wantCorrect[i])
		}
	}

	// 大写选项字母归一化为小写
	if questions[1].Options[0].Letter != "a" {
		t.Errorf("letter not lowercased: %q", questions[1].Options[0].Letter)
	}
}

func TestParseDropsMalformedBlocks(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "missing correct marker",
			raw:  "1. Q one?\na) x\nb) y*\n2. Q two?\na) x\nb) y",
			want: 1,
		},
		{
			name: "no options",
			raw:  "1. Lonely question with no options\n2. Fine question?\na) no\nb) yes*",
			want: 1,
		},
		{
			name: "all blocks malformed",
			raw:  "1. No options here\n2. Also nothing",
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.raw)
			if len(got) != tc.want {
				t.Errorf("got %d questions, want %d", len(got), tc.want)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t\n", "no markers anywhere in this text"} {
		if got := Parse(raw); len(got) != 0 {
			t.Errorf("Parse(%q) = %d questions, want 0", raw, len(got))
		}
	}
}

func TestParseFirstMarkerWins(t *testing.T) {
	raw := "1. Which one?\na) first*\nb) second*\nc) third"

	questions := Parse(raw)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].CorrectOption != "a" {
		t.Errorf("correct option = %q, want a (first marker wins)", questions[0].CorrectOption)
	}
	// 两个被标注的选项都应去掉星号
	if questions[0].Options[0].Text != "first" || questions[0].Options[1].Text != "second" {
		t.Errorf("asterisks not stripped: %+v", questions[0].Options)
	}
}

func TestParseIgnoresCommentaryLines(t *testing.T) {
	raw := "Some preamble the model added.\n" +
		"1. Real question?\n" +
		"Note: pick carefully.\n" +
		"a) wrong\n" +
		"b) right*\n" +
		"That was the question.\n"

	questions := Parse(raw)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if len(questions[0].Options) != 2 {
		t.Errorf("commentary lines leaked into options: %+v", questions[0].Options)
	}
}

func TestParseNonContiguousLetters(t *testing.T) {
	// 选项字母不要求连续，也不要求恰好4个
	raw := "1. Sparse options?\na) yes*\nd) no"

	questions := Parse(raw)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if len(questions[0].Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(questions[0].Options))
	}
}

func TestParseQuestionOnSeparateLine(t *testing.T) {
	// 编号行本身为空时，题干落在块内第一个非空行
	raw := "1.\nWhat goes here?\na) this*\nb) that"

	questions := Parse(raw)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Question != "What goes here?" {
		t.Errorf("question text = %q", questions[0].Question)
	}
}
