package model

// QuestionOption 题目的一个选项，按字母顺序存储在JSON列里
type QuestionOption struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question AI生成并经管理员确认入库的选择题
// swagger:model Question
type Question struct {
	BaseModel
	Topic         string           `gorm:"size:100;index;not null" json:"topic"`
	Text          string           `gorm:"type:text;not null" json:"question"`
	Options       []QuestionOption `gorm:"serializer:json" json:"options"`
	CorrectOption string           `gorm:"size:1;not null" json:"correctOption"`
	CreatedBy     uint             `gorm:"index" json:"createdBy"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionView 发给答题用户的题目视图，不携带正确答案
type QuestionView struct {
	ID      uint             `json:"id"`
	Topic   string           `json:"topic"`
	Text    string           `json:"question"`
	Options []QuestionOption `json:"options"`
}

func (q *Question) View() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Topic:   q.Topic,
		Text:    q.Text,
		Options: q.Options,
	}
}
