package dto

import "quizset/internal/domain"

// OptionResponse is one answer choice as shown to a client.
type OptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuestionResponse is a question with its position in the set.
// Correct and Explanation are omitted unless answers are revealed.
type QuestionResponse struct {
	Position    string           `json:"position"`
	Role        string           `json:"role"`
	Type        string           `json:"type"`
	Text        []string         `json:"text"`
	Options     []OptionResponse `json:"options"`
	Correct     string           `json:"correct,omitempty"`
	Explanation string           `json:"explanation,omitempty"`
}

// QuestionSetResponse represents a question set in the API response
// @Description Question set with its worked example and graded questions
type QuestionSetResponse struct {
	ID          string             `json:"id"`
	Instruction string             `json:"instruction"`
	Example     QuestionResponse   `json:"example"`
	Questions   []QuestionResponse `json:"questions"`
}

// QuestionSetListResponse lists the stored set ids.
type QuestionSetListResponse struct {
	IDs []string `json:"ids"`
}

// ValidateResponse is returned when a submitted set satisfies every invariant.
type ValidateResponse struct {
	Valid         bool   `json:"valid"`
	ID            string `json:"id"`
	QuestionCount int    `json:"question_count"`
}

// CheckAnswerRequest represents a submitted answer
// @Description Question is "example" or the zero-based index of a graded question
type CheckAnswerRequest struct {
	Question string `json:"question"`
	Value    string `json:"value"`
}

// CheckAnswerResponse represents the grading result in the API response
type CheckAnswerResponse struct {
	SetID         string `json:"set_id"`
	Question      string `json:"question"`
	Role          string `json:"role"`
	Correct       bool   `json:"correct"`
	SelectedLabel string `json:"selected_label,omitempty"`
	CorrectValue  string `json:"correct_value"`
	Explanation   string `json:"explanation"`
}

// NewQuestionSetResponse maps a set for clients; reveal controls whether answers are included.
func NewQuestionSetResponse(set domain.QuestionSet, reveal bool) QuestionSetResponse {
	resp := QuestionSetResponse{
		ID:          set.ID,
		Instruction: set.Instruction,
		Questions:   make([]QuestionResponse, 0, len(set.Questions)),
	}
	for _, entry := range set.Entries() {
		q := newQuestionResponse(entry, reveal)
		if entry.Locator.Role == domain.RoleExample {
			resp.Example = q
			continue
		}
		resp.Questions = append(resp.Questions, q)
	}
	return resp
}

func newQuestionResponse(entry domain.Entry, reveal bool) QuestionResponse {
	text := entry.Question.Text
	if text == nil {
		text = []string{}
	}
	options := make([]OptionResponse, len(entry.Question.Options))
	for i, o := range entry.Question.Options {
		options[i] = OptionResponse{Label: o.Label, Value: o.Value}
	}
	q := QuestionResponse{
		Position: entry.Locator.Position(),
		Role:     string(entry.Locator.Role),
		Type:     entry.Question.Type,
		Text:     text,
		Options:  options,
	}
	if reveal {
		q.Correct = entry.Question.Correct
		q.Explanation = entry.Question.Explanation
	}
	return q
}
