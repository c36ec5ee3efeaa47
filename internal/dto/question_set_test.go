package dto

import (
	"testing"

	"quizset/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionSetResponse(t *testing.T) {
	set := domain.QuestionSet{
		ID:          "s1",
		Instruction: "Pick one",
		Example: domain.Question{
			Type: "mc", Text: []string{"1+1=?"},
			Options: []domain.Option{{Label: "2", Value: "2"}}, Correct: "2", Explanation: "basic addition",
		},
		Questions: []domain.Question{{
			Type: "mc", Options: []domain.Option{{Label: "A", Value: "a"}}, Correct: "a", Explanation: "only one",
		}},
	}

	hidden := NewQuestionSetResponse(set, false)
	assert.Equal(t, "example", hidden.Example.Position)
	assert.Equal(t, "example", hidden.Example.Role)
	assert.Empty(t, hidden.Example.Correct)
	assert.Empty(t, hidden.Example.Explanation)
	require.Len(t, hidden.Questions, 1)
	assert.Equal(t, "0", hidden.Questions[0].Position)
	assert.Equal(t, "question", hidden.Questions[0].Role)
	assert.NotNil(t, hidden.Questions[0].Text)
	assert.Empty(t, hidden.Questions[0].Correct)

	revealed := NewQuestionSetResponse(set, true)
	assert.Equal(t, "2", revealed.Example.Correct)
	assert.Equal(t, "basic addition", revealed.Example.Explanation)
	assert.Equal(t, "a", revealed.Questions[0].Correct)
}
