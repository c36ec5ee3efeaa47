package domain

import (
	"fmt"
	"strconv"
)

// Option is one selectable answer choice.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Question is a single prompt with its options, the expected value and a rationale.
// The worked example of a set uses the same type; its role is recorded by the set.
type Question struct {
	Type        string   `json:"type" yaml:"type"`
	Text        []string `json:"text" yaml:"text"`
	Options     []Option `json:"options" yaml:"options"`
	Correct     string   `json:"correct" yaml:"correct"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// IsCorrect reports whether value matches the expected answer.
// Callers are expected to grade only validated questions.
func (q Question) IsCorrect(value string) bool {
	return value == q.Correct
}

// OptionByValue returns the option carrying value.
func (q Question) OptionByValue(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// QuestionSet groups one worked example and the ordered graded questions.
type QuestionSet struct {
	ID          string     `json:"id" yaml:"id"`
	Instruction string     `json:"instruction" yaml:"instruction"`
	Example     Question   `json:"example" yaml:"example"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Role tells consumers how a question inside a set is meant to be handled.
type Role string

const (
	RoleSet      Role = "set"
	RoleExample  Role = "example"
	RoleQuestion Role = "question"
)

// Locator pinpoints a question inside a set.
// Index is only meaningful for RoleQuestion.
type Locator struct {
	SetID string `json:"set_id"`
	Role  Role   `json:"role"`
	Index int    `json:"index"`
}

// SetLocator points at the set itself rather than one of its questions.
func SetLocator(setID string) Locator {
	return Locator{SetID: setID, Role: RoleSet}
}

// ExampleLocator points at the worked example of a set.
func ExampleLocator(setID string) Locator {
	return Locator{SetID: setID, Role: RoleExample}
}

// QuestionLocator points at the zero-based index into the graded questions.
func QuestionLocator(setID string, index int) Locator {
	return Locator{SetID: setID, Role: RoleQuestion, Index: index}
}

// Position renders the in-set part of the locator: "example", "set" or the index.
func (l Locator) Position() string {
	if l.Role == RoleQuestion {
		return strconv.Itoa(l.Index)
	}
	return string(l.Role)
}

func (l Locator) String() string {
	return fmt.Sprintf("%s/%s", l.SetID, l.Position())
}

// ParseLocator is the inverse of Locator.Position for question positions.
func ParseLocator(setID, position string) (Locator, error) {
	if position == string(RoleExample) {
		return ExampleLocator(setID), nil
	}
	idx, err := strconv.Atoi(position)
	if err != nil || idx < 0 {
		return Locator{}, NewInvalidInputError(fmt.Sprintf("invalid question position %q: want %q or a zero-based index", position, RoleExample))
	}
	return QuestionLocator(setID, idx), nil
}

// Entry is a question together with where it sits in its set.
type Entry struct {
	Locator  Locator
	Question Question
}

// Entries lists the example first, followed by the graded questions in order.
func (s QuestionSet) Entries() []Entry {
	entries := make([]Entry, 0, len(s.Questions)+1)
	entries = append(entries, Entry{Locator: ExampleLocator(s.ID), Question: s.Example})
	for i, q := range s.Questions {
		entries = append(entries, Entry{Locator: QuestionLocator(s.ID, i), Question: q})
	}
	return entries
}

// Lookup returns the question at loc.
func (s QuestionSet) Lookup(loc Locator) (Question, bool) {
	switch loc.Role {
	case RoleExample:
		return s.Example, true
	case RoleQuestion:
		if loc.Index < 0 || loc.Index >= len(s.Questions) {
			return Question{}, false
		}
		return s.Questions[loc.Index], true
	default:
		return Question{}, false
	}
}
