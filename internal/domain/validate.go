package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationKind identifies which invariant a question set violates.
type ValidationKind string

const (
	KindEmptySetID                ValidationKind = "EMPTY_SET_ID"
	KindNoOptions                 ValidationKind = "NO_OPTIONS"
	KindDuplicateOptionValue      ValidationKind = "DUPLICATE_OPTION_VALUE"
	KindCorrectAnswerNotInOptions ValidationKind = "CORRECT_ANSWER_NOT_IN_OPTIONS"
	KindEmptyQuestionType         ValidationKind = "EMPTY_QUESTION_TYPE"
)

// Sentinels for errors.Is; every *ValidationError unwraps to the one matching its kind.
var (
	ErrEmptySetID                = errors.New("question set id is empty")
	ErrNoOptions                 = errors.New("question has no options")
	ErrDuplicateOptionValue      = errors.New("duplicate option value")
	ErrCorrectAnswerNotInOptions = errors.New("correct answer is not among the option values")
	ErrEmptyQuestionType         = errors.New("question type is empty")
)

var kindSentinels = map[ValidationKind]error{
	KindEmptySetID:                ErrEmptySetID,
	KindNoOptions:                 ErrNoOptions,
	KindDuplicateOptionValue:      ErrDuplicateOptionValue,
	KindCorrectAnswerNotInOptions: ErrCorrectAnswerNotInOptions,
	KindEmptyQuestionType:         ErrEmptyQuestionType,
}

// ValidationError reports one violated invariant and where it was found.
type ValidationError struct {
	Kind    ValidationKind
	Locator Locator
	Detail  string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Locator, kindSentinels[e.Kind])
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// ValidationErrors is every violation found in a set, in check order.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is and errors.As look through to the individual violations.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Validate checks the semantic invariants of set and returns the first violation.
//
// The set id is checked first, then the example, then every graded question in order.
// Within a question the order is: type, options present, option values distinct,
// correct answer present. Validate has no side effects and keeps no state.
func Validate(set QuestionSet) error {
	var first *ValidationError
	walk(set, func(e *ValidationError) bool {
		first = e
		return false
	})
	if first != nil {
		return first
	}
	return nil
}

// ValidateAll checks the same invariants as Validate but collects every violation.
// It returns nil for a well-formed set.
func ValidateAll(set QuestionSet) ValidationErrors {
	var all ValidationErrors
	walk(set, func(e *ValidationError) bool {
		all = append(all, e)
		return true
	})
	return all
}

// walk reports violations to emit until emit returns false.
func walk(set QuestionSet, emit func(*ValidationError) bool) {
	if set.ID == "" {
		if !emit(&ValidationError{Kind: KindEmptySetID, Locator: SetLocator(set.ID)}) {
			return
		}
	}
	for _, entry := range set.Entries() {
		if !checkQuestion(entry.Locator, entry.Question, emit) {
			return
		}
	}
}

func checkQuestion(loc Locator, q Question, emit func(*ValidationError) bool) bool {
	if q.Type == "" {
		if !emit(&ValidationError{Kind: KindEmptyQuestionType, Locator: loc}) {
			return false
		}
	}

	if len(q.Options) == 0 {
		return emit(&ValidationError{Kind: KindNoOptions, Locator: loc})
	}

	seen := make(map[string]int, len(q.Options))
	for i, o := range q.Options {
		if prev, dup := seen[o.Value]; dup {
			detail := fmt.Sprintf("value %q at options %d and %d", o.Value, prev, i)
			if !emit(&ValidationError{Kind: KindDuplicateOptionValue, Locator: loc, Detail: detail}) {
				return false
			}
			continue
		}
		seen[o.Value] = i
	}

	if _, ok := seen[q.Correct]; !ok {
		detail := fmt.Sprintf("correct %q", q.Correct)
		return emit(&ValidationError{Kind: KindCorrectAnswerNotInOptions, Locator: loc, Detail: detail})
	}
	return true
}
