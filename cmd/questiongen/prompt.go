package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"quizset/internal/domain"
)

const (
	typeSameLetter     = "same-letter-mc"
	typeMultipleChoice = "multiple-choice"
)

var (
	sameLetterLabels     = []string{"A", "B", "C", "D", "E"}
	multipleChoiceLabels = []string{"A", "B", "C", "D"}
)

// prompter reads one answer per line from in and writes prompts to out.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask returns the trimmed answer, or def when the answer is blank.
func (p *prompter) ask(msg, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", msg, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", msg)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	if answer := strings.TrimSpace(p.in.Text()); answer != "" {
		return answer, nil
	}
	return def, nil
}

func (p *prompter) confirm(msg string, def bool) (bool, error) {
	d := "n"
	if def {
		d = "y"
	}
	answer, err := p.ask(msg+" (y/n)", d)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

// askSet walks the author through one complete question set.
func (p *prompter) askSet(id string) (domain.QuestionSet, error) {
	fmt.Fprintln(p.out, "Question Set Generator")
	fmt.Fprintln(p.out, "----------------------")

	set := domain.QuestionSet{ID: id, Questions: []domain.Question{}}
	var err error
	if set.ID, err = p.ask("Set id", id); err != nil {
		return set, err
	}
	if set.Instruction, err = p.ask("Instruction", ""); err != nil {
		return set, err
	}

	fmt.Fprintln(p.out, "\nWorked example")
	if set.Example, err = p.askQuestion(); err != nil {
		return set, err
	}

	for {
		more, err := p.confirm("\nAdd a graded question?", true)
		if err != nil {
			return set, err
		}
		if !more {
			break
		}
		q, err := p.askQuestion()
		if err != nil {
			return set, err
		}
		set.Questions = append(set.Questions, q)
	}
	return set, nil
}

func (p *prompter) askQuestion() (domain.Question, error) {
	fmt.Fprintf(p.out, "Templates: %s, %s (any other type takes free-form options)\n", typeSameLetter, typeMultipleChoice)
	qtype, err := p.ask("Question type", typeSameLetter)
	if err != nil {
		return domain.Question{}, err
	}

	var q domain.Question
	switch qtype {
	case typeSameLetter:
		q, err = p.askSameLetter()
	case typeMultipleChoice:
		q, err = p.askMultipleChoice()
	default:
		q, err = p.askFreeForm()
	}
	if err != nil {
		return q, err
	}
	q.Type = qtype

	if q.Correct, err = p.ask("Correct value (must match one of the option values)", ""); err != nil {
		return q, err
	}
	q.Explanation, err = p.ask("Explanation", "")
	return q, err
}

// askSameLetter builds a question whose two fragments share one missing letter.
// Options are labelled A to E and carry the letter as their value.
func (p *prompter) askSameLetter() (domain.Question, error) {
	var q domain.Question
	for _, msg := range []string{"First fragment (e.g. dis [?] urt)", "Second fragment (e.g. muc [?] ole)"} {
		frag, err := p.ask(msg, "")
		if err != nil {
			return q, err
		}
		q.Text = append(q.Text, frag)
	}
	for _, label := range sameLetterLabels {
		letter, err := p.ask(fmt.Sprintf("Option %s (letter)", label), "")
		if err != nil {
			return q, err
		}
		q.Options = append(q.Options, domain.Option{Label: label, Value: letter})
	}
	return q, nil
}

// askMultipleChoice builds a one-line question with four answers labelled A to D.
func (p *prompter) askMultipleChoice() (domain.Question, error) {
	var q domain.Question
	text, err := p.ask("Question text", "")
	if err != nil {
		return q, err
	}
	q.Text = []string{text}
	for _, label := range multipleChoiceLabels {
		answer, err := p.ask("Option "+label, "")
		if err != nil {
			return q, err
		}
		q.Options = append(q.Options, domain.Option{Label: label, Value: answer})
	}
	return q, nil
}

// askFreeForm reads text lines and label=value options until a blank line.
func (p *prompter) askFreeForm() (domain.Question, error) {
	q := domain.Question{Text: []string{}}
	for {
		line, err := p.ask("Text line (blank to finish)", "")
		if err != nil {
			return q, err
		}
		if line == "" {
			break
		}
		q.Text = append(q.Text, line)
	}
	for {
		opt, err := p.ask("Option as label=value (blank to finish)", "")
		if err != nil {
			return q, err
		}
		if opt == "" {
			break
		}
		label, value, found := strings.Cut(opt, "=")
		if !found {
			value = label
		}
		q.Options = append(q.Options, domain.Option{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)})
	}
	return q, nil
}
