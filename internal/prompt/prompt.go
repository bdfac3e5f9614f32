// Package prompt implements the guided question-and-answer loop used by the
// wizard: ask, validate, re-ask on bad input, and abort cleanly on "quit".
// The reader and writer are injected so tests can drive the loop.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/deniz-lab/wrangle/internal/parsekey"
)

// ErrQuit reports that the user typed the quit sentinel.
var ErrQuit = eris.New("aborted at user request")

// Prompter reads answers line by line and re-asks until one validates.
type Prompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// New builds a Prompter over the given reader and writer.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(r), w: w}
}

// Interpret asks until validate accepts the answer. "quit" (any case) and
// end of input return ErrQuit. Validation errors are shown to the user and
// the question repeats.
func (p *Prompter) Interpret(instructions string, validate func(string) (string, error)) (string, error) {
	for {
		fmt.Fprintln(p.w, instructions)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", eris.Wrap(err, "prompt: read input")
			}
			return "", ErrQuit
		}
		answer := strings.TrimSpace(p.scanner.Text())
		if strings.EqualFold(answer, "quit") {
			return "", ErrQuit
		}
		if validate == nil {
			return answer, nil
		}
		accepted, err := validate(answer)
		if err != nil {
			fmt.Fprintln(p.w, err.Error())
			continue
		}
		return accepted, nil
	}
}

// Text asks and accepts any answer.
func (p *Prompter) Text(instructions string) (string, error) {
	return p.Interpret(instructions, nil)
}

// YesNo asks a yes/no question.
func (p *Prompter) YesNo(instructions string) (bool, error) {
	answer, err := p.Interpret(instructions, func(s string) (string, error) {
		if _, err := parseYesNo(s); err != nil {
			return "", err
		}
		return s, nil
	})
	if err != nil {
		return false, err
	}
	v, _ := parseYesNo(answer)
	return v, nil
}

// PositiveInt asks for a positive integer.
func (p *Prompter) PositiveInt(instructions string) (int, error) {
	answer, err := p.Interpret(instructions, func(s string) (string, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return "", eris.New("You must enter a positive integer.")
		}
		if n <= 0 {
			return "", eris.New("Integer must be positive.")
		}
		return s, nil
	})
	if err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(answer)
	return n, nil
}

// Membership asks until the answer is one of options. Case sensitive.
func (p *Prompter) Membership(instructions string, options []string) (string, error) {
	return p.Interpret(instructions, MemberOf(options))
}

// Confirm asks a yes/no question and reports whether the user agreed.
func (p *Prompter) Confirm(message string) (bool, error) {
	return p.YesNo(message)
}

// MemberOf validates that the answer is in the given list.
func MemberOf(options []string) func(string) (string, error) {
	return func(s string) (string, error) {
		for _, o := range options {
			if s == o {
				return s, nil
			}
		}
		return "", eris.Errorf("Input must be one of %v.", options)
	}
}

// NotMemberOf validates that the answer is absent from the given list.
func NotMemberOf(options []string) func(string) (string, error) {
	return func(s string) (string, error) {
		for _, o := range options {
			if s == o {
				return "", eris.Errorf("Input may not be one of %v.", options)
			}
		}
		return s, nil
	}
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	default:
		return false, eris.New("Invalid input. Enter yes or no.")
	}
}

// RequestParseKey walks the user through describing their sample-naming
// convention: field count, separator, and one name per position. Repeated
// names are rejected. All fields are treated as text; numeric coercion
// happens downstream where it is needed.
func (p *Prompter) RequestParseKey() (*parsekey.ParseKey, error) {
	count, err := p.PositiveInt("How many pieces of data are in your sample names?")
	if err != nil {
		return nil, err
	}

	separator := ""
	if count > 1 {
		separator, err = p.Text("What separator is used in your sample names?")
		if err != nil {
			return nil, err
		}
		if separator == "" {
			separator = "_"
		}
	}

	fields := make([]parsekey.Field, 0, count)
	var names []string
	for i := 0; i < count; i++ {
		name, err := p.Interpret(
			fmt.Sprintf("Name of data in position %d:", i+1),
			NotMemberOf(names),
		)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		fields = append(fields, parsekey.Field{Name: name, Kind: parsekey.String})
	}

	return parsekey.New(separator, fields...)
}
