package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// PromptKind selects how a Question is rendered.
type PromptKind uint8

const (
	PromptInput PromptKind = iota
	PromptPassword
	PromptTextArea
	PromptConfirm
	PromptSelect
	PromptMultiSelect
)

// Answer is the reply to a Question. Text prompts fill Text, confirms fill
// Checked, and selects fill Indices with positions in Question.Options.
type Answer struct {
	Text    string
	Checked bool
	Indices []int
}

// Question describes a single prompt.
type Question struct {
	Kind     PromptKind
	Message  string
	Help     string
	Default  Answer
	Options  []string
	PageSize int

	// Check runs on every answer before the prompt accepts it. A non-nil
	// error is shown under the prompt and the question is asked again.
	Check func(Answer) error
}

// PromptDriver abstracts the terminal so sessions can be tested without one.
// Drivers must run Question.Check on each answer and keep asking while it
// fails.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (Answer, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the interactive driver backed by survey. Info
// messages go to out, or stdout when out is nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Ask(ctx context.Context, q Question) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	var opts []survey.AskOpt
	if q.Check != nil {
		opts = append(opts, survey.WithValidator(func(raw interface{}) error {
			return q.Check(decodeAnswer(raw))
		}))
	}

	switch q.Kind {
	case PromptConfirm:
		var out bool
		prompt := &survey.Confirm{Message: q.Message, Help: q.Help, Default: q.Default.Checked}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return Answer{}, translateSurveyErr(err)
		}
		return Answer{Checked: out}, nil
	case PromptSelect:
		var out survey.OptionAnswer
		prompt := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Options, PageSize: q.PageSize}
		if len(q.Default.Indices) > 0 {
			if idx := q.Default.Indices[0]; idx >= 0 && idx < len(q.Options) {
				prompt.Default = q.Options[idx]
			}
		}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return Answer{}, translateSurveyErr(err)
		}
		return decodeAnswer(out), nil
	case PromptMultiSelect:
		var out []survey.OptionAnswer
		prompt := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: q.Options, PageSize: q.PageSize}
		if defaults := defaultsFromIndices(q.Options, q.Default.Indices); len(defaults) > 0 {
			prompt.Default = defaults
		}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return Answer{}, translateSurveyErr(err)
		}
		return decodeAnswer(out), nil
	default:
		var out string
		if err := survey.AskOne(textPrompt(q), &out, opts...); err != nil {
			return Answer{}, translateSurveyErr(err)
		}
		return Answer{Text: out}, nil
	}
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func textPrompt(q Question) survey.Prompt {
	switch q.Kind {
	case PromptPassword:
		return &survey.Password{Message: q.Message, Help: q.Help}
	case PromptTextArea:
		return &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default.Text}
	default:
		return &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default.Text}
	}
}

// decodeAnswer converts the values survey hands to validators and writes to
// responses into an Answer.
func decodeAnswer(raw interface{}) Answer {
	switch v := raw.(type) {
	case string:
		return Answer{Text: v}
	case bool:
		return Answer{Checked: v}
	case survey.OptionAnswer:
		return Answer{Text: v.Value, Indices: []int{v.Index}}
	case []survey.OptionAnswer:
		indices := make([]int, 0, len(v))
		for _, opt := range v {
			indices = append(indices, opt.Index)
		}
		return Answer{Indices: indices}
	default:
		return Answer{}
	}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
