// Package tui binds forms to an interactive terminal. A Session walks the
// fields of a form in order and drives each one through the same entry
// points a graphical binding would use: focus, change, blur.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/parsing"
)

// Session prompts for the fields of a form.
type Session struct {
	driver      PromptDriver
	maxAttempts int
	theme       Theme
}

// New builds a session. Without WithPromptDriver the survey driver is used.
func New(opts ...Option) *Session {
	s := &Session{
		maxAttempts: DefaultMaxAttempts,
		theme:       Theme{GuidePrefix: "»", ErrorPrefix: "✗"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts every enabled, visible field, then submits the form. Each answer
// goes through the field's change and blur entry points before the prompt
// accepts it, and a field showing errors is asked again. Run returns the
// collected values; when the submit pass fails the values are returned
// together with ErrInvalidForm.
func (s *Session) Run(ctx context.Context, frm *form.Form) (map[string]any, error) {
	for _, fld := range frm.Fields() {
		if !fld.IsEnabled() || fld.Type() == model.FieldTypeHidden {
			continue
		}
		if err := s.fill(ctx, fld); err != nil {
			return nil, err
		}
	}

	if !frm.Submit() {
		for _, result := range frm.Failures() {
			if result.Error == nil {
				continue
			}
			msg := fmt.Sprintf("%s %s: %s", s.theme.ErrorPrefix, result.FieldName, result.Error.Message)
			if err := s.driver.Info(ctx, msg); err != nil {
				return nil, err
			}
		}
		return frm.Values(), ErrInvalidForm
	}
	return frm.Values(), nil
}

func (s *Session) fill(ctx context.Context, fld *field.Field) error {
	fld.OnFocus()
	if err := s.print(ctx, s.theme.GuidePrefix, fld.State().Guides); err != nil {
		return err
	}

	q, toValue := question(fld)
	failures, applied := 0, false
	q.Check = func(a Answer) error {
		applied = true
		fld.OnChange(toValue(a))
		fld.OnBlur()
		errs := fld.State().Errors
		if len(errs) == 0 {
			return nil
		}
		failures++
		if failures >= s.maxAttempts {
			return nil
		}
		fld.OnFocus()
		return errors.New(strings.Join(errs, "; "))
	}

	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	if !applied {
		_ = q.Check(answer)
	}
	if len(fld.State().Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrTooManyAttempts, fld.Name())
	}
	return nil
}

func (s *Session) print(ctx context.Context, prefix string, lines []string) error {
	for _, line := range lines {
		if err := s.driver.Info(ctx, prefix+" "+line); err != nil {
			return err
		}
	}
	return nil
}

// question builds the prompt for fld together with the conversion from an
// answer to the field value.
func question(fld *field.Field) (Question, func(Answer) any) {
	q := Question{Message: fld.Label(), Help: fld.Description()}
	current := fld.Value()
	text := func(a Answer) any { return a.Text }

	switch fld.Type() {
	case model.FieldTypePassword:
		q.Kind = PromptPassword
		return q, text
	case model.FieldTypeTextarea:
		q.Kind = PromptTextArea
		q.Default.Text = parsing.Stringify(current)
		return q, text
	case model.FieldTypeCheckbox, model.FieldTypeToggle, model.FieldTypeRadio, model.FieldTypeSelect:
		if fld.Kind() == model.KindList {
			return choices(q, fld, PromptMultiSelect)
		}
		if fld.Kind() == model.KindBoolean {
			q.Kind = PromptConfirm
			def, _ := parsing.ParseBoolean(current)
			q.Default.Checked, _ = def.(bool)
			return q, func(a Answer) any { return a.Checked }
		}
		return choices(q, fld, PromptSelect)
	default:
		q.Kind = PromptInput
		q.Default.Text = parsing.Stringify(current)
		return q, text
	}
}

func choices(q Question, fld *field.Field, kind PromptKind) (Question, func(Answer) any) {
	options := fld.Options()
	q.Kind = kind
	q.Options = make([]string, len(options))
	for i, opt := range options {
		q.Options[i] = optionLabel(opt)
		if opt.Checked && (kind == PromptMultiSelect || len(q.Default.Indices) == 0) {
			q.Default.Indices = append(q.Default.Indices, i)
		}
	}
	return q, func(a Answer) any {
		var values []string
		for _, idx := range a.Indices {
			if idx >= 0 && idx < len(options) {
				values = append(values, options[idx].Value)
			}
		}
		if len(values) == 0 {
			return nil
		}
		if kind == PromptSelect {
			return values[0]
		}
		return values
	}
}

func optionLabel(opt model.Option) string {
	if opt.Label != "" {
		return opt.Label
	}
	return opt.Value
}
