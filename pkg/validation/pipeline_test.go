package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/parsing"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func stringInput(name, value string, opts model.ValidationOptions, mode validation.TriggerMode) validation.Input {
	coerced, ok := parsing.ParseString(value)
	return validation.Input{
		FieldName: name,
		Type:      model.FieldTypeText,
		Kind:      model.KindString,
		Options:   opts,
		Value:     coerced,
		HasValue:  ok,
		Origin:    validation.Origin{TriggerMode: mode},
		Stringify: parsing.Stringify,
	}
}

func TestResetShortCircuits(t *testing.T) {
	opts := model.ValidationOptions{Required: &model.RequiredRule{Enabled: true}}
	results := validation.Default().Validate(stringInput("name", "", opts, validation.TriggerReset))
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", results)
	}
}

func TestAllRulesRun(t *testing.T) {
	opts := model.ValidationOptions{
		Required:  &model.RequiredRule{Enabled: true},
		MinLength: &model.LengthRule{Value: 10},
		MaxLength: &model.LengthRule{Value: 2},
		Pattern:   &model.PatternRule{Value: `^\d+$`},
		Min:       &model.BoundRule{Value: 1},
		Max:       &model.BoundRule{Value: 5},
	}
	results := validation.Default().Validate(stringInput("code", "abc", opts, validation.TriggerBlur))

	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	gotRules := make([]string, len(results))
	failed := 0
	for i, r := range results {
		gotRules[i] = r.Rule
		if r.FieldName != "code" {
			t.Fatalf("result %s carries field name %q", r.Rule, r.FieldName)
		}
		if !r.State {
			failed++
		}
	}
	wantRules := []string{"required", "min", "max", "minLength", "maxLength", "pattern"}
	if diff := cmp.Diff(wantRules, gotRules); diff != "" {
		t.Fatalf("rule order mismatch (-want +got):\n%s", diff)
	}
	if failed != 5 {
		t.Fatalf("expected every rule but required to fail, failed=%d", failed)
	}
}

func TestUnconfiguredRulesProduceNoResults(t *testing.T) {
	results := validation.Default().Validate(stringInput("free", "anything", model.ValidationOptions{}, validation.TriggerSubmit))
	if len(results) != 0 {
		t.Fatalf("expected no results, got %#v", results)
	}
	if !validation.Passed(results) {
		t.Fatalf("empty results should pass")
	}
}

func TestCustomValidatorAndNames(t *testing.T) {
	noSpaces := validation.Func("noSpaces", func(in validation.Input) (validation.Result, bool) {
		s, _ := in.Value.(string)
		for _, r := range s {
			if r == ' ' {
				return validation.Result{State: false, Error: &validation.Message{Message: "No spaces"}}, true
			}
		}
		return validation.Result{State: true}, true
	})
	p := validation.New(validation.Required()).With(noSpaces, nil)

	if diff := cmp.Diff([]string{"required", "noSpaces"}, p.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	results := p.Validate(stringInput("handle", "a b", model.ValidationOptions{}, validation.TriggerChange))
	want := []validation.Result{{Rule: "noSpaces", State: false, FieldName: "handle", Error: &validation.Message{Message: "No spaces"}}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"No spaces"}, validation.Errors(results)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckOptionsRejectsMalformedPattern(t *testing.T) {
	opts := model.ValidationOptions{Pattern: &model.PatternRule{Value: "(unclosed"}}
	err := validation.CheckOptions(opts, validation.NewPatterns(4))
	if !errors.Is(err, validation.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if err := validation.CheckOptions(model.ValidationOptions{}, nil); err != nil {
		t.Fatalf("no pattern should be fine, got %v", err)
	}
}

func TestPatternsCache(t *testing.T) {
	p := validation.NewPatterns(2)
	first, err := p.Compile(`^a$`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, _ := p.Compile(`^a$`)
	if first != second {
		t.Fatalf("expected cached expression to be reused")
	}
	_, _ = p.Compile(`^b$`)
	_, _ = p.Compile(`^c$`)
	if p.Len() != 2 {
		t.Fatalf("expected cache to stay bounded at 2, got %d", p.Len())
	}
}
