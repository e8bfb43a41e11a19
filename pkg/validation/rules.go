package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/parsing"
)

// Canonical rule identifiers.
const (
	RuleRequired  = "required"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
)

// Messages are the fallback texts used when a rule carries no custom error.
type Messages struct {
	Required   string
	Expected   string
	Min        string
	Max        string
	NotNumeric string
	MinLength  string
	MaxLength  string
	Pattern    string
}

// DefaultMessages holds the English fallbacks. Min/Max take the bound,
// MinLength/MaxLength the length, as their single format argument.
var DefaultMessages = Messages{
	Required:   "This field is required",
	Expected:   "Value does not match",
	Min:        "Must be at least %s",
	Max:        "Must be at most %s",
	NotNumeric: "Must be a number",
	MinLength:  "Must be at least %d characters",
	MaxLength:  "Must be at most %d characters",
	Pattern:    "Invalid format",
}

func outcome(rule string, in Input, ok bool, custom, fallback, guide string) Result {
	r := Result{Rule: rule, State: ok, FieldName: in.FieldName}
	if !ok {
		msg := custom
		if msg == "" {
			msg = fallback
		}
		r.Error = &Message{Message: msg}
	}
	if guide != "" {
		r.Guide = &Message{Message: guide}
	}
	return r
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Required fails when enabled and the value is absent, or when an expected
// value is configured and the coerced value differs from it.
func Required() Validator {
	return Func(RuleRequired, func(in Input) (Result, bool) {
		rule := in.Options.Required
		enabled := rule != nil && rule.Enabled
		if !enabled && in.ExpectedValue == nil {
			return Result{}, false
		}
		var custom, guide string
		if rule != nil {
			custom, guide = rule.Error, rule.Guide
		}
		if enabled && !in.HasValue {
			return outcome(RuleRequired, in, false, custom, DefaultMessages.Required, guide), true
		}
		if in.ExpectedValue != nil && !reflect.DeepEqual(in.Value, in.ExpectedValue) {
			return outcome(RuleRequired, in, false, custom, DefaultMessages.Expected, guide), true
		}
		return outcome(RuleRequired, in, true, custom, "", guide), true
	})
}

func boundValidator(name string, pick func(model.ValidationOptions) *model.BoundRule, holds func(v, bound float64) bool, fallback string) Validator {
	return Func(name, func(in Input) (Result, bool) {
		rule := pick(in.Options)
		if rule == nil {
			return Result{}, false
		}
		if !in.HasValue {
			return outcome(name, in, true, rule.Error, "", rule.Guide), true
		}
		raw, ok := parsing.ParseNumber(in.Value)
		if !ok {
			return outcome(name, in, false, rule.Error, DefaultMessages.NotNumeric, rule.Guide), true
		}
		v := raw.(float64)
		return outcome(name, in, holds(v, rule.Value), rule.Error, fmt.Sprintf(fallback, formatBound(rule.Value)), rule.Guide), true
	})
}

// Min fails when the value is not numeric or below the bound.
func Min() Validator {
	return boundValidator(RuleMin,
		func(o model.ValidationOptions) *model.BoundRule { return o.Min },
		func(v, bound float64) bool { return v >= bound },
		DefaultMessages.Min)
}

// Max fails when the value is not numeric or above the bound.
func Max() Validator {
	return boundValidator(RuleMax,
		func(o model.ValidationOptions) *model.BoundRule { return o.Max },
		func(v, bound float64) bool { return v <= bound },
		DefaultMessages.Max)
}

func lengthValidator(name string, pick func(model.ValidationOptions) *model.LengthRule, holds func(n, bound int) bool, fallback string) Validator {
	return Func(name, func(in Input) (Result, bool) {
		rule := pick(in.Options)
		if rule == nil {
			return Result{}, false
		}
		if !in.HasValue {
			return outcome(name, in, true, rule.Error, "", rule.Guide), true
		}
		n := utf8.RuneCountInString(in.stringValue())
		return outcome(name, in, holds(n, rule.Value), rule.Error, fmt.Sprintf(fallback, rule.Value), rule.Guide), true
	})
}

// MinLength counts runes of the string-coerced value.
func MinLength() Validator {
	return lengthValidator(RuleMinLength,
		func(o model.ValidationOptions) *model.LengthRule { return o.MinLength },
		func(n, bound int) bool { return n >= bound },
		DefaultMessages.MinLength)
}

// MaxLength counts runes of the string-coerced value.
func MaxLength() Validator {
	return lengthValidator(RuleMaxLength,
		func(o model.ValidationOptions) *model.LengthRule { return o.MaxLength },
		func(n, bound int) bool { return n <= bound },
		DefaultMessages.MaxLength)
}

// Pattern fails when the string-coerced value does not match. Expressions
// are unanchored and compiled through patterns.
func Pattern(patterns *Patterns) Validator {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return Func(RulePattern, func(in Input) (Result, bool) {
		rule := in.Options.Pattern
		if rule == nil || rule.Value == "" {
			return Result{}, false
		}
		if !in.HasValue {
			return outcome(RulePattern, in, true, rule.Error, "", rule.Guide), true
		}
		re, err := patterns.Compile(rule.Value)
		if err != nil {
			return outcome(RulePattern, in, false, rule.Error, err.Error(), rule.Guide), true
		}
		return outcome(RulePattern, in, re.MatchString(in.stringValue()), rule.Error, DefaultMessages.Pattern, rule.Guide), true
	})
}

// CheckOptions reports configuration errors that must surface when a field
// is registered rather than on every keystroke.
func CheckOptions(opts model.ValidationOptions, patterns *Patterns) error {
	if opts.Pattern == nil || opts.Pattern.Value == "" {
		return nil
	}
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	_, err := patterns.Compile(opts.Pattern.Value)
	return err
}
