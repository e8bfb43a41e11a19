// Package validation holds the rule pipeline fields run their values
// through. Validators are independent and stateless: each consumes the same
// Input and produces at most one Result, and the pipeline always runs every
// validator so callers receive one result per configured rule. A reset
// trigger short-circuits to an empty result list.
package validation

// Validator evaluates one rule. The boolean is false when the rule is not
// configured for the input, in which case no result is recorded.
type Validator interface {
	Name() string
	Validate(in Input) (Result, bool)
}

type funcValidator struct {
	name string
	fn   func(Input) (Result, bool)
}

func (v funcValidator) Name() string                     { return v.name }
func (v funcValidator) Validate(in Input) (Result, bool) { return v.fn(in) }

// Func adapts a function into a named Validator.
func Func(name string, fn func(Input) (Result, bool)) Validator {
	return funcValidator{name: name, fn: fn}
}

// Pipeline is an ordered list of validators. It is immutable once built and
// safe to share between fields.
type Pipeline struct {
	validators []Validator
}

// New builds a pipeline; nil validators are skipped.
func New(validators ...Validator) *Pipeline {
	p := &Pipeline{}
	for _, v := range validators {
		if v != nil {
			p.validators = append(p.validators, v)
		}
	}
	return p
}

// Default returns the built-in rules in canonical order, sharing the
// package-level pattern cache.
func Default() *Pipeline {
	return New(
		Required(),
		Min(),
		Max(),
		MinLength(),
		MaxLength(),
		Pattern(DefaultPatterns()),
	)
}

// With returns a copy with extra validators appended.
func (p *Pipeline) With(validators ...Validator) *Pipeline {
	combined := append(append([]Validator(nil), p.validators...), validators...)
	return New(combined...)
}

// Names lists validator names in evaluation order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.validators))
	for i, v := range p.validators {
		out[i] = v.Name()
	}
	return out
}

// Validate runs every validator in order and collects all results.
func (p *Pipeline) Validate(in Input) []Result {
	results := []Result{}
	if in.Origin.TriggerMode == TriggerReset {
		return results
	}
	for _, v := range p.validators {
		result, ok := v.Validate(in)
		if !ok {
			continue
		}
		if result.Rule == "" {
			result.Rule = v.Name()
		}
		if result.FieldName == "" {
			result.FieldName = in.FieldName
		}
		results = append(results, result)
	}
	return results
}
