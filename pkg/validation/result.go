package validation

import "github.com/goliatone/go-formstate/pkg/model"

// Origin records what requested a validation pass.
type Origin struct {
	TriggerMode TriggerMode
}

// Input is built fresh for every pass and never retained.
type Input struct {
	FieldName string
	Type      model.FieldType
	Kind      model.Kind
	Options   model.ValidationOptions
	// Value is the coerced value; HasValue is false when the parser reported
	// no value.
	Value         any
	HasValue      bool
	ExpectedValue any
	Origin        Origin
	Stringify     func(any) string
}

func (in Input) stringValue() string {
	if in.Stringify != nil {
		return in.Stringify(in.Value)
	}
	if s, ok := in.Value.(string); ok {
		return s
	}
	return ""
}

// Message is a renderable text slot.
type Message struct {
	Message string `json:"message"`
}

// Result is the outcome of one rule.
type Result struct {
	Rule      string   `json:"rule"`
	State     bool     `json:"state"`
	FieldName string   `json:"fieldName"`
	Error     *Message `json:"error,omitempty"`
	Guide     *Message `json:"guide,omitempty"`
}

// Passed reports whether every result holds. An empty list passes.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.State {
			return false
		}
	}
	return true
}

// Failed reports whether any result fails.
func Failed(results []Result) bool {
	return !Passed(results)
}

// Errors returns the error messages of failing results in rule order.
func Errors(results []Result) []string {
	var out []string
	for _, r := range results {
		if !r.State && r.Error != nil && r.Error.Message != "" {
			out = append(out, r.Error.Message)
		}
	}
	return out
}

// Guides returns every configured guide message in rule order.
func Guides(results []Result) []string {
	var out []string
	for _, r := range results {
		if r.Guide != nil && r.Guide.Message != "" {
			out = append(out, r.Guide.Message)
		}
	}
	return out
}
