package field

import (
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// State is an immutable snapshot for bindings. Errors are only populated
// when the last pass came from a trigger that shows errors; Guides likewise
// for guide-showing triggers.
type State struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Label       string                 `json:"label"`
	Type        model.FieldType        `json:"type"`
	Value       any                    `json:"value"`
	Options     []model.Option         `json:"options,omitempty"`
	Placeholder string                 `json:"placeholder,omitempty"`
	Description string                 `json:"description,omitempty"`
	Valid       bool                   `json:"valid"`
	Dirty       bool                   `json:"dirty"`
	Pristine    bool                   `json:"pristine"`
	Focused     bool                   `json:"focused"`
	HasErrors   bool                   `json:"hasErrors"`
	Enabled     bool                   `json:"enabled"`
	Loaded      bool                   `json:"loaded"`
	Changed     bool                   `json:"changed"`
	Trigger     validation.TriggerMode `json:"trigger,omitempty"`
	Results     []validation.Result    `json:"results"`
	Errors      []string               `json:"errors,omitempty"`
	Guides      []string               `json:"guides,omitempty"`
	ClassNames  string                 `json:"classNames"`
}

// State returns a snapshot that does not alias the field.
func (f *Field) State() State {
	s := State{
		ID:          f.id,
		Name:        f.name,
		Label:       f.label,
		Type:        f.fieldType,
		Value:       CloneValue(f.value),
		Options:     cloneOptions(f.options),
		Placeholder: f.placeholder,
		Description: f.description,
		Valid:       f.isValid,
		Dirty:       f.isDirty,
		Pristine:    f.isPristine,
		Focused:     f.isFocus,
		HasErrors:   f.hasErrors,
		Enabled:     f.enabled,
		Loaded:      f.loaded,
		Changed:     f.changed,
		Trigger:     f.lastTrigger,
		Results:     f.Results(),
		ClassNames:  f.ClassNames(),
	}
	if f.lastTrigger.ShowsErrors() {
		s.Errors = validation.Errors(f.results)
	}
	if f.lastTrigger.ShowsGuides() {
		s.Guides = validation.Guides(f.results)
	}
	return s
}

// ID returns the field id, which defaults to its name.
func (f *Field) ID() string { return f.id }

// Name returns the descriptor name.
func (f *Field) Name() string { return f.name }

// Label returns the display label.
func (f *Field) Label() string { return f.label }

// Type returns the field type.
func (f *Field) Type() model.FieldType { return f.fieldType }

// Kind returns the kind values are coerced into.
func (f *Field) Kind() model.Kind { return f.kind }

// Multiple reports whether the field holds several checked options.
func (f *Field) Multiple() bool { return f.multiple }

// Placeholder returns the input placeholder.
func (f *Field) Placeholder() string { return f.placeholder }

// Description returns the help text.
func (f *Field) Description() string { return f.description }

// Rules returns a copy of the configured rules.
func (f *Field) Rules() model.ValidationOptions { return f.rules.Clone() }

// ShouldValidate reports whether the form runs this field on validate-all.
func (f *Field) ShouldValidate() bool { return f.validates }

// IsValid reports whether every result of the last pass succeeded.
func (f *Field) IsValid() bool { return f.isValid }

// IsDirty reports whether the value differs from the original value.
func (f *Field) IsDirty() bool { return f.isDirty }

// IsPristine reports whether no input arrived since construction or the last
// Reset or Clear.
func (f *Field) IsPristine() bool { return f.isPristine }

// IsFocused reports whether the field holds focus.
func (f *Field) IsFocused() bool { return f.isFocus }

// HasErrors reports whether any result of the last pass failed.
func (f *Field) HasErrors() bool { return f.hasErrors }

// IsEnabled reports whether the field accepts input.
func (f *Field) IsEnabled() bool { return f.enabled }

// IsLoaded reports whether MarkLoaded was called.
func (f *Field) IsLoaded() bool { return f.loaded }

// IsChanged reports whether a change or click was applied since the last
// Reset or Clear.
func (f *Field) IsChanged() bool { return f.changed }

// LastTrigger returns the effective trigger of the last validation pass.
func (f *Field) LastTrigger() validation.TriggerMode { return f.lastTrigger }

// TriggerModes returns a copy of the configured trigger modes.
func (f *Field) TriggerModes() validation.Modes { return f.modes.Clone() }

// Value returns a copy of the raw value.
func (f *Field) Value() any { return CloneValue(f.value) }

// OriginalValue returns a copy of the dirty-tracking baseline.
func (f *Field) OriginalValue() any { return CloneValue(f.originalValue) }

// Options returns a copy of the choice options with their checked state.
func (f *Field) Options() []model.Option { return cloneOptions(f.options) }

// ParsedValue coerces the value through the field's parsing strategy.
func (f *Field) ParsedValue() (any, bool) {
	return f.parsers.Value(f.kind, f.value)
}

// Results returns a copy of the last validation results.
func (f *Field) Results() []validation.Result {
	return append([]validation.Result{}, f.results...)
}
