// Package field implements the per-field state machine. A Field owns its
// value, the derived flags (pristine, dirty, focused, valid, hasErrors,
// enabled, loaded) and the last validation results. UI bindings drive it
// through the trigger entry points (OnChange, OnFocus, OnBlur, OnClick,
// Clear); each entry point updates the flags, requests a gated validation
// pass and notifies through the embedded notifier.Hub.
//
// A Field is not safe for concurrent use. Every entry point runs to
// completion, including the notifier dispatch it causes, before returning.
package field

import (
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notifier"
	"github.com/goliatone/go-formstate/pkg/parsing"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// ErrNameRequired is returned when a descriptor has no name.
var ErrNameRequired = errors.New("field: name is required")

// ErrInvalidExpectedValue is returned when a descriptor's expected value does
// not coerce under the field's kind.
var ErrInvalidExpectedValue = errors.New("field: expected value does not parse")

// Event is the payload every notification carries.
type Event struct {
	Field   *Field
	Value   any
	Trigger validation.TriggerMode
}

// Field is the runtime entity built from a model.Descriptor.
type Field struct {
	notifier.Hub

	id          string
	name        string
	label       string
	fieldType   model.FieldType
	kind        model.Kind
	multiple    bool
	placeholder string
	description string
	rules       model.ValidationOptions
	expected    any
	validates   bool

	options         []model.Option
	originalOptions []model.Option

	value         any
	originalValue any

	isValid    bool
	isDirty    bool
	isPristine bool
	isFocus    bool
	hasErrors  bool
	loaded     bool
	changed    bool
	enabled    bool

	results       []validation.Result
	lastTrigger   validation.TriggerMode
	modes         validation.Modes
	modesSet      bool
	formSubmitted bool

	pipeline *validation.Pipeline
	parsers  *parsing.Strategy
	logger   logging.Logger
	theme    *theme.RendererConfig
	ref      Ref
}

// New builds a Field from desc. A malformed pattern rule is a fatal
// configuration error and is returned here rather than on every keystroke.
func New(desc model.Descriptor, options ...Option) (*Field, error) {
	if desc.Name == "" {
		return nil, ErrNameRequired
	}

	f := &Field{
		id:          desc.ID,
		name:        desc.Name,
		label:       desc.Label,
		fieldType:   desc.Type,
		kind:        desc.Kind(),
		multiple:    desc.Multiple,
		placeholder: desc.Placeholder,
		description: desc.Description,
		rules:       desc.Validation.Clone(),
		expected:    CloneValue(desc.ExpectedValue),
		validates:   desc.Validates(),
		options:     cloneOptions(desc.Options),
		isValid:     true,
		isPristine:  true,
		enabled:     !desc.Disabled,
		results:     []validation.Result{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}

	f.logger = logging.OrDefault(f.logger)
	if f.pipeline == nil {
		f.pipeline = validation.Default()
	}
	if f.parsers == nil {
		f.parsers = parsing.Default(parsing.WithLogger(f.logger))
	}
	f.Hub = notifier.NewHub(f.logger)

	if f.id == "" {
		f.id = f.name
	}
	if f.label == "" {
		f.label = model.DefaultLabeler(f.name)
	}
	if !f.modesSet {
		f.modes = f.descriptorModes(desc.TriggerModes)
	}

	if err := validation.CheckOptions(f.rules, validation.DefaultPatterns()); err != nil {
		return nil, fmt.Errorf("field %s: %w", f.name, err)
	}
	if f.expected != nil {
		if _, ok := f.parsers.Value(f.kind, f.expected); !ok {
			return nil, fmt.Errorf("%w: field %s expects %v as %s", ErrInvalidExpectedValue, f.name, f.expected, f.kind)
		}
	}

	f.value = CloneValue(desc.InitialValue())
	if f.value == nil && f.fieldType.IsChoice() {
		f.value = f.valueFromOptions()
	}
	f.syncOptionsFromValue()
	f.originalValue = CloneValue(f.value)
	f.originalOptions = cloneOptions(f.options)

	return f, nil
}

func (f *Field) descriptorModes(names []string) validation.Modes {
	if len(names) == 0 {
		return validation.DefaultModes()
	}
	modes, err := validation.ParseModes(names)
	if err != nil {
		f.logger.Warning("field ", f.name, ": ", err.Error())
	}
	return modes
}

// valueFromOptions derives the value implied by the checked options.
func (f *Field) valueFromOptions() any {
	switch {
	case f.kind == model.KindList:
		var checked []string
		for _, opt := range f.options {
			if opt.Checked {
				checked = append(checked, opt.Value)
			}
		}
		if len(checked) == 0 {
			return nil
		}
		return checked
	case f.kind == model.KindBoolean:
		if len(f.options) == 0 {
			return nil
		}
		return f.options[0].Checked
	default:
		for _, opt := range f.options {
			if opt.Checked {
				return opt.Value
			}
		}
		return nil
	}
}

// syncOptionsFromValue marks options checked according to the current value.
func (f *Field) syncOptionsFromValue() {
	if len(f.options) == 0 {
		return
	}
	switch v := f.value.(type) {
	case []string:
		set := make(map[string]struct{}, len(v))
		for _, s := range v {
			set[s] = struct{}{}
		}
		for i := range f.options {
			_, f.options[i].Checked = set[f.options[i].Value]
		}
	case string:
		for i := range f.options {
			f.options[i].Checked = f.options[i].Value == v
		}
	case bool:
		if f.kind == model.KindBoolean {
			f.options[0].Checked = v
		}
	case nil:
		for i := range f.options {
			f.options[i].Checked = false
		}
	}
}

func (f *Field) recomputeDirty() {
	f.isDirty = !Equal(f.value, f.originalValue)
}

func (f *Field) event(trigger validation.TriggerMode) Event {
	return Event{Field: f, Value: f.value, Trigger: trigger}
}
