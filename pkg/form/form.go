// Package form composes fields into a form. The form never validates on its
// own: it subscribes to each field's mutation observer and derives aggregate
// dirty and valid flags from the fields' own state.
//
// A Form is not safe for concurrent use.
package form

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notifier"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// ErrDuplicateField is returned by Build when two descriptors share a name.
var ErrDuplicateField = errors.New("form: duplicate field name")

// Event is the payload of form notifications.
type Event struct {
	Form *Form
}

// Option configures a Form.
type Option func(*Form)

// WithLogger routes warnings to l.
func WithLogger(l logging.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithFieldOptions applies opts to every field Build creates.
func WithFieldOptions(opts ...field.Option) Option {
	return func(f *Form) {
		f.fieldOptions = append(f.fieldOptions, opts...)
	}
}

type entry struct {
	field  *field.Field
	origin any
}

// Form aggregates fields.
type Form struct {
	notifier.Hub

	entries      []entry
	isValid      bool
	isDirty      bool
	isBusy       bool
	suspended    bool
	submitted    int
	logger       logging.Logger
	fieldOptions []field.Option
}

// New builds an empty form.
func New(opts ...Option) *Form {
	f := &Form{isValid: true}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.logger = logging.OrDefault(f.logger)
	f.Hub = notifier.NewHub(f.logger)
	return f
}

// Build creates one field per descriptor and adds them all.
func Build(descs []model.Descriptor, opts ...Option) (*Form, error) {
	f := New(opts...)
	seen := make(map[string]struct{}, len(descs))
	fields := make([]*field.Field, 0, len(descs))
	for _, desc := range descs {
		if _, dup := seen[desc.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, desc.Name)
		}
		seen[desc.Name] = struct{}{}
		fieldOpts := append([]field.Option{field.WithLogger(f.logger)}, f.fieldOptions...)
		fld, err := field.New(desc, fieldOpts...)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fld)
	}
	f.AddFields(fields...)
	return f, nil
}

// AddFields registers each field once, snapshots its value as the origin and
// subscribes the form to its mutations.
func (f *Form) AddFields(fields ...*field.Field) {
	added := false
	for _, fld := range fields {
		if fld == nil || f.index(fld) >= 0 {
			continue
		}
		f.entries = append(f.entries, entry{field: fld, origin: fld.Value()})
		fld.Subscribe(f, f.CheckChanges)
		if f.submitted > 0 {
			fld.SetFormSubmitted(true)
		}
		added = true
	}
	if added {
		f.CheckChanges()
	}
}

// RemoveField detaches the field called name.
func (f *Form) RemoveField(name string) bool {
	for i, e := range f.entries {
		if e.field.Name() != name {
			continue
		}
		e.field.Unsubscribe(f)
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
		f.CheckChanges()
		return true
	}
	return false
}

func (f *Form) index(fld *field.Field) int {
	for i, e := range f.entries {
		if e.field == fld {
			return i
		}
	}
	return -1
}

// Field looks a field up by name.
func (f *Form) Field(name string) (*field.Field, bool) {
	for _, e := range f.entries {
		if e.field.Name() == name {
			return e.field, true
		}
	}
	return nil, false
}

// Fields returns the fields in registration order.
func (f *Form) Fields() []*field.Field {
	out := make([]*field.Field, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.field
	}
	return out
}

// CheckChanges recomputes the aggregate flags and broadcasts. It does
// nothing while a bulk Reset or Clear is running.
func (f *Form) CheckChanges() {
	if f.suspended {
		return
	}
	dirty := false
	valid := true
	for _, e := range f.entries {
		if !field.Equal(e.field.Value(), e.origin) {
			dirty = true
		}
		if !e.field.IsValid() {
			valid = false
		}
	}
	f.isDirty = dirty
	f.isValid = valid
	f.Notify(notifier.EventChanged, Event{Form: f})
}

// ValidateAll runs a forced onSubmit pass on every field that opts into
// validation and returns the aggregate validity.
func (f *Form) ValidateAll() bool {
	for _, e := range f.entries {
		if e.field.ShouldValidate() {
			e.field.ValidateForSubmit()
		}
	}
	f.CheckChanges()
	return f.isValid
}

// HandleValidation is ValidateAll.
func (f *Form) HandleValidation() bool {
	return f.ValidateAll()
}

// Submit marks the form submitted, validates every field and reports the
// result. Fields configured with onFormFirstSubmit start validating live
// from here on.
func (f *Form) Submit() bool {
	f.submitted++
	for _, e := range f.entries {
		e.field.SetFormSubmitted(true)
	}
	return f.ValidateAll()
}

// SetIsBusy sets the coarse loading indicator and broadcasts.
func (f *Form) SetIsBusy(busy bool) {
	f.isBusy = busy
	f.Notify(notifier.EventBusy, Event{Form: f})
}

// IsValid reports whether every field was valid at the last recompute.
func (f *Form) IsValid() bool { return f.isValid }

// IsDirty reports whether any field value differs from its origin.
func (f *Form) IsDirty() bool { return f.isDirty }

// IsBusy reports the loading indicator set by SetIsBusy.
func (f *Form) IsBusy() bool { return f.isBusy }

// Submitted counts Submit calls since construction or the last Reset.
func (f *Form) Submitted() int { return f.submitted }

// Values maps field names to copies of their current values.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.entries))
	for _, e := range f.entries {
		out[e.field.Name()] = e.field.Value()
	}
	return out
}

// Results maps field names to their last validation results.
func (f *Form) Results() map[string][]validation.Result {
	out := make(map[string][]validation.Result, len(f.entries))
	for _, e := range f.entries {
		out[e.field.Name()] = e.field.Results()
	}
	return out
}

// Failures returns the failing results of every field in field order.
func (f *Form) Failures() []validation.Result {
	var out []validation.Result
	for _, e := range f.entries {
		for _, r := range e.field.Results() {
			if !r.State {
				out = append(out, r)
			}
		}
	}
	return out
}

// Reset restores every field to its original value.
func (f *Form) Reset() {
	f.each(func(fld *field.Field) { fld.Reset() })
	f.submitted = 0
	for _, e := range f.entries {
		e.field.SetFormSubmitted(false)
	}
	f.CheckChanges()
}

// Clear empties every field.
func (f *Form) Clear() {
	f.each(func(fld *field.Field) { fld.Clear() })
	f.CheckChanges()
}

// Commit makes the current values the new origin.
func (f *Form) Commit() {
	for i := range f.entries {
		f.entries[i].field.Commit()
		f.entries[i].origin = f.entries[i].field.Value()
	}
	f.CheckChanges()
}

// each runs fn on every field with CheckChanges suspended. Subscriptions stay
// in place so observer order on the fields is unchanged; callers recompute
// once at the end.
func (f *Form) each(fn func(*field.Field)) {
	f.suspended = true
	defer func() { f.suspended = false }()
	for _, e := range f.entries {
		fn(e.field)
	}
}

// Dispose detaches the form from its fields and drops its own observers.
func (f *Form) Dispose() {
	for _, e := range f.entries {
		e.field.Unsubscribe(f)
	}
	f.Hub.Dispose()
}

type snapshot struct {
	Valid     bool                           `json:"valid"`
	Dirty     bool                           `json:"dirty"`
	Busy      bool                           `json:"busy"`
	Submitted int                            `json:"submitted"`
	Values    map[string]any                 `json:"values"`
	Results   map[string][]validation.Result `json:"results"`
}

// MarshalJSON encodes values and aggregate flags.
func (f *Form) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		Valid:     f.isValid,
		Dirty:     f.isDirty,
		Busy:      f.isBusy,
		Submitted: f.submitted,
		Values:    f.Values(),
		Results:   f.Results(),
	})
}
