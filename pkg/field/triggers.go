package field

import (
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notifier"
	"github.com/goliatone/go-formstate/pkg/parsing"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// OnChange stores value, recomputes dirty and requests an onChange pass.
// Disabled fields ignore it.
func (f *Field) OnChange(value any) {
	if !f.enabled {
		return
	}
	f.value = CloneValue(value)
	f.changed = true
	f.isPristine = false
	f.recomputeDirty()
	f.syncOptionsFromValue()
	f.apply(f.effective(validation.TriggerChange))
	f.Notify(notifier.EventChanged, f.event(validation.TriggerChange))
}

// OnFocus marks the field focused and non-pristine.
func (f *Field) OnFocus() {
	if !f.enabled {
		return
	}
	f.isFocus = true
	f.isPristine = false
	f.apply(f.effective(validation.TriggerFocus))
	f.Notify(notifier.EventFocused, f.event(validation.TriggerFocus))
}

// OnBlur clears focus and requests an onBlur pass.
func (f *Field) OnBlur() {
	f.isFocus = false
	f.apply(f.effective(validation.TriggerBlur))
	f.Notify(notifier.EventBlurred, f.event(validation.TriggerBlur))
}

// OnClick derives the value of a choice field from its bound controls. It
// never validates. Non-choice fields and fields without bound controls are
// left untouched.
func (f *Field) OnClick() {
	if !f.enabled || !f.fieldType.IsChoice() || !f.ref.Bound() {
		return
	}
	for i := range f.options {
		if c, ok := f.ref.options[f.options[i].Value]; ok && c != nil {
			f.options[i].Checked = c.Checked()
		}
	}

	if f.kind == model.KindBoolean && f.ref.control != nil {
		f.value = f.ref.control.Checked()
		f.syncOptionsFromValue()
	} else {
		f.value = f.valueFromOptions()
	}
	f.changed = true
	f.isPristine = false
	f.recomputeDirty()
	f.Notify(notifier.EventClicked, f.event(""))
}

// Clear empties the value, unchecks bound choice controls and runs a reset
// pass, which leaves valid and hasErrors as they were.
func (f *Field) Clear() {
	f.value = nil
	for i := range f.options {
		f.options[i].Checked = false
	}
	f.ref.uncheckAll()
	f.isPristine = true
	f.changed = false
	f.recomputeDirty()
	f.apply(validation.TriggerReset)
	f.Notify(notifier.EventValidate, f.event(validation.TriggerReset))
	f.Notify(notifier.EventChanged, f.event(validation.TriggerReset))
}

// Reset restores the original value and options and the pristine flag.
func (f *Field) Reset() {
	f.value = CloneValue(f.originalValue)
	f.options = cloneOptions(f.originalOptions)
	f.isPristine = true
	f.isFocus = false
	f.changed = false
	f.isDirty = false
	f.isValid = true
	f.hasErrors = false
	f.apply(validation.TriggerReset)
	f.Notify(notifier.EventChanged, f.event(validation.TriggerReset))
}

// Commit makes the current value the new baseline for dirty tracking.
func (f *Field) Commit() {
	f.originalValue = CloneValue(f.value)
	f.originalOptions = cloneOptions(f.options)
	f.recomputeDirty()
}

// Enable toggles interactivity. Disabling a focused field blurs it first;
// enabling never restores focus.
func (f *Field) Enable(enabled bool) {
	if f.enabled == enabled {
		return
	}
	if !enabled && f.isFocus {
		f.OnBlur()
		if f.ref.control != nil {
			f.ref.control.Blur()
		}
	}
	f.enabled = enabled
	f.Notify(notifier.EventEnabled, f.event(""))
}

// SetFocus focuses the bound control. Without one it does nothing.
func (f *Field) SetFocus() {
	if !f.enabled || f.ref.control == nil {
		return
	}
	f.ref.control.Focus()
}

// Validate requests a pass with mode, gated by the configured trigger modes,
// and returns the results it produced.
func (f *Field) Validate(mode validation.TriggerMode) []validation.Result {
	effective := f.effective(mode)
	f.apply(effective)
	f.Notify(notifier.EventValidate, f.event(effective))
	return f.Results()
}

// ValidateForSubmit runs an onSubmit pass regardless of configuration.
func (f *Field) ValidateForSubmit() []validation.Result {
	f.apply(validation.TriggerSubmit)
	f.Notify(notifier.EventValidate, f.event(validation.TriggerSubmit))
	return f.Results()
}

// SetFormSubmitted records whether the owning form has been submitted.
func (f *Field) SetFormSubmitted(submitted bool) {
	f.formSubmitted = submitted
}

// MarkLoaded flags the field loaded and requests an onLoad pass.
func (f *Field) MarkLoaded() {
	f.loaded = true
	f.apply(f.effective(validation.TriggerLoad))
	f.Notify(notifier.EventLoaded, f.event(validation.TriggerLoad))
}

// effective maps a requested trigger to the one that actually runs. Fields
// configured with onFormFirstSubmit start honouring onChange and onBlur once
// the form has been submitted.
func (f *Field) effective(requested validation.TriggerMode) validation.TriggerMode {
	if f.formSubmitted && f.modes.Has(validation.TriggerFormFirstSubmit) {
		switch requested {
		case validation.TriggerChange, validation.TriggerBlur:
			return requested
		}
	}
	return f.modes.Effective(requested)
}

// apply runs the pipeline and stores its results. A reset pass stores the
// empty list and leaves the flags alone.
func (f *Field) apply(mode validation.TriggerMode) {
	results := f.pipeline.Validate(f.input(mode))
	f.lastTrigger = mode
	f.results = results
	if mode == validation.TriggerReset {
		return
	}
	f.isValid = validation.Passed(results)
	f.hasErrors = validation.Failed(results)
}

func (f *Field) input(mode validation.TriggerMode) validation.Input {
	value, has := f.parsers.Value(f.kind, f.value)
	var expected any
	if f.expected != nil {
		expected, _ = f.parsers.Value(f.kind, f.expected)
	}
	return validation.Input{
		FieldName:     f.name,
		Type:          f.fieldType,
		Kind:          f.kind,
		Options:       f.rules,
		Value:         value,
		HasValue:      has,
		ExpectedValue: expected,
		Origin:        validation.Origin{TriggerMode: mode},
		Stringify:     parsing.Stringify,
	}
}
