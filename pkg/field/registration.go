package field

import (
	"strings"
)

// Control is the UI element a binding attaches to a field. Bindings that
// cannot focus or check simply no-op.
type Control interface {
	Focus()
	Blur()
	Checked() bool
	SetChecked(checked bool)
}

// Ref holds the controls bound to a field: the main control plus one control
// per option for choice fields.
type Ref struct {
	control Control
	options map[string]Control
}

// Bind attaches the main control.
func (r *Ref) Bind(c Control) {
	r.control = c
}

// BindOption attaches the control rendering the option with value.
func (r *Ref) BindOption(value string, c Control) {
	if r.options == nil {
		r.options = make(map[string]Control)
	}
	if c == nil {
		delete(r.options, value)
		return
	}
	r.options[value] = c
}

// Bound reports whether any control is attached.
func (r *Ref) Bound() bool {
	return r.control != nil || len(r.options) > 0
}

// Release detaches every control.
func (r *Ref) Release() {
	r.control = nil
	r.options = nil
}

func (r *Ref) uncheckAll() {
	if r.control != nil {
		r.control.SetChecked(false)
	}
	for _, c := range r.options {
		c.SetChecked(false)
	}
}

// Handlers are the entry points a binding wires to its UI events.
type Handlers struct {
	OnChange func(value any)
	OnBlur   func()
	OnFocus  func()
	OnClick  func()
}

// Registration is what a binding receives when it registers a field.
type Registration struct {
	Handlers Handlers
	Ref      *Ref
	field    *Field
}

// ClassNames returns the class list for the field's current state.
func (r Registration) ClassNames() string {
	return r.field.ClassNames()
}

// Register returns the handlers and control holder for a binding.
func (f *Field) Register() Registration {
	return Registration{
		Handlers: Handlers{
			OnChange: f.OnChange,
			OnBlur:   f.OnBlur,
			OnFocus:  f.OnFocus,
			OnClick:  f.OnClick,
		},
		Ref:   &f.ref,
		field: f,
	}
}

// Theme token keys consulted by ClassNames.
const (
	TokenField    = "field"
	TokenDirty    = "field.dirty"
	TokenFocus    = "field.focus"
	TokenError    = "field.error"
	TokenDisabled = "field.disabled"
	TokenPristine = "field.pristine"
)

var defaultClassTokens = map[string]string{
	TokenField:    "field",
	TokenDirty:    "is-dirty",
	TokenFocus:    "is-focused",
	TokenError:    "has-error",
	TokenDisabled: "is-disabled",
	TokenPristine: "is-pristine",
}

// ClassNames joins the theme classes matching the current flags. Tokens
// missing from the theme fall back to the built-in names; a token set to the
// empty string suppresses the class.
func (f *Field) ClassNames() string {
	classes := []string{f.classToken(TokenField)}
	if f.isPristine {
		classes = append(classes, f.classToken(TokenPristine))
	}
	if f.isDirty {
		classes = append(classes, f.classToken(TokenDirty))
	}
	if f.isFocus {
		classes = append(classes, f.classToken(TokenFocus))
	}
	if f.hasErrors && f.lastTrigger.ShowsErrors() {
		classes = append(classes, f.classToken(TokenError))
	}
	if !f.enabled {
		classes = append(classes, f.classToken(TokenDisabled))
	}

	out := classes[:0]
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

func (f *Field) classToken(key string) string {
	if f.theme != nil && f.theme.Tokens != nil {
		if v, ok := f.theme.Tokens[key]; ok {
			return v
		}
	}
	return defaultClassTokens[key]
}

// Dispose drops observers and bound controls. Notifiers stay registered.
func (f *Field) Dispose() {
	f.Hub.Dispose()
	f.ref.Release()
}
