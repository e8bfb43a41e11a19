package field_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notifier"
)

type stubControl struct {
	checked bool
	focused int
	blurred int
}

func (c *stubControl) Focus()                  { c.focused++ }
func (c *stubControl) Blur()                   { c.blurred++ }
func (c *stubControl) Checked() bool           { return c.checked }
func (c *stubControl) SetChecked(checked bool) { c.checked = checked }

func TestSetFocusWithoutControlIsNoop(t *testing.T) {
	f := newField(t, model.Descriptor{Name: "title"})
	f.SetFocus()
	if f.IsFocused() {
		t.Fatalf("unbound field must not become focused")
	}

	ctrl := &stubControl{}
	f.Register().Ref.Bind(ctrl)
	f.SetFocus()
	if ctrl.focused != 1 {
		t.Fatalf("bound control should receive focus, got %d", ctrl.focused)
	}
}

func TestDisableBlursFocusedField(t *testing.T) {
	f := newField(t, model.Descriptor{Name: "title"})
	ctrl := &stubControl{}
	reg := f.Register()
	reg.Ref.Bind(ctrl)

	var events []notifier.EventType
	for _, typ := range []notifier.EventType{notifier.EventBlurred, notifier.EventEnabled, notifier.EventFocused} {
		typ := typ
		f.Accept(notifier.Notifier{ID: string(typ), Type: typ, Method: func(any) { events = append(events, typ) }})
	}

	reg.Handlers.OnFocus()
	f.Enable(false)
	if f.IsFocused() || f.IsEnabled() || ctrl.blurred != 1 {
		t.Fatalf("disable should blur then disable: %#v", f.State())
	}

	f.Enable(true)
	if f.IsFocused() {
		t.Fatalf("re-enable must not restore focus")
	}

	want := []notifier.EventType{notifier.EventFocused, notifier.EventBlurred, notifier.EventEnabled, notifier.EventEnabled}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestOnClickSingleCheckbox(t *testing.T) {
	f := newField(t, model.Descriptor{Name: "terms", Type: model.FieldTypeCheckbox})
	clicks := 0
	f.Accept(notifier.Notifier{Type: notifier.EventClicked, Method: func(any) { clicks++ }})

	f.OnClick()
	if clicks != 0 {
		t.Fatalf("unbound click should be ignored")
	}

	ctrl := &stubControl{checked: true}
	f.Register().Ref.Bind(ctrl)
	f.OnClick()
	if f.Value() != true || !f.IsDirty() || clicks != 1 {
		t.Fatalf("click should derive true: %#v", f.State())
	}
	if len(f.Results()) != 0 {
		t.Fatalf("click must not validate")
	}
}

func TestOnClickMultipleAndRadio(t *testing.T) {
	multi := newField(t, model.Descriptor{
		Name:     "tags",
		Type:     model.FieldTypeCheckbox,
		Multiple: true,
		Options:  []model.Option{{Value: "a"}, {Value: "b"}, {Value: "c"}},
	})
	controls := map[string]*stubControl{"a": {checked: true}, "b": {}, "c": {checked: true}}
	ref := multi.Register().Ref
	for value, c := range controls {
		ref.BindOption(value, c)
	}
	multi.OnClick()
	if diff := cmp.Diff([]string{"a", "c"}, multi.Value()); diff != "" {
		t.Fatalf("multi value mismatch (-want +got):\n%s", diff)
	}

	radio := newField(t, model.Descriptor{
		Name:    "size",
		Type:    model.FieldTypeRadio,
		Options: []model.Option{{Value: "s"}, {Value: "m"}},
	})
	radioRef := radio.Register().Ref
	radioRef.BindOption("s", &stubControl{})
	radioRef.BindOption("m", &stubControl{checked: true})
	radio.OnClick()
	if radio.Value() != "m" {
		t.Fatalf("radio value = %#v, want m", radio.Value())
	}
}

func TestClearUnchecksBoundControls(t *testing.T) {
	f := newField(t, model.Descriptor{
		Name:    "size",
		Type:    model.FieldTypeRadio,
		Options: []model.Option{{Value: "s", Checked: true}},
	})
	ctrl := &stubControl{checked: true}
	f.Register().Ref.BindOption("s", ctrl)

	f.Clear()
	if ctrl.checked {
		t.Fatalf("clear should uncheck bound controls")
	}
	if opts := f.Options(); opts[0].Checked {
		t.Fatalf("clear should uncheck options: %#v", opts)
	}
}

func TestClassNamesUseThemeTokens(t *testing.T) {
	cfg := &theme.RendererConfig{Tokens: map[string]string{
		field.TokenField: "form-field",
		field.TokenDirty: "border-amber-500",
		field.TokenFocus: "",
	}}
	f := newField(t, model.Descriptor{Name: "title"}, field.WithTheme(cfg))
	reg := f.Register()

	if got := reg.ClassNames(); got != "form-field is-pristine" {
		t.Fatalf("unexpected initial classes %q", got)
	}

	reg.Handlers.OnFocus()
	reg.Handlers.OnChange("x")
	if got := reg.ClassNames(); got != "form-field border-amber-500" {
		t.Fatalf("unexpected classes %q", got)
	}

	f.Enable(false)
	if got := f.ClassNames(); got != "form-field border-amber-500 is-disabled" {
		t.Fatalf("unexpected disabled classes %q", got)
	}
}
