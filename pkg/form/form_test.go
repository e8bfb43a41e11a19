package form_test

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notifier"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func mustField(t *testing.T, desc model.Descriptor, opts ...field.Option) *field.Field {
	t.Helper()
	opts = append([]field.Option{field.WithLogger(logging.Nop())}, opts...)
	f, err := field.New(desc, opts...)
	if err != nil {
		t.Fatalf("new field %s: %v", desc.Name, err)
	}
	return f
}

func TestAggregationScenario(t *testing.T) {
	required := mustField(t, model.Descriptor{
		Name:       "name",
		Validation: model.ValidationOptions{Required: &model.RequiredRule{Enabled: true}},
	})
	free := mustField(t, model.Descriptor{Name: "notes"})

	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(required, free)

	if frm.ValidateAll() || frm.IsValid() {
		t.Fatalf("form with empty required field should be invalid")
	}

	required.OnChange("ok")
	if !frm.ValidateAll() || !frm.IsValid() {
		t.Fatalf("form should be valid once the required field is filled: %#v", frm.Results())
	}
}

func TestAddFieldsIsIdempotent(t *testing.T) {
	fld := mustField(t, model.Descriptor{Name: "name"})
	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(fld, fld)
	frm.AddFields(fld)

	if n := len(frm.Fields()); n != 1 {
		t.Fatalf("expected one field, got %d", n)
	}
	if n := fld.Observers(); n != 1 {
		t.Fatalf("expected one observer on the field, got %d", n)
	}
}

func TestOriginIsNotAliased(t *testing.T) {
	fld := mustField(t, model.Descriptor{
		Name:     "tags",
		Type:     model.FieldTypeCheckbox,
		Multiple: true,
		Value:    []string{"a"},
	})
	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(fld)

	if frm.IsDirty() {
		t.Fatalf("fresh form should be clean")
	}
	fld.OnChange([]string{"a", "b"})
	if !frm.IsDirty() {
		t.Fatalf("field change should make the form dirty")
	}
	fld.OnChange([]string{"a"})
	if frm.IsDirty() {
		t.Fatalf("restoring the value should make the form clean")
	}
}

func TestFieldChangesPropagateToFormObservers(t *testing.T) {
	fld := mustField(t, model.Descriptor{Name: "title"})
	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(fld)

	changes := 0
	frm.Accept(notifier.Notifier{Type: notifier.EventChanged, Method: func(any) { changes++ }})
	renders := 0
	frm.Subscribe(nil, func() { renders++ })

	fld.OnChange("x")
	if changes != 1 || renders != 1 {
		t.Fatalf("expected one change and one render, got %d/%d", changes, renders)
	}
}

func TestShouldValidateFalseIsSkipped(t *testing.T) {
	skipped := mustField(t, model.Descriptor{
		Name:           "internal",
		ShouldValidate: model.Bool(false),
		Validation:     model.ValidationOptions{Required: &model.RequiredRule{Enabled: true}},
	})
	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(skipped)

	if !frm.ValidateAll() {
		t.Fatalf("field opting out of validation must not fail the form")
	}
	if len(skipped.Results()) != 0 {
		t.Fatalf("skipped field should have no results")
	}
}

func TestSubmitEnablesFormFirstSubmitFields(t *testing.T) {
	fld := mustField(t, model.Descriptor{
		Name:       "email",
		Validation: model.ValidationOptions{Required: &model.RequiredRule{Enabled: true}},
	}, field.WithTriggerModes(validation.TriggerFormFirstSubmit))
	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(fld)

	if frm.Submit() {
		t.Fatalf("submit should fail with empty required field")
	}
	fld.OnChange("a@b.com")
	if !frm.IsValid() {
		t.Fatalf("after first submit changes should validate live: %#v", fld.State())
	}
	if frm.Submitted() != 1 {
		t.Fatalf("submitted = %d", frm.Submitted())
	}
}

func TestBuildRejectsDuplicates(t *testing.T) {
	_, err := form.Build([]model.Descriptor{{Name: "a"}, {Name: "a"}}, form.WithLogger(logging.Nop()))
	if !errors.Is(err, form.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestBuildPropagatesFieldErrors(t *testing.T) {
	_, err := form.Build([]model.Descriptor{{
		Name:       "code",
		Validation: model.ValidationOptions{Pattern: &model.PatternRule{Value: "("}},
	}}, form.WithLogger(logging.Nop()))
	if !errors.Is(err, validation.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestLookupRemoveAndValues(t *testing.T) {
	frm, err := form.Build([]model.Descriptor{
		{Name: "first", Value: "Ada"},
		{Name: "last", Value: "Lovelace"},
	}, form.WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, ok := frm.Field("first"); !ok {
		t.Fatalf("first should be found")
	}
	if _, ok := frm.Field("middle"); ok {
		t.Fatalf("middle should not exist")
	}
	if diff := cmp.Diff(map[string]any{"first": "Ada", "last": "Lovelace"}, frm.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	last, _ := frm.Field("last")
	if !frm.RemoveField("last") || frm.RemoveField("last") {
		t.Fatalf("remove should succeed exactly once")
	}
	last.OnChange("Byron")
	if frm.IsDirty() {
		t.Fatalf("removed field must not affect the form")
	}
}

func TestResetClearAndCommit(t *testing.T) {
	frm, err := form.Build([]model.Descriptor{{Name: "title", Value: "a"}}, form.WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	title, _ := frm.Field("title")

	title.OnChange("b")
	frm.Reset()
	if frm.IsDirty() || title.Value() != "a" {
		t.Fatalf("reset should restore values")
	}

	frm.Clear()
	if !frm.IsDirty() || title.Value() != nil {
		t.Fatalf("clear should empty values and mark the form dirty")
	}

	title.OnChange("c")
	frm.Commit()
	if frm.IsDirty() || title.IsDirty() {
		t.Fatalf("commit should rebaseline")
	}
}

func TestResetKeepsObserverOrder(t *testing.T) {
	fld := mustField(t, model.Descriptor{Name: "title", Value: "x"})
	frm := form.New(form.WithLogger(logging.Nop()))
	frm.AddFields(fld)

	var seen []bool
	fld.Subscribe("ui", func() { seen = append(seen, frm.IsDirty()) })

	fld.OnChange("y")
	frm.Reset()
	seen = nil
	fld.OnChange("y")

	if diff := cmp.Diff([]bool{true}, seen); diff != "" {
		t.Fatalf("observer after reset saw stale aggregate (-want +got):\n%s", diff)
	}
	if n := fld.Observers(); n != 2 {
		t.Fatalf("expected two observers on the field, got %d", n)
	}
}

func TestClearRecomputesOnce(t *testing.T) {
	frm, err := form.Build([]model.Descriptor{
		{Name: "first", Value: "Ada"},
		{Name: "last", Value: "Lovelace"},
	}, form.WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	changes := 0
	frm.Accept(notifier.Notifier{Type: notifier.EventChanged, Method: func(any) { changes++ }})

	frm.Clear()
	if changes != 1 || !frm.IsDirty() {
		t.Fatalf("expected one aggregate broadcast with a dirty form, got %d dirty=%v", changes, frm.IsDirty())
	}
}

func TestSetIsBusyNotifies(t *testing.T) {
	frm := form.New(form.WithLogger(logging.Nop()))
	busy := 0
	frm.Accept(notifier.Notifier{Type: notifier.EventBusy, Method: func(any) { busy++ }})
	frm.SetIsBusy(true)
	if !frm.IsBusy() || busy != 1 {
		t.Fatalf("busy flag not broadcast")
	}
}

func TestMarshalJSON(t *testing.T) {
	frm, err := form.Build([]model.Descriptor{{
		Name:       "name",
		Validation: model.ValidationOptions{Required: &model.RequiredRule{Enabled: true}},
	}}, form.WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	frm.ValidateAll()

	raw, err := json.Marshal(frm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got struct {
		Valid   bool                           `json:"valid"`
		Values  map[string]any                 `json:"values"`
		Results map[string][]validation.Result `json:"results"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Valid || len(got.Results["name"]) != 1 || got.Results["name"][0].Rule != validation.RuleRequired {
		t.Fatalf("unexpected snapshot %s", raw)
	}
}
