package descriptor_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/descriptor"
	"github.com/goliatone/go-formstate/pkg/model"
)

const signupYAML = `
forms:
  signup:
    fields:
      - name: email
        type: email
        validation:
          required:
            enabled: true
            error: "@validation.required"
          pattern:
            value: "^[^@]+@[^@]+$"
            error: Invalid email
      - name: tags
        type: checkbox
        multiple: true
        value: [news]
        options:
          - value: news
          - value: offers
`

const profileJSON = `{
  "forms": {
    "profile": {
      "fields": [
        {"name": "age", "type": "integer", "validation": {"min": {"value": 18}}}
      ]
    }
  }
}`

const settingsTOML = `
[[forms.settings.fields]]
name = "theme"
type = "select"
triggerModes = ["onChange"]

[[forms.settings.fields.options]]
value = "dark"
checked = true

[[forms.settings.fields.options]]
value = "light"
`

func TestLoadFSReadsAllFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/signup.yaml":   {Data: []byte(signupYAML)},
		"forms/profile.json":  {Data: []byte(profileJSON)},
		"forms/settings.toml": {Data: []byte(settingsTOML)},
		"forms/README.md":     {Data: []byte("ignored")},
	}

	catalog, err := descriptor.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"profile", "settings", "signup"}, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	signup, ok := catalog.Form("signup")
	if !ok || len(signup) != 2 {
		t.Fatalf("signup not loaded: %#v", signup)
	}
	if signup[0].Type != model.FieldTypeEmail || signup[0].Validation.Required == nil {
		t.Fatalf("unexpected email descriptor %#v", signup[0])
	}
	if diff := cmp.Diff([]string{"news"}, signup[1].Value); diff != "" {
		t.Fatalf("list value not normalised (-want +got):\n%s", diff)
	}

	profile, _ := catalog.Form("profile")
	if profile[0].Type != model.FieldTypeInteger || profile[0].Validation.Min.Value != 18 {
		t.Fatalf("unexpected profile descriptor %#v", profile[0])
	}

	settings, _ := catalog.Form("settings")
	if settings[0].Type != model.FieldTypeSelect || len(settings[0].Options) != 2 || !settings[0].Options[0].Checked {
		t.Fatalf("unexpected settings descriptor %#v", settings[0])
	}
	if diff := cmp.Diff([]string{"onChange"}, settings[0].TriggerModes); diff != "" {
		t.Fatalf("trigger modes mismatch (-want +got):\n%s", diff)
	}
	if catalog.Source("settings") != "forms/settings.toml" {
		t.Fatalf("unexpected source %q", catalog.Source("settings"))
	}
}

func TestLoadFSNilIsEmpty(t *testing.T) {
	catalog, err := descriptor.LoadFS(nil)
	if err != nil || !catalog.Empty() {
		t.Fatalf("nil fs should give an empty catalog: %v", err)
	}
}

func TestLoadFSRejectsDuplicateForms(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(signupYAML)},
		"b.yaml": {Data: []byte(signupYAML)},
	}
	_, err := descriptor.LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), `duplicate form "signup"`) {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := descriptor.Parse([]byte("  "), "empty.yaml"); !errors.Is(err, descriptor.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := descriptor.Parse([]byte("forms: {f: {fields: [{type: text}]}}"), "noname.yaml"); err == nil {
		t.Fatalf("missing field name should fail")
	}
	if _, err := descriptor.Parse([]byte("forms: {f: {fields: [{name: a, type: slider}]}}"), "bad.yaml"); !errors.Is(err, model.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}

func TestFormReturnsCopies(t *testing.T) {
	catalog, err := descriptor.Parse([]byte(signupYAML), "signup.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, _ := catalog.Form("signup")
	first[0].Validation.Required.Enabled = false

	second, _ := catalog.Form("signup")
	if !second[0].Validation.Required.Enabled {
		t.Fatalf("catalog descriptors must not be shared")
	}
}
