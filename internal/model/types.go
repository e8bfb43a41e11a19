package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownFieldType is returned when a type tag does not name a FieldType.
var ErrUnknownFieldType = errors.New("model: unknown field type")

// FieldType is the closed set of field kinds a descriptor can declare.
type FieldType uint8

const (
	FieldTypeText FieldType = iota
	FieldTypeEmail
	FieldTypePassword
	FieldTypeTextarea
	FieldTypeNumber
	FieldTypeInteger
	FieldTypeRange
	FieldTypeDate
	FieldTypeCheckbox
	FieldTypeRadio
	FieldTypeSelect
	FieldTypeToggle
	FieldTypeHidden

	fieldTypeCount
)

// Kind groups field types by the canonical value they coerce into.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindDate
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

type fieldTypeInfo struct {
	name   string
	kind   Kind
	choice bool
}

// fieldTypes is indexed by FieldType; every constant needs an entry.
var fieldTypes = [fieldTypeCount]fieldTypeInfo{
	FieldTypeText:     {name: "text", kind: KindString},
	FieldTypeEmail:    {name: "email", kind: KindString},
	FieldTypePassword: {name: "password", kind: KindString},
	FieldTypeTextarea: {name: "textarea", kind: KindString},
	FieldTypeNumber:   {name: "number", kind: KindNumber},
	FieldTypeInteger:  {name: "integer", kind: KindNumber},
	FieldTypeRange:    {name: "range", kind: KindNumber},
	FieldTypeDate:     {name: "date", kind: KindDate},
	FieldTypeCheckbox: {name: "checkbox", kind: KindBoolean, choice: true},
	FieldTypeRadio:    {name: "radio", kind: KindString, choice: true},
	FieldTypeSelect:   {name: "select", kind: KindString, choice: true},
	FieldTypeToggle:   {name: "toggle", kind: KindBoolean, choice: true},
	FieldTypeHidden:   {name: "hidden", kind: KindString},
}

var fieldTypeAliases = map[string]FieldType{
	"string":  FieldTypeText,
	"input":   FieldTypeText,
	"boolean": FieldTypeCheckbox,
	"bool":    FieldTypeCheckbox,
	"switch":  FieldTypeToggle,
	"float":   FieldTypeNumber,
	"int":     FieldTypeInteger,
}

// FieldTypes lists every declared field type in declaration order.
func FieldTypes() []FieldType {
	out := make([]FieldType, 0, fieldTypeCount)
	for t := FieldType(0); t < fieldTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// ParseFieldType resolves a case-insensitive tag or alias.
func ParseFieldType(tag string) (FieldType, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return FieldTypeText, nil
	}
	for t, info := range fieldTypes {
		if info.name == normalized {
			return FieldType(t), nil
		}
	}
	if t, ok := fieldTypeAliases[normalized]; ok {
		return t, nil
	}
	return FieldTypeText, fmt.Errorf("%w: %q", ErrUnknownFieldType, tag)
}

func (t FieldType) info() fieldTypeInfo {
	if t >= fieldTypeCount {
		return fieldTypeInfo{name: "unknown", kind: KindUnknown}
	}
	return fieldTypes[t]
}

func (t FieldType) String() string { return t.info().name }

// Kind reports the canonical value kind for the type.
func (t FieldType) Kind() Kind { return t.info().kind }

// IsChoice reports whether values come from checked controls rather than
// free text.
func (t FieldType) IsChoice() bool { return t.info().choice }

// MarshalText implements encoding.TextMarshaler.
func (t FieldType) MarshalText() ([]byte, error) {
	if t >= fieldTypeCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFieldType, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so descriptor files can
// use the type names directly.
func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is the structured date value date fields store.
type Date struct {
	Year  int        `json:"year" yaml:"year" toml:"year"`
	Month time.Month `json:"month" yaml:"month" toml:"month"`
	Day   int        `json:"day" yaml:"day" toml:"day"`
}

// IsZero reports whether no component is set.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// RequiredRule enables the required check. ExpectedValue on the descriptor
// turns it into a "must equal" check.
type RequiredRule struct {
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Guide   string `json:"guide,omitempty" yaml:"guide,omitempty" toml:"guide,omitempty"`
}

// BoundRule configures min or max numeric bounds.
type BoundRule struct {
	Value float64 `json:"value" yaml:"value" toml:"value"`
	Error string  `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Guide string  `json:"guide,omitempty" yaml:"guide,omitempty" toml:"guide,omitempty"`
}

// LengthRule configures minLength or maxLength.
type LengthRule struct {
	Value int    `json:"value" yaml:"value" toml:"value"`
	Error string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Guide string `json:"guide,omitempty" yaml:"guide,omitempty" toml:"guide,omitempty"`
}

// PatternRule configures a regular expression the string value must match.
type PatternRule struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Error string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Guide string `json:"guide,omitempty" yaml:"guide,omitempty" toml:"guide,omitempty"`
}

// ValidationOptions holds the optional rule configurations of one field. A
// nil rule is not configured.
type ValidationOptions struct {
	Required  *RequiredRule `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Min       *BoundRule    `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max       *BoundRule    `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	MinLength *LengthRule   `json:"minLength,omitempty" yaml:"minLength,omitempty" toml:"minLength,omitempty"`
	MaxLength *LengthRule   `json:"maxLength,omitempty" yaml:"maxLength,omitempty" toml:"maxLength,omitempty"`
	Pattern   *PatternRule  `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate a field's rules after
// construction.
func (o ValidationOptions) Clone() ValidationOptions {
	out := ValidationOptions{}
	if o.Required != nil {
		v := *o.Required
		out.Required = &v
	}
	if o.Min != nil {
		v := *o.Min
		out.Min = &v
	}
	if o.Max != nil {
		v := *o.Max
		out.Max = &v
	}
	if o.MinLength != nil {
		v := *o.MinLength
		out.MinLength = &v
	}
	if o.MaxLength != nil {
		v := *o.MaxLength
		out.MaxLength = &v
	}
	if o.Pattern != nil {
		v := *o.Pattern
		out.Pattern = &v
	}
	return out
}

// Option is one choice of a checkbox, radio or select field.
type Option struct {
	Label   string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Value   string `json:"value" yaml:"value" toml:"value"`
	Checked bool   `json:"checked,omitempty" yaml:"checked,omitempty" toml:"checked,omitempty"`
}

// Descriptor is the immutable construction input of a field.
type Descriptor struct {
	ID             string            `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name           string            `json:"name" yaml:"name" toml:"name"`
	Label          string            `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Type           FieldType         `json:"type" yaml:"type" toml:"type"`
	Value          any               `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Default        any               `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	ExpectedValue  any               `json:"expectedValue,omitempty" yaml:"expectedValue,omitempty" toml:"expectedValue,omitempty"`
	Validation     ValidationOptions `json:"validation,omitempty" yaml:"validation,omitempty" toml:"validation,omitempty"`
	Options        []Option          `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Multiple       bool              `json:"multiple,omitempty" yaml:"multiple,omitempty" toml:"multiple,omitempty"`
	ShouldValidate *bool             `json:"shouldValidate,omitempty" yaml:"shouldValidate,omitempty" toml:"shouldValidate,omitempty"`
	TriggerModes   []string          `json:"triggerModes,omitempty" yaml:"triggerModes,omitempty" toml:"triggerModes,omitempty"`
	Disabled       bool              `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Placeholder    string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Kind reports the value kind, accounting for multi-option checkboxes and
// selects which hold a list of selected values.
func (d Descriptor) Kind() Kind {
	if d.Multiple && (d.Type == FieldTypeCheckbox || d.Type == FieldTypeSelect) {
		return KindList
	}
	return d.Type.Kind()
}

// Validates reports whether the form should run this field on validate-all.
// Descriptors that leave the flag unset are validated.
func (d Descriptor) Validates() bool {
	if d.ShouldValidate == nil {
		return true
	}
	return *d.ShouldValidate
}

// InitialValue returns Value, falling back to Default.
func (d Descriptor) InitialValue() any {
	if d.Value != nil {
		return d.Value
	}
	return d.Default
}
