package model

import internalmodel "github.com/goliatone/go-formstate/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypePassword = internalmodel.FieldTypePassword
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeInteger  = internalmodel.FieldTypeInteger
	FieldTypeRange    = internalmodel.FieldTypeRange
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeRadio    = internalmodel.FieldTypeRadio
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeToggle   = internalmodel.FieldTypeToggle
	FieldTypeHidden   = internalmodel.FieldTypeHidden
)

// Kind re-exports the canonical value kinds.
type Kind = internalmodel.Kind

const (
	KindUnknown = internalmodel.KindUnknown
	KindString  = internalmodel.KindString
	KindNumber  = internalmodel.KindNumber
	KindBoolean = internalmodel.KindBoolean
	KindDate    = internalmodel.KindDate
	KindList    = internalmodel.KindList
)

// ErrUnknownFieldType is returned by ParseFieldType for unrecognised tags.
var ErrUnknownFieldType = internalmodel.ErrUnknownFieldType

type Date = internalmodel.Date
type RequiredRule = internalmodel.RequiredRule
type BoundRule = internalmodel.BoundRule
type LengthRule = internalmodel.LengthRule
type PatternRule = internalmodel.PatternRule
type ValidationOptions = internalmodel.ValidationOptions
type Option = internalmodel.Option
type Descriptor = internalmodel.Descriptor

// ParseFieldType resolves a type tag or alias into a FieldType.
func ParseFieldType(tag string) (FieldType, error) {
	return internalmodel.ParseFieldType(tag)
}

// FieldTypes lists every declared field type.
func FieldTypes() []FieldType {
	return internalmodel.FieldTypes()
}

// DefaultLabeler derives a human-friendly label from a field name.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// Bool returns a pointer to v, handy for Descriptor.ShouldValidate.
func Bool(v bool) *bool {
	return &v
}
