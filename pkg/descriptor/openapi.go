package descriptor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrOperationNotFound is returned when no operation carries the id.
	ErrOperationNotFound = errors.New("descriptor: openapi operation not found")
	// ErrNoRequestBody is returned when the operation has no object body.
	ErrNoRequestBody = errors.New("descriptor: openapi operation has no object request body")
)

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// FromOpenAPI maps the top-level properties of an operation's request body
// to descriptors, in property name order. Read-only properties are skipped.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) ([]model.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: openapi", ErrEmptyDocument)
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("descriptor: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.Descriptor, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		_, isRequired := required[name]
		out = append(out, propertyDescriptor(name, ref.Value, isRequired))
	}
	return out, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{item.Post, item.Put, item.Patch, item.Get, item.Delete} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func propertyDescriptor(name string, s *openapi3.Schema, required bool) model.Descriptor {
	desc := model.Descriptor{
		Name:        name,
		Label:       s.Title,
		Type:        schemaFieldType(s),
		Default:     s.Default,
		Description: s.Description,
	}

	if required {
		desc.Validation.Required = &model.RequiredRule{Enabled: true}
	}
	if s.Min != nil {
		desc.Validation.Min = &model.BoundRule{Value: *s.Min}
	}
	if s.Max != nil {
		desc.Validation.Max = &model.BoundRule{Value: *s.Max}
	}
	if s.MinLength != 0 {
		desc.Validation.MinLength = &model.LengthRule{Value: int(s.MinLength)}
	}
	if s.MaxLength != nil {
		desc.Validation.MaxLength = &model.LengthRule{Value: int(*s.MaxLength)}
	}
	if s.Pattern != "" {
		desc.Validation.Pattern = &model.PatternRule{Value: s.Pattern}
	}

	enum := s.Enum
	if schemaType(s) == openapi3.TypeArray && s.Items != nil && s.Items.Value != nil {
		enum = s.Items.Value.Enum
		desc.Multiple = true
	}
	for _, value := range enum {
		v := fmt.Sprint(value)
		desc.Options = append(desc.Options, model.Option{Label: model.DefaultLabeler(v), Value: v})
	}
	return desc
}

func schemaFieldType(s *openapi3.Schema) model.FieldType {
	switch schemaType(s) {
	case openapi3.TypeInteger:
		return model.FieldTypeInteger
	case openapi3.TypeNumber:
		return model.FieldTypeNumber
	case openapi3.TypeBoolean:
		return model.FieldTypeCheckbox
	case openapi3.TypeArray:
		return model.FieldTypeCheckbox
	}
	if len(s.Enum) > 0 {
		return model.FieldTypeSelect
	}
	switch s.Format {
	case "email":
		return model.FieldTypeEmail
	case "password":
		return model.FieldTypePassword
	case "date", "date-time":
		return model.FieldTypeDate
	}
	if s.MaxLength != nil && *s.MaxLength > 255 {
		return model.FieldTypeTextarea
	}
	return model.FieldTypeText
}

func schemaType(s *openapi3.Schema) string {
	if s.Type == nil {
		return ""
	}
	types := s.Type.Slice()
	if len(types) == 0 {
		return ""
	}
	return types[0]
}
