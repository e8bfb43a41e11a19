// Package model defines the descriptor types fields are constructed from.
// Types live in internal/model and are re-exported here. FieldType is a
// closed enumeration backed by a table indexed by the constant itself, so each
// type resolves to a canonical value Kind (string, number, boolean, date,
// list) without string-keyed lookups. Descriptors decode from JSON, YAML and
// TOML using the type names ("text", "email", "checkbox", ...) and carry the
// optional rule configuration (required, min/max, minLength/maxLength,
// pattern) together with pre-resolved error and guide messages.
package model
