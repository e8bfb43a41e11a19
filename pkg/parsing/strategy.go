// Package parsing coerces a field's raw stored value into the canonical value
// of its kind. Entries are matched by model.Kind in registration order, and
// every ParseFunc must be pure.
package parsing

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrNoParserForType is logged when no entry concerns the requested kind.
var ErrNoParserForType = errors.New("parsing: no parser for type")

// ParseFunc converts a raw value. A false second result means "no value".
type ParseFunc func(raw any) (any, bool)

// Entry binds a parse function to the kinds it concerns.
type Entry struct {
	ID    string
	Kinds []model.Kind
	Parse ParseFunc
}

func (e Entry) concerns(kind model.Kind) bool {
	for _, k := range e.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Strategy is an immutable, ordered set of entries. It is safe to share.
type Strategy struct {
	entries []Entry
	logger  logging.Logger
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithLogger routes missing-parser warnings to l.
func WithLogger(l logging.Logger) Option {
	return func(s *Strategy) {
		s.logger = l
	}
}

// New builds a strategy from entries; entries without a parse function are
// skipped.
func New(entries []Entry, options ...Option) *Strategy {
	s := &Strategy{}
	for _, entry := range entries {
		if entry.Parse == nil {
			continue
		}
		s.entries = append(s.entries, entry)
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Default returns a strategy with the built-in parsers.
func Default(options ...Option) *Strategy {
	return New(Builtins(), options...)
}

// Builtins lists the built-in entries in lookup order.
func Builtins() []Entry {
	return []Entry{
		{ID: "string", Kinds: []model.Kind{model.KindString}, Parse: ParseString},
		{ID: "number", Kinds: []model.Kind{model.KindNumber}, Parse: ParseNumber},
		{ID: "boolean", Kinds: []model.Kind{model.KindBoolean}, Parse: ParseBoolean},
		{ID: "date", Kinds: []model.Kind{model.KindDate}, Parse: ParseDate},
		{ID: "list", Kinds: []model.Kind{model.KindList}, Parse: ParseList},
	}
}

// With returns a copy of s where entry takes precedence over existing ones.
func (s *Strategy) With(entry Entry) *Strategy {
	out := &Strategy{logger: s.logger}
	if entry.Parse != nil {
		out.entries = append(out.entries, entry)
	}
	out.entries = append(out.entries, s.entries...)
	return out
}

// Lookup returns the first entry concerning kind.
func (s *Strategy) Lookup(kind model.Kind) (Entry, error) {
	for _, entry := range s.entries {
		if entry.concerns(kind) {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w %s", ErrNoParserForType, kind)
}

// Value coerces raw for kind. A missing parser or a panicking parse function
// is logged and reported as no value.
func (s *Strategy) Value(kind model.Kind, raw any) (value any, ok bool) {
	entry, err := s.Lookup(kind)
	if err != nil {
		logging.OrDefault(s.logger).Warning(err.Error())
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			logging.OrDefault(s.logger).Warning("parsing: ", kind.String(), " parser panicked: ", r)
			value, ok = nil, false
		}
	}()
	return entry.Parse(raw)
}
