package field

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/parsing"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Option configures a Field at construction.
type Option func(*Field)

// WithPipeline injects the validation pipeline. Tests use it to run a subset
// of rules.
func WithPipeline(p *validation.Pipeline) Option {
	return func(f *Field) {
		if p != nil {
			f.pipeline = p
		}
	}
}

// WithParsers injects the value parsing strategy.
func WithParsers(s *parsing.Strategy) Option {
	return func(f *Field) {
		if s != nil {
			f.parsers = s
		}
	}
}

// WithLogger routes configuration warnings and notifier failures to l.
func WithLogger(l logging.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithTriggerModes overrides the descriptor and default trigger modes.
func WithTriggerModes(modes ...validation.TriggerMode) Option {
	return func(f *Field) {
		f.modes = validation.Modes(modes).Clone()
		f.modesSet = true
	}
}

// WithTheme supplies go-theme tokens used to build class names.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(f *Field) {
		f.theme = cfg
	}
}
