package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTriggerMode is returned by ParseTriggerMode.
var ErrUnknownTriggerMode = errors.New("validation: unknown trigger mode")

// TriggerMode names the moment that requested a validation pass.
type TriggerMode string

const (
	TriggerBlur            TriggerMode = "onBlur"
	TriggerChange          TriggerMode = "onChange"
	TriggerSubmit          TriggerMode = "onSubmit"
	TriggerFocus           TriggerMode = "onFocus"
	TriggerLoad            TriggerMode = "onLoad"
	TriggerReset           TriggerMode = "reset"
	TriggerFormFirstSubmit TriggerMode = "onFormFirstSubmit"
)

var knownTriggerModes = []TriggerMode{
	TriggerBlur,
	TriggerChange,
	TriggerSubmit,
	TriggerFocus,
	TriggerLoad,
	TriggerReset,
	TriggerFormFirstSubmit,
}

// ParseTriggerMode accepts the mode names case-insensitively.
func ParseTriggerMode(raw string) (TriggerMode, error) {
	trimmed := strings.TrimSpace(raw)
	for _, mode := range knownTriggerModes {
		if strings.EqualFold(string(mode), trimmed) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTriggerMode, raw)
}

// ShowsErrors reports whether failing results should surface their error
// message after a pass with this trigger.
func (m TriggerMode) ShowsErrors() bool {
	switch m {
	case TriggerBlur, TriggerSubmit, TriggerFormFirstSubmit, TriggerLoad:
		return true
	default:
		return false
	}
}

// ShowsGuides reports whether guides should be displayed proactively.
func (m TriggerMode) ShowsGuides() bool {
	return m == TriggerFocus || m == TriggerChange
}

// Modes is the set of triggers a field honours.
type Modes []TriggerMode

// DefaultModes is the canonical configuration: errors on blur and submit.
func DefaultModes() Modes {
	return Modes{TriggerBlur, TriggerSubmit}
}

// ParseModes converts names into Modes. Unknown names are collected into the
// returned error while the valid ones are kept.
func ParseModes(names []string) (Modes, error) {
	var (
		out  Modes
		errs []error
	)
	for _, name := range names {
		mode, err := ParseTriggerMode(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !out.Has(mode) {
			out = append(out, mode)
		}
	}
	return out, errors.Join(errs...)
}

// Has reports whether mode is configured.
func (m Modes) Has(mode TriggerMode) bool {
	for _, candidate := range m {
		if candidate == mode {
			return true
		}
	}
	return false
}

// Effective returns requested when it is configured and reset otherwise.
func (m Modes) Effective(requested TriggerMode) TriggerMode {
	if requested != TriggerReset && m.Has(requested) {
		return requested
	}
	return TriggerReset
}

// Clone returns an independent copy.
func (m Modes) Clone() Modes {
	return append(Modes(nil), m...)
}
