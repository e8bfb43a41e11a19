package descriptor

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// KeyPrefix marks a message as a translation key: "@validation.required".
const KeyPrefix = "@"

// Resolve returns copies of descs with every label, placeholder, description
// and rule message translated and sanitised, and missing labels derived from
// the field name. A nil translator leaves keys untranslated.
func Resolve(descs []model.Descriptor, translate Translator) []model.Descriptor {
	if translate == nil {
		translate = Identity
	}
	out := cloneDescriptors(descs)
	for i := range out {
		resolveDescriptor(&out[i], translate)
	}
	return out
}

func resolveDescriptor(d *model.Descriptor, translate Translator) {
	base := map[string]any{"name": d.Name}

	if d.Label == "" {
		d.Label = model.DefaultLabeler(d.Name)
	} else {
		d.Label = message(d.Label, translate, base)
	}
	base["label"] = d.Label

	d.Placeholder = message(d.Placeholder, translate, base)
	d.Description = message(d.Description, translate, base)
	for i := range d.Options {
		d.Options[i].Label = message(d.Options[i].Label, translate, base)
	}

	v := &d.Validation
	if r := v.Required; r != nil {
		r.Error = message(r.Error, translate, base)
		r.Guide = message(r.Guide, translate, base)
	}
	for _, r := range []*model.BoundRule{v.Min, v.Max} {
		if r == nil {
			continue
		}
		args := with(base, "value", strconv.FormatFloat(r.Value, 'f', -1, 64))
		r.Error = message(r.Error, translate, args)
		r.Guide = message(r.Guide, translate, args)
	}
	for _, r := range []*model.LengthRule{v.MinLength, v.MaxLength} {
		if r == nil {
			continue
		}
		args := with(base, "value", r.Value)
		r.Error = message(r.Error, translate, args)
		r.Guide = message(r.Guide, translate, args)
	}
	if r := v.Pattern; r != nil {
		r.Error = message(r.Error, translate, base)
		r.Guide = message(r.Guide, translate, base)
	}
}

func message(raw string, translate Translator, args map[string]any) string {
	if key, ok := strings.CutPrefix(strings.TrimSpace(raw), KeyPrefix); ok && key != "" {
		raw = translate(key, args)
	}
	return SanitizeMessage(raw)
}

func with(base map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}
