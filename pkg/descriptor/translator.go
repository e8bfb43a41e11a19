package descriptor

import (
	"fmt"
	"sort"

	"github.com/flosch/pongo2/v6"
)

// Translator resolves a message key. args are exposed to the message
// template; a single map argument is also merged into the template context
// so messages can reference named values directly.
type Translator func(key string, args ...any) string

// Identity returns keys unchanged.
func Identity(key string, _ ...any) string { return key }

// NewCatalogTranslator compiles every message as a pongo2 template. Keys
// missing from messages, and templates that fail to render, return the key.
func NewCatalogTranslator(messages map[string]string) (Translator, error) {
	templates := make(map[string]*pongo2.Template, len(messages))
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		tpl, err := pongo2.FromString(messages[key])
		if err != nil {
			return nil, fmt.Errorf("descriptor: compile message %q: %w", key, err)
		}
		templates[key] = tpl
	}

	return func(key string, args ...any) string {
		tpl, ok := templates[key]
		if !ok {
			return key
		}
		ctx := pongo2.Context{"args": args}
		if len(args) == 1 {
			if named, ok := args[0].(map[string]any); ok {
				for k, v := range named {
					ctx[k] = v
				}
			}
		}
		out, err := tpl.Execute(ctx)
		if err != nil {
			return key
		}
		return out
	}, nil
}
