// Package descriptor supplies field descriptors to the runtime: it loads form
// catalogs from YAML, JSON and TOML files, maps OpenAPI request bodies to
// descriptors and resolves translated, sanitised error and guide messages.
package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrEmptyDocument is returned for files without content.
var ErrEmptyDocument = errors.New("descriptor: document is empty")

// Catalog holds the forms read from one or more descriptor files.
type Catalog struct {
	forms   map[string][]model.Descriptor
	sources map[string]string
}

// Form returns a copy of the descriptors of form id.
func (c *Catalog) Form(id string) ([]model.Descriptor, bool) {
	if c == nil {
		return nil, false
	}
	descs, ok := c.forms[id]
	if !ok {
		return nil, false
	}
	return cloneDescriptors(descs), true
}

// Source reports which file defined form id.
func (c *Catalog) Source(id string) string {
	if c == nil {
		return ""
	}
	return c.sources[id]
}

// IDs lists the form ids in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the catalog holds any form.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms" toml:"forms"`
}

type formFile struct {
	Fields []model.Descriptor `json:"fields" yaml:"fields" toml:"fields"`
}

// LoadFS walks fsys and reads every descriptor file. When fsys is nil or
// no descriptor files are present the catalog is empty.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := newCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}
		return catalog.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Parse reads a single document. name selects the decoder by extension and
// labels errors.
func Parse(data []byte, name string) (*Catalog, error) {
	catalog := newCatalog()
	if err := catalog.add(data, name); err != nil {
		return nil, err
	}
	return catalog, nil
}

func newCatalog() *Catalog {
	return &Catalog{
		forms:   make(map[string][]model.Descriptor),
		sources: make(map[string]string),
	}
}

func (c *Catalog) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawID, form := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("descriptor: file %s defines an empty form id", source)
		}
		if prev, exists := c.sources[id]; exists {
			return fmt.Errorf("descriptor: duplicate form %q (files %s and %s)", id, prev, source)
		}
		descs, err := normaliseForm(form.Fields, id, source)
		if err != nil {
			return err
		}
		c.forms[id] = descs
		c.sources[id] = source
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".toml":
		_, err = toml.Decode(string(data), &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return documentFile{}, fmt.Errorf("descriptor: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(fields []model.Descriptor, id, source string) ([]model.Descriptor, error) {
	out := make([]model.Descriptor, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for i, desc := range fields {
		desc.Name = strings.TrimSpace(desc.Name)
		if desc.Name == "" {
			return nil, fmt.Errorf("descriptor: form %q (file %s) field %d has no name", id, source, i)
		}
		if _, dup := seen[desc.Name]; dup {
			return nil, fmt.Errorf("descriptor: form %q (file %s) defines duplicate field %q", id, source, desc.Name)
		}
		seen[desc.Name] = struct{}{}
		if desc.Kind() == model.KindList {
			desc.Value = stringList(desc.Value)
			desc.Default = stringList(desc.Default)
		}
		out = append(out, desc)
	}
	return out, nil
}

// stringList converts decoded sequences into the []string list fields hold.
func stringList(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	default:
		return false
	}
}

func cloneDescriptors(descs []model.Descriptor) []model.Descriptor {
	out := make([]model.Descriptor, len(descs))
	for i, d := range descs {
		d.Validation = d.Validation.Clone()
		d.Options = append([]model.Option(nil), d.Options...)
		d.TriggerModes = append([]string(nil), d.TriggerModes...)
		if d.ShouldValidate != nil {
			v := *d.ShouldValidate
			d.ShouldValidate = &v
		}
		out[i] = d
	}
	return out
}
