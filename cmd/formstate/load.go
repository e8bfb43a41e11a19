package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/descriptor"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

var errNoSource = errors.New("either --file with --form or --openapi with --operation is required")

func loadForm(ctx context.Context, src sourceFlags) (*form.Form, error) {
	descs, err := loadDescriptors(ctx, src)
	if err != nil {
		return nil, err
	}

	var translate descriptor.Translator = descriptor.Identity
	if src.messages != "" {
		translate, err = loadTranslator(src.messages)
		if err != nil {
			return nil, err
		}
	}
	return form.Build(descriptor.Resolve(descs, translate))
}

func loadDescriptors(ctx context.Context, src sourceFlags) ([]model.Descriptor, error) {
	switch {
	case src.openapi != "" && src.operation != "":
		raw, err := os.ReadFile(src.openapi)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		return descriptor.FromOpenAPI(ctx, raw, src.operation)
	case src.file != "" && src.form != "":
		catalog, err := loadCatalog(src.file)
		if err != nil {
			return nil, err
		}
		descs, ok := catalog.Form(src.form)
		if !ok {
			return nil, fmt.Errorf("form %q not found (available: %v)", src.form, catalog.IDs())
		}
		return descs, nil
	default:
		return nil, errNoSource
	}
}

func loadCatalog(path string) (*descriptor.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return descriptor.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return descriptor.Parse(data, filepath.Base(path))
}

func loadTranslator(path string) (descriptor.Translator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	messages := map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse messages %s: %w", path, err)
	}
	return descriptor.NewCatalogTranslator(messages)
}
