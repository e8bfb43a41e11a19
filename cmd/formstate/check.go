package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

var errInvalid = errors.New("form is invalid")

var (
	checkValues string
	checkJSON   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a file of values against a form",
	Long: `Applies every value from --values to the matching field, submits the form
and prints each failing rule. Exits non-zero when the form is invalid.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkValues, "values", "", "YAML, JSON or TOML file of field values")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the form snapshot as JSON")
	_ = checkCmd.MarkFlagRequired("values")
}

func runCheck(cmd *cobra.Command, args []string) error {
	frm, err := loadForm(cmd.Context(), source)
	if err != nil {
		return err
	}
	values, err := readValues(checkValues)
	if err != nil {
		return err
	}
	if err := applyValues(frm, values); err != nil {
		return err
	}

	valid := frm.Submit()
	out := cmd.OutOrStdout()
	if checkJSON {
		data, err := json.MarshalIndent(frm, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		for _, r := range frm.Failures() {
			msg := ""
			if r.Error != nil {
				msg = r.Error.Message
			}
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.FieldName, r.Rule, msg)
		}
	}
	if !valid {
		return errInvalid
	}
	if !checkJSON {
		fmt.Fprintln(out, "ok")
	}
	return nil
}

func applyValues(frm *form.Form, values map[string]any) error {
	for name, value := range values {
		fld, ok := frm.Field(name)
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		if fld.Kind() == model.KindList {
			value = stringList(value)
		}
		fld.OnChange(value)
	}
	return nil
}

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

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	values := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &values)
	case ".toml":
		_, err = toml.Decode(string(data), &values)
	default:
		err = yaml.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}
