package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/binding/tui"
)

var fillOutput string

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Prompt for every field of a form",
	Long: `Walks the fields of the selected form in order, showing guides on focus
and errors on blur, and prints the collected values once the form submits.`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "json", "output format: json or yaml")
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	frm, err := loadForm(ctx, source)
	if err != nil {
		return err
	}

	session := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
	values, err := session.Run(ctx, frm)
	if err != nil && !errors.Is(err, tui.ErrInvalidForm) {
		return err
	}
	if werr := writeValues(cmd.OutOrStdout(), fillOutput, values); werr != nil {
		return werr
	}
	return err
}

func writeValues(w io.Writer, format string, values map[string]any) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
