package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/strager/sprout"
	"github.com/strager/sprout/config"
	"gopkg.in/yaml.v3"
)

type fileReport struct {
	File        string             `json:"file" yaml:"file"`
	Diagnostics []diagnosticReport `json:"diagnostics" yaml:"diagnostics"`
}

type diagnosticReport struct {
	Line     int    `json:"line" yaml:"line"`
	Code     string `json:"code" yaml:"code"`
	Kind     string `json:"kind" yaml:"kind"`
	Message  string `json:"message" yaml:"message"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Found    string `json:"found,omitempty" yaml:"found,omitempty"`

	FirstLine      int `json:"first_line,omitempty" yaml:"first_line,omitempty"`
	RedeclaredLine int `json:"redeclared_line,omitempty" yaml:"redeclared_line,omitempty"`
	ExpectedCount  int `json:"expected_count,omitempty" yaml:"expected_count,omitempty"`
	ProvidedCount  int `json:"provided_count,omitempty" yaml:"provided_count,omitempty"`
}

// newFileReport lists diags by line.
func newFileReport(file string, diags sprout.Diagnostics) fileReport {
	r := fileReport{File: file, Diagnostics: []diagnosticReport{}}
	for _, d := range diags.Sorted() {
		r.Diagnostics = append(r.Diagnostics, diagnosticReport{
			Line:     d.Line,
			Code:     d.Kind.Code,
			Kind:     d.Kind.Name,
			Message:  d.Message,
			Name:     d.Name,
			Expected: d.Expected,
			Found:    d.Found,

			FirstLine:      d.FirstLine,
			RedeclaredLine: d.RedeclaredLine,
			ExpectedCount:  d.ExpectedCount,
			ProvidedCount:  d.ProvidedCount,
		})
	}
	return r
}

// report writes reports in the configured format and returns errDiagnostics
// when any report is non-empty.
func (a *app) report(w io.Writer, reports []fileReport) error {
	var err error
	switch a.cfg.Output.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(reports)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(reports)
		if err == nil {
			err = enc.Close()
		}
	default:
		err = a.writeText(w, reports)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, r := range reports {
		if len(r.Diagnostics) > 0 {
			return errDiagnostics
		}
	}
	return nil
}

// writeText prints one `file:line: code kind: message` line per diagnostic
// and a summary.
func (a *app) writeText(w io.Writer, reports []fileReport) error {
	file := color.New(color.Bold)
	code := color.New(color.FgRed, color.Bold)
	kind := color.New(color.FgYellow)
	ok := color.New(color.FgGreen)
	for _, c := range []*color.Color{file, code, kind, ok} {
		if a.cfg.Output.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	total := 0
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			total++
			_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
				file.Sprintf("%s:%d", r.File, d.Line), code.Sprint(d.Code), kind.Sprint(d.Kind), d.Message)
			if err != nil {
				return err
			}
		}
	}

	if total == 0 {
		_, err := ok.Fprintf(w, "no diagnostics in %d file(s)\n", len(reports))
		return err
	}
	_, err := fmt.Fprintf(w, "%d diagnostic(s) in %d file(s)\n", total, len(reports))
	return err
}
