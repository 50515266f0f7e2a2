package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mpyw/nextcall/internal/jslint"
)

type printer interface {
	print(report *jslint.Report) error
}

func newPrinter(w io.Writer, format string, colored bool) (printer, error) {
	switch format {
	case "text":
		return newTextPrinter(w, colored), nil
	case "json":
		return &jsonPrinter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

// textPrinter writes one finding per line: path:line:col: message (check).
type textPrinter struct {
	w        io.Writer
	location *color.Color
	message  *color.Color
	check    *color.Color
	summary  *color.Color
}

func newTextPrinter(w io.Writer, colored bool) *textPrinter {
	p := &textPrinter{
		w:        w,
		location: color.New(color.Bold),
		message:  color.New(color.FgRed),
		check:    color.New(color.FgHiBlack),
		summary:  color.New(color.FgYellow, color.Bold),
	}

	for _, c := range []*color.Color{p.location, p.message, p.check, p.summary} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p *textPrinter) print(report *jslint.Report) error {
	for _, f := range report.Findings {
		_, err := fmt.Fprintf(p.w, "%s %s %s\n",
			p.location.Sprintf("%s:%d:%d:", f.Path, f.Line, f.Column),
			p.message.Sprint(f.Message),
			p.check.Sprintf("(%s)", f.Check),
		)
		if err != nil {
			return err
		}
	}

	if n := len(report.Findings); n > 0 {
		if _, err := fmt.Fprintln(p.w, p.summary.Sprintf("%d problem(s) in %d file(s)", n, len(report.Files))); err != nil {
			return err
		}
	}

	return nil
}

type jsonPrinter struct {
	w io.Writer
}

type jsonReport struct {
	Files    int              `json:"files"`
	Findings []jslint.Finding `json:"findings"`
	Errors   []jsonFileError  `json:"errors,omitempty"`
}

type jsonFileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func (p *jsonPrinter) print(report *jslint.Report) error {
	out := jsonReport{
		Files:    len(report.Files),
		Findings: report.Findings,
	}
	if out.Findings == nil {
		out.Findings = []jslint.Finding{}
	}
	for _, f := range report.Failed() {
		out.Errors = append(out.Errors, jsonFileError{Path: f.Path, Error: f.Err.Error()})
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
