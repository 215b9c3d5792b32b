package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/meshkit/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces the human-readable panel.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces YAML output.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.Newf("unknown report format %q (valid: text, json, yaml)", s)
	}
}

// Reporter formats and writes validation summaries.
type Reporter struct {
	out     io.Writer
	format  Format
	showAll bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithAll includes clean candidates and legal facts in text output.
func WithAll(all bool) ReporterOption {
	return func(r *Reporter) {
		r.showAll = all
	}
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the summary to the output.
func (r *Reporter) Report(s *Summary) error {
	if s == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(s), "encoding JSON report")
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "encoding YAML report")
		}
		return errors.Wrap(enc.Close(), "encoding YAML report")
	default:
		r.reportText(s)
		return nil
	}
}

func (r *Reporter) reportText(s *Summary) {
	fmt.Fprintln(r.out, "Validation Summary:")
	if s.AllValid {
		fmt.Fprintln(r.out, color.GreenString("✓ %s", s.StatusLine()))
	} else {
		fmt.Fprintln(r.out, color.RedString("✗ %s", s.StatusLine()))
	}

	details := s.Offending()
	if r.showAll {
		details = s.Details
	}
	for _, d := range details {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, color.New(color.Bold).Sprint(d.Name))
		for _, i := range d.Issues() {
			switch i.Severity {
			case SeverityError:
				r.printIssue("✗", i, color.FgRed)
			case SeverityWarning:
				r.printIssue("!", i, color.FgYellow)
			case SeverityInfo:
				if r.showAll {
					r.printIssue("✓", i, color.FgGreen)
				}
			}
		}
	}
}

func (r *Reporter) printIssue(mark string, i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(printer(mark))
	sb.WriteString(" ")
	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		parts := make([]string, 0, len(i.Context))
		for k, v := range i.Context {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
		sort.Strings(parts)
		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(parts, ", ")))
	}

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		if len(valStr) > 50 {
			valStr = valStr[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
