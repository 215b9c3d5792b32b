package validator

import (
	"fmt"
	"strings"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError blocks export.
	SeverityError Severity = iota
	// SeverityWarning is reported but never blocks.
	SeverityWarning
	// SeverityInfo records a check that passed (a legal fact).
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Fields identify which check produced an issue.
const (
	FieldName      = "name"
	FieldScale     = "scale"
	FieldMesh      = "mesh"
	FieldMaterials = "materials"
	FieldTextures  = "textures"
)

// Issue is a single finding for one candidate.
type Issue struct {
	Severity Severity
	// Field names the check (see the Field constants).
	Field   string
	Message string
	// Value is the value that failed the check (optional).
	Value any
	// Context carries extra detail such as the broken image names.
	Context map[string]string
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result collects the issues of one candidate in check order.
type Result struct {
	Issues []Issue
}

// AddError records a blocking issue.
func (r *Result) AddError(field, message string, value any) *Issue {
	return r.add(SeverityError, field, message, value)
}

// AddWarning records a non-blocking issue.
func (r *Result) AddWarning(field, message string, value any) *Issue {
	return r.add(SeverityWarning, field, message, value)
}

// AddInfo records a passed check.
func (r *Result) AddInfo(field, message string) *Issue {
	return r.add(SeverityInfo, field, message, nil)
}

func (r *Result) add(s Severity, field, message string, value any) *Issue {
	r.Issues = append(r.Issues, Issue{Severity: s, Field: field, Message: message, Value: value})
	return &r.Issues[len(r.Issues)-1]
}

// Errors returns issues with SeverityError.
func (r *Result) Errors() []Issue { return r.bySeverity(SeverityError) }

// Warnings returns issues with SeverityWarning.
func (r *Result) Warnings() []Issue { return r.bySeverity(SeverityWarning) }

// Infos returns issues with SeverityInfo.
func (r *Result) Infos() []Issue { return r.bySeverity(SeverityInfo) }

func (r *Result) bySeverity(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

func messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}
