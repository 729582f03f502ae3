// Package diagnostic accumulates the warnings and per-declaration failures
// a generation run produces. Collection never aborts the run; callers
// inspect the collector afterwards.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Category names the generation stage or policy a diagnostic belongs to.
type Category string

const (
	// CategoryUnsupportedShape marks degraded output from an input shape
	// the renderer cannot fully express, like a variadic tuple tail.
	CategoryUnsupportedShape Category = "unsupported-shape"
	// CategoryClassification marks a declaration whose type matched no
	// known variant and was replaced by an error marker.
	CategoryClassification Category = "classification"
	// CategoryDepthLimit marks a declaration abandoned by the recursion
	// depth guard.
	CategoryDepthLimit Category = "depth-limit"
	// CategorySnapshot marks oddities noticed while reading a snapshot.
	CategorySnapshot Category = "snapshot"
)

// Diagnostic is one structured finding.
type Diagnostic struct {
	Severity Severity
	Category Category
	// File is the originating snapshot file, when known.
	File string
	// Decl is the declaration the finding is about, when it has one.
	Decl    string
	Message string
	// Hint optionally suggests a fix.
	Hint string
}

// String renders the finding for human output.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		sb.WriteString(" - ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	if d.Category != "" {
		fmt.Fprintf(&sb, "[%s] ", d.Category)
	}
	if d.Decl != "" {
		fmt.Fprintf(&sb, "%s: ", d.Decl)
	}
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}
	return sb.String()
}

// Collector gathers diagnostics for one run. The zero value is unusable;
// a nil collector is safe and drops everything.
type Collector struct {
	diagnostics []Diagnostic
	strict      bool // warnings escalate to errors
	quiet       bool // warnings and infos are dropped
}

// NewCollector returns a collector. Under strict, warnings record as
// errors; under quiet, only errors record at all.
func NewCollector(strict, quiet bool) *Collector {
	return &Collector{strict: strict, quiet: quiet}
}

// Infof records an informational finding.
func (c *Collector) Infof(category Category, file, decl, format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	c.add(SeverityInfo, category, file, decl, fmt.Sprintf(format, args...), "")
}

// Warnf records a warning, escalated to an error under strict.
func (c *Collector) Warnf(category Category, file, decl, format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	sev := SeverityWarning
	if c.strict {
		sev = SeverityError
	}
	c.add(sev, category, file, decl, fmt.Sprintf(format, args...), "")
}

// WarnHint records a warning carrying a fix suggestion.
func (c *Collector) WarnHint(category Category, file, decl, message, hint string) {
	if c == nil || c.quiet {
		return
	}
	sev := SeverityWarning
	if c.strict {
		sev = SeverityError
	}
	c.add(sev, category, file, decl, message, hint)
}

// Errorf records an error. Errors record even under quiet.
func (c *Collector) Errorf(category Category, file, decl, format string, args ...any) {
	if c == nil {
		return
	}
	c.add(SeverityError, category, file, decl, fmt.Sprintf(format, args...), "")
}

func (c *Collector) add(sev Severity, category Category, file, decl, message, hint string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: sev,
		Category: category,
		File:     file,
		Decl:     decl,
		Message:  message,
		Hint:     hint,
	})
}

// Diagnostics returns everything recorded, in order.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// Count returns the number of findings at sev.
func (c *Collector) Count(sev Severity) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error was recorded.
func (c *Collector) HasErrors() bool {
	return c.Count(SeverityError) > 0
}

// FormatAll renders every finding, one per line.
func (c *Collector) FormatAll() string {
	if c == nil || len(c.diagnostics) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range c.diagnostics {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary returns a line like "1 error(s), 2 warning(s)".
func (c *Collector) Summary() string {
	if c == nil {
		return ""
	}
	var parts []string
	if n := c.Count(SeverityError); n > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", n))
	}
	if n := c.Count(SeverityWarning); n > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", n))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
