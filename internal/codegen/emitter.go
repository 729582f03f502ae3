// Package codegen renders runtime validator source text from collected
// type declarations: one codec binding per declaration, dependency
// ordered, with optional nominal-type scaffolds for branded primitives.
package codegen

import (
	"fmt"
	"strings"
)

// Emitter builds generated source line by line with indentation.
type Emitter struct {
	buf    strings.Builder
	indent int
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Line writes a single line at the current indentation level.
func (e *Emitter) Line(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		e.buf.WriteByte('\n')
		return
	}
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString("  ")
	}
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (e *Emitter) Blank() {
	e.buf.WriteByte('\n')
}

// Indent increases the indentation level.
func (e *Emitter) Indent() {
	e.indent++
}

// Dedent decreases the indentation level.
func (e *Emitter) Dedent() {
	if e.indent > 0 {
		e.indent--
	}
}

// String returns the accumulated source.
func (e *Emitter) String() string {
	return e.buf.String()
}
