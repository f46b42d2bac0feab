// Package syntax wraps the goja JavaScript parser and turns its errors into
// positioned SyntaxError values.
package syntax

import (
	"errors"
	"fmt"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// SyntaxError reports input that does not conform to the JavaScript grammar.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *SyntaxError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("syntax error in %s at line %d, column %d: %s", name, e.Line, e.Column, e.Message)
}

// Parse parses src as a standalone script.
func Parse(filename, src string) (*ast.Program, error) {
	program, err := parser.ParseFile(nil, filename, src, 0, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, toSyntaxError(filename, err)
	}
	return program, nil
}

func toSyntaxError(filename string, err error) error {
	var list parser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return fromParserError(filename, list[0])
	}
	var single *parser.Error
	if errors.As(err, &single) {
		return fromParserError(filename, single)
	}
	return &SyntaxError{Filename: filename, Message: err.Error()}
}

func fromParserError(filename string, e *parser.Error) *SyntaxError {
	name := e.Position.Filename
	if name == "" {
		name = filename
	}
	return &SyntaxError{
		Filename: name,
		Line:     e.Position.Line,
		Column:   e.Position.Column,
		Message:  e.Message,
	}
}

// Position is a 1-based line/column location in the source text.
// The zero value marks a node that has no source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionFor converts a goja index into a line and column of src. Parsing
// without a file set uses base 1, so index 1 is the first byte.
func PositionFor(src string, idx file.Idx) Position {
	offset := int(idx) - 1
	if idx <= 0 || offset > len(src) {
		return Position{}
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Line: line, Column: col}
}

// PositionOf returns the start position of node in src.
func PositionOf(src string, node ast.Node) Position {
	if node == nil {
		return Position{}
	}
	return PositionFor(src, node.Idx0())
}
