package weave

import (
	"fmt"
	"strings"

	evalerrors "github.com/weave-lang/weave/internal/interp/errors"
	"github.com/weave-lang/weave/internal/parser"
)

// PositionedError is a single failure with a source location, shared by
// CompileError (always located) and the located half of RuntimeError.
type PositionedError struct {
	Message string
	Line    int
	Column  int
	Source  string
}

// Error renders a caret-pointing, one-error view: a "error at line:col"
// header, the offending source line, a caret under the failing column,
// and the message.
func (e PositionedError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("error at %d:%d\n", e.Line, e.Column))
	if line := sourceLine(e.Source, e.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Column))
		sb.WriteString("^\n")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// CompileError reports every failure from a failed Parse, all of them
// located (the grammar has no unlocated parse failure). Stage is always
// "parsing"; it exists so later façade additions (e.g. a future static
// check) can reuse the same shape.
type CompileError struct {
	Stage  string
	Errors []PositionedError
}

func (e *CompileError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s failed with %d error(s); first: %s", e.Stage, len(e.Errors), e.Errors[0].Error())
}

func compileErrorFromParser(errs []*parser.Error) *CompileError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]PositionedError, len(errs))
	for i, pe := range errs {
		out[i] = PositionedError{
			Message: fmt.Sprintf("[%s] %s", pe.Sub, pe.Message),
			Line:    pe.Start.Line,
			Column:  pe.Start.Column,
			Source:  pe.Source,
		}
	}
	return &CompileError{Stage: "parsing", Errors: out}
}

// RuntimeError reports a single evaluation-time failure. Located is false
// for UnknownFunction from Script.Function, for NotHostSafe from
// Handle.Call, and for a NoMatch raised because no clause of the called
// function itself matched the arguments; other runtime errors carry a
// first-span-wins location.
type RuntimeError struct {
	Kind    string
	Message string
	Located bool
	Line    int
	Column  int
	Source  string
}

func (e *RuntimeError) Error() string {
	if !e.Located {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	pe := PositionedError{Message: fmt.Sprintf("[%s] %s", e.Kind, e.Message), Line: e.Line, Column: e.Column, Source: e.Source}
	return pe.Error()
}

func runtimeErrorFrom(ee *evalerrors.EvalError, source string) *RuntimeError {
	if ee == nil {
		return nil
	}
	re := &RuntimeError{Kind: ee.Kind.String(), Message: ee.Message, Source: source}
	if ee.HasSpan {
		re.Located = true
		re.Line = ee.Span.Start.Line
		re.Column = ee.Span.Start.Column
	}
	return re
}
