// Package parser implements a hand-written recursive-descent parser over
// internal/lexer's token stream, producing internal/ast nodes directly
// (there is no separate concrete-syntax tree).
package parser

import (
	"fmt"
	"strings"

	"github.com/weave-lang/weave/internal/lexer"
)

// Sub classifies the way parsing failed, mirroring the sub-kinds a host
// façade surfaces for ParseError.
type Sub int

const (
	InvalidToken Sub = iota
	UnexpectedEOF
	UnrecognizedToken
	ExtraToken
	UserReject
)

func (s Sub) String() string {
	switch s {
	case InvalidToken:
		return "InvalidToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnrecognizedToken:
		return "UnrecognizedToken"
	case ExtraToken:
		return "ExtraToken"
	case UserReject:
		return "UserReject"
	default:
		return "ParseError"
	}
}

// Error is a single, located parse failure.
type Error struct {
	Sub     Sub
	Message string
	Source  string
	Start   lexer.Position
	End     lexer.Position
}

// Error implements the error interface; Format is used for user-facing
// caret-pointing output.
func (e *Error) Error() string { return e.Format(false) }

// Format renders the error with a source line and a caret pointing at the
// failure column. If color is true, ANSI codes highlight the caret and
// message.
func (e *Error) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("parse error at %d:%d\n", e.Start.Line, e.Start.Column))

	if line := sourceLine(e.Source, e.Start.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Start.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Start.Column))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Sub, e.Message))
	if color {
		sb.WriteString("\033[0m")
	}
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
