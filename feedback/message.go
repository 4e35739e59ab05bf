package feedback

import (
	"fmt"

	"github.com/fatih/color"
)

// Classification names the pipeline stage that produced a diagnostic. The
// stage name is the first word of every rendered diagnostic line
type Classification string

// The three stages that can emit diagnostics
const (
	LexError      Classification = "lexer"
	SyntaxError   Classification = "parser"
	SemanticError Classification = "semantic"
)

// Kind categorizes semantic diagnostics. Lexical and syntactic diagnostics
// always carry KindNone
type Kind int

const (
	KindNone Kind = iota
	DuplicateDefinition
	UndefinedSymbol
	ScopeViolation
	VarParamMisuse
	TypeMismatch
	IndexOutOfBounds
	AssignToConstant
	OtherViolation
)

// Message is the interface for all Warnings and Errors that can be emitted
// by the stages of the pipeline
type Message interface {
	Make(withColor bool) string
}

// Error messages halt the pipeline once the stage that emitted them finishes
type Error struct {
	Classification Classification
	Kind           Kind
	Line           int
	Description    string
}

// Make takes an Error and produces a fully rendered diagnostic line with the
// option of using colors to make the stage prefix more clear. The rendered
// message is returned as a single string and can then be output to stderr or
// some other destination
func (e Error) Make(withColor bool) string {
	color.NoColor = !withColor
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	prefix := red(string(e.Classification) + " error")
	return fmt.Sprintf("%s: at line %d: %s", prefix, e.Line, e.Description)
}

// Warning messages highlight issues which might need to be addressed by the
// source code author but which don't stop the pipeline
type Warning struct {
	Classification Classification
	Line           int
	Description    string
}

// Make renders a Warning the same way an Error is rendered but with a yellow
// stage prefix
func (w Warning) Make(withColor bool) string {
	color.NoColor = !withColor
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	prefix := yellow(string(w.Classification) + " warning")
	return fmt.Sprintf("%s: at line %d: %s", prefix, w.Line, w.Description)
}

// HasErrors reports whether any message in a batch is an Error as opposed to
// a Warning
func HasErrors(msgs []Message) bool {
	for _, msg := range msgs {
		if _, ok := msg.(Error); ok {
			return true
		}
	}

	return false
}
