package lox

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives formatted diagnostic lines as the pipeline finds
// them. The CLI wires this to stderr; tests wire it to a buffer.
type Reporter func(line string)

// Session is the explicit diagnostics collaborator spec.md calls out as
// the preferred replacement for global mutable error flags: it
// accumulates syntax/resolution/runtime error state and is threaded
// through the Scanner, Parser, Resolver, and Interpreter. Run uses the
// Session held by the Interpreter it is given, so a REPL that reuses one
// Interpreter also reuses one Session and clears its syntax-error flag
// with ResetError between lines.
type Session struct {
	report Reporter
	out    io.Writer

	hadError        bool
	hadRuntimeError bool
}

// NewSession builds a Session that sends diagnostic lines to report and
// "print" output to os.Stdout.
func NewSession(report Reporter) *Session {
	return &Session{report: report, out: os.Stdout}
}

// SetStdout redirects "print" output, letting tests capture it instead
// of writing to the process's real stdout.
func (s *Session) SetStdout(w io.Writer) { s.out = w }

func (s *Session) stdout() io.Writer { return s.out }

func (s *Session) HadError() bool        { return s.hadError }
func (s *Session) HadRuntimeError() bool { return s.hadRuntimeError }

// ResetError clears the syntax/resolution error flag so a REPL can keep
// accepting lines after one of them fails to parse.
func (s *Session) ResetError() { s.hadError = false }

func (s *Session) emit(line string) {
	if s.report != nil {
		s.report(line)
	}
}

// ReportScanError reports a lexical error, which has no associated
// lexeme so "<where>" is always empty.
func (s *Session) ReportScanError(line int, message string) {
	s.hadError = true
	s.emit(fmt.Sprintf("[line %d] Error: %s", line, message))
}

// ReportTokenError reports a syntax or resolution error located at tok.
func (s *Session) ReportTokenError(tok Token, message string) {
	s.hadError = true
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == EOF {
		where = " at end"
	}
	s.emit(fmt.Sprintf("[line %d] Error%s: %s", tok.Line, where, message))
}

// ReportRuntimeError reports a runtime error that aborted the
// currently executing top-level statement.
func (s *Session) ReportRuntimeError(err *RuntimeError) {
	s.hadRuntimeError = true
	s.emit(fmt.Sprintf("%s\n[line %d]", err.Message, err.Token.Line))
}
