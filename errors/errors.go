// Package errors defines the typed errors raised by the code generator and
// the toolchain invoker.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/sick-lang/sick65/ast"
)

// CodegenError is a failure with a taxonomy code, a message and an optional
// source location. ExitCode is meaningful only for AssemblerFailed.
type CodegenError struct {
	Code     Code
	Message  string
	Location ast.SourceRef
	ExitCode int
}

func (e *CodegenError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a CodegenError without a source location.
func New(code Code, format string, args ...any) *CodegenError {
	return &CodegenError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewAt creates a CodegenError carrying the source location of the node
// that caused it.
func NewAt(code Code, ref ast.SourceRef, format string, args ...any) *CodegenError {
	return &CodegenError{Code: code, Message: fmt.Sprintf(format, args...), Location: ref}
}

// IsCode reports whether err is (or wraps) a CodegenError with the given code.
func IsCode(err error, code Code) bool {
	var ce *CodegenError
	if stderrors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
