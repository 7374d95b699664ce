package errors

import (
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/sick-lang/sick65/ast"
)

func TestErrorFormatting(t *testing.T) {
	err := New(MissingEntryPoint, "program entry point is missing")
	require.Equal(t, "MissingEntryPoint: program entry point is missing", err.Error())

	located := NewAt(InvalidZeroPageContent, ast.SourceRef{File: "t.ill", Line: 7}, "found label %q", "start")
	require.Equal(t, `InvalidZeroPageContent: found label "start" (t.ill:7)`, located.Error())
}

func TestIsCode(t *testing.T) {
	err := New(DuplicateBlockName, "block name %q is used twice", "main")
	require.True(t, IsCode(err, DuplicateBlockName))
	require.False(t, IsCode(err, MissingEntryPoint))
	require.False(t, IsCode(nil, DuplicateBlockName))
	require.False(t, IsCode(fmt.Errorf("plain"), DuplicateBlockName))

	wrapped := fmt.Errorf("generate: %w", err)
	require.True(t, IsCode(wrapped, DuplicateBlockName))
}

func TestIsCodeThroughMultierror(t *testing.T) {
	var result *multierror.Error
	result = multierror.Append(result, New(DuplicateBlockName, "block name %q is used twice", "irq"))
	result = multierror.Append(result, New(InvalidZeroPageContent, "found a statement"))
	err := result.ErrorOrNil()
	require.Error(t, err)
	require.True(t, IsCode(err, DuplicateBlockName))
}

func TestDescriptions(t *testing.T) {
	require.Equal(t, "assembler failed", AssemblerFailed.Description())
	require.Equal(t, "Bogus", Code("Bogus").Description())
}
