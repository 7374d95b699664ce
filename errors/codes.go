package errors

// Code identifies a class of code-generation or toolchain failure. Every
// code is unrecoverable at the point it is raised: the current generation
// is aborted and the error unwinds out of the driver.
type Code string

const (
	// Structural errors detected by the sanity checks.
	MissingEntryPoint      Code = "MissingEntryPoint"
	DuplicateBlockName     Code = "DuplicateBlockName"
	InvalidZeroPageContent Code = "InvalidZeroPageContent"

	// Emission errors.
	InvalidLoadAddress      Code = "InvalidLoadAddress"
	InvalidMemoryMappedType Code = "InvalidMemoryMappedType"
	InvalidConstantType     Code = "InvalidConstantType"
	UnknownVariableKind     Code = "UnknownVariableKind"
	UnsupportedStatement    Code = "UnsupportedStatement"

	// Toolchain errors.
	AssemblerNotFound Code = "AssemblerNotFound"
	AssemblerFailed   Code = "AssemblerFailed"
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[Code]string{
	MissingEntryPoint:       "program entry point is missing",
	DuplicateBlockName:      "duplicate block name",
	InvalidZeroPageContent:  "invalid statement in zero page block",
	InvalidLoadAddress:      "invalid load address for output format",
	InvalidMemoryMappedType: "invalid memory mapped variable type",
	InvalidConstantType:     "invalid constant type",
	UnknownVariableKind:     "unknown variable kind",
	UnsupportedStatement:    "no lowering rule for statement",
	AssemblerNotFound:       "cannot run assembler program",
	AssemblerFailed:         "assembler failed",
}

// Description returns the short human readable description of the code.
func (c Code) Description() string {
	if d, ok := codeDescriptions[c]; ok {
		return d
	}
	return string(c)
}
