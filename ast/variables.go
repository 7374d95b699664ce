package ast

import "fmt"

// VarDef defines a variable, constant or memory-mapped alias inside a
// block. Exactly one of the value fields is meaningful, selected by Type:
// Value for byte/word scalars and array fill values, FloatValue for
// floats, StrValue for the string kinds.
type VarDef struct {
	Name  string
	Class VarClass
	Type  DataType

	Value      int
	FloatValue float64
	StrValue   string

	// Size carries the array length ([n]) or matrix dimensions
	// ([rows, cols]) for the aggregate kinds, [1] for scalars.
	Size []int

	// Address is the fixed address of a ClassMemory variable.
	Address uint16

	// ZpAddress is the pre-assigned address of a ClassZeroPage variable.
	// Allocation happens upstream; the generator only emits the alias.
	ZpAddress uint16

	Ref SourceRef
}

func (v *VarDef) stmtNode() {}

func (v *VarDef) Pos() SourceRef { return v.Ref }

func (v *VarDef) String() string {
	return fmt.Sprintf("vardef %s %s %q", v.Class, v.Type, v.Name)
}

// Param maps a subroutine parameter name to the register(s) it is passed in.
type Param struct {
	Name      string
	Registers string
}

// RegResult describes one register listed in a subroutine's result
// specification. A clobbered register carries no return value but is not
// preserved across the call.
type RegResult struct {
	Register  string
	Clobbered bool
}

// Subroutine is a callable defined in a block. An external subroutine is
// bound to a fixed address and has no body; a scoped subroutine has a body
// of statements that is lowered in its own nested scope.
type Subroutine struct {
	Name string

	// Address is the fixed location of an external subroutine.
	Address uint16

	// External marks an address-bound subroutine without a body.
	External bool

	Params  []Param
	Results []RegResult

	// Body holds the statements of a scoped subroutine, in source order.
	Body []Node

	Ref SourceRef
}

func (s *Subroutine) stmtNode() {}

func (s *Subroutine) Pos() SourceRef { return s.Ref }

func (s *Subroutine) String() string {
	if s.External {
		return fmt.Sprintf("sub %q = $%04x", s.Name, s.Address)
	}
	return fmt.Sprintf("sub %q", s.Name)
}
