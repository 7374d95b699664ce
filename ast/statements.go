package ast

import "fmt"

// Directive is an emission-time instruction for the generator. It never
// produces runtime code and is consumed by the surrounding emission logic
// rather than the statement lowerer.
type Directive struct {
	Name string
	Args []string
	Ref  SourceRef
}

func (d *Directive) stmtNode() {}

func (d *Directive) Pos() SourceRef { return d.Ref }

func (d *Directive) String() string { return fmt.Sprintf("directive %%%s", d.Name) }

// Label defines a jump target at the current emission position.
type Label struct {
	Name string
	Ref  SourceRef
}

func (l *Label) stmtNode() {}

func (l *Label) Pos() SourceRef { return l.Ref }

func (l *Label) String() string { return fmt.Sprintf("label %q", l.Name) }

// Return returns from the current subroutine. Each of the three value
// fields, when non-nil, is assigned into the corresponding register before
// the return instruction is emitted.
type Return struct {
	ValueA Expr
	ValueX Expr
	ValueY Expr
	Ref    SourceRef
}

func (r *Return) stmtNode() {}

func (r *Return) Pos() SourceRef { return r.Ref }

func (r *Return) String() string { return "return" }

// InlineAssembly is an opaque assembly fragment copied verbatim into the
// output, bracketed by comments referencing the source line.
type InlineAssembly struct {
	Assembly string
	Ref      SourceRef
}

func (a *InlineAssembly) stmtNode() {}

func (a *InlineAssembly) Pos() SourceRef { return a.Ref }

func (a *InlineAssembly) String() string { return "inline assembly" }

// Assignment stores a value into a register or a named memory location.
// Target must be a *RegisterRef or a *SymbolRef.
type Assignment struct {
	Target Expr
	Value  Expr
	Ref    SourceRef
}

func (a *Assignment) stmtNode() {}

func (a *Assignment) Pos() SourceRef { return a.Ref }

func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

// Goto transfers control to a label.
type Goto struct {
	TargetLabel string
	Ref         SourceRef
}

func (g *Goto) stmtNode() {}

func (g *Goto) Pos() SourceRef { return g.Ref }

func (g *Goto) String() string { return fmt.Sprintf("goto %s", g.TargetLabel) }

// Breakpoint emits a marker instruction that the toolchain's listing scan
// turns into a debugger breakpoint at the assembled address.
type Breakpoint struct {
	Ref SourceRef
}

func (b *Breakpoint) stmtNode() {}

func (b *Breakpoint) Pos() SourceRef { return b.Ref }

func (b *Breakpoint) String() string { return "breakpoint" }

// IntLiteral is an integer value known at compile time.
type IntLiteral struct {
	Value int
	Ref   SourceRef
}

func (i *IntLiteral) exprNode() {}

func (i *IntLiteral) Pos() SourceRef { return i.Ref }

func (i *IntLiteral) String() string { return fmt.Sprintf("%d", i.Value) }

// RegisterRef denotes one of the processor registers A, X or Y.
type RegisterRef struct {
	Name string
	Ref  SourceRef
}

func (r *RegisterRef) exprNode() {}

func (r *RegisterRef) Pos() SourceRef { return r.Ref }

func (r *RegisterRef) String() string { return r.Name }

// SymbolRef denotes a named memory location with a known data type.
type SymbolRef struct {
	Name string
	Type DataType
	Ref  SourceRef
}

func (s *SymbolRef) exprNode() {}

func (s *SymbolRef) Pos() SourceRef { return s.Ref }

func (s *SymbolRef) String() string { return s.Name }
