// Package ast defines the validated, fully-resolved program tree that the
// code generator consumes. The tree is produced by the upstream parsing and
// semantic-analysis phases and is read-only during code generation.
package ast

import "fmt"

// Well known names with special meaning in a program tree.
const (
	// MainBlock is the name of the block that must contain the program
	// entry point.
	MainBlock = "main"

	// StartLabel is the name of the entry point label inside MainBlock.
	StartLabel = "start"

	// ZeroPageBlock is the name of the block whose variables live in the
	// zero page. At most one block may carry this name and it may contain
	// only variable definitions and directives.
	ZeroPageBlock = "ZP"
)

// SourceRef identifies the source location a node originates from.
type SourceRef struct {
	File string
	Line int
}

func (r SourceRef) String() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// LineRef returns the short form used in generated assembly comments.
func (r SourceRef) LineRef() string {
	return fmt.Sprintf("src l. %d", r.Line)
}

// Node is implemented by every element of the program tree.
type Node interface {
	// Pos returns the source location of the node.
	Pos() SourceRef

	// String returns a short human friendly representation of the node,
	// used in diagnostics.
	String() string
}

// Stmt is a node that may appear in a statement position inside a block
// or a subroutine body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a node that denotes a value: a literal, a processor register,
// or a named memory location.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of the tree: one compiled unit with its output
// options and an ordered collection of blocks.
type Program struct {
	// Filename is the source file this program was compiled from, used
	// for provenance comments only.
	Filename string

	// Format selects the output container produced by the assembler.
	Format Format

	// Address is the load address of the program image.
	Address uint16

	// ZpOption selects how the generated program treats the zero page.
	ZpOption ZpOption

	// Blocks in source order.
	Blocks []*Block
}

// ZeroPage returns the zero-page block, or nil if the program has none.
func (p *Program) ZeroPage() *Block {
	for _, b := range p.Blocks {
		if b.Name == ZeroPageBlock {
			return b
		}
	}
	return nil
}

// Main returns the block named "main", or nil if the program has none.
func (p *Program) Main() *Block {
	for _, b := range p.Blocks {
		if b.Name == MainBlock {
			return b
		}
	}
	return nil
}

// Block is a named, independently addressable grouping of variables and
// code, with an optional fixed load address.
type Block struct {
	Name string

	// Address pins the block at a fixed location when non-zero.
	Address uint16

	Ref SourceRef

	// Nodes holds the block members in source order: variable
	// definitions, directives, subroutines, labels and other statements.
	Nodes []Node
}

func (b *Block) Pos() SourceRef { return b.Ref }

func (b *Block) String() string { return fmt.Sprintf("block %q", b.Name) }

// Label returns the symbol the block's scope is opened under.
func (b *Block) Label() string { return b.Name }

// IsZeroPage reports whether this is the zero-page block.
func (b *Block) IsZeroPage() bool { return b.Name == ZeroPageBlock }

// Variables returns the block's variable definitions in source order.
func (b *Block) Variables() []*VarDef {
	var vars []*VarDef
	for _, n := range b.Nodes {
		if v, ok := n.(*VarDef); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// Subroutines returns the block's subroutines in source order.
func (b *Block) Subroutines() []*Subroutine {
	var subs []*Subroutine
	for _, n := range b.Nodes {
		if s, ok := n.(*Subroutine); ok {
			subs = append(subs, s)
		}
	}
	return subs
}
