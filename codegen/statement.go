package codegen

import (
	"strings"

	"github.com/sick-lang/sick65/ast"
	"github.com/sick-lang/sick65/errors"
)

// blockScope identifies where a statement is being lowered: the enclosing
// block and, inside a subroutine body, that subroutine. It is passed
// explicitly through every lowering call; the generator keeps no ambient
// current-scope state.
type blockScope struct {
	block *ast.Block
	sub   *ast.Subroutine
}

// lowerStatement converts one statement node into assembly lines. Dispatch
// is exhaustive: a node kind without a lowering rule is an
// UnsupportedStatement error, never a silent mis-lowering.
func (g *Generator) lowerStatement(scope blockScope, node ast.Node) error {
	switch stmt := node.(type) {
	case *ast.Label:
		g.p("\n%s\t\t\t; %s", stmt.Name, stmt.Ref.LineRef())
	case *ast.Return:
		if stmt.ValueA != nil {
			if err := g.lowerAssignment(scope, &ast.RegisterRef{Name: "A", Ref: stmt.Ref}, stmt.ValueA); err != nil {
				return err
			}
		}
		if stmt.ValueX != nil {
			if err := g.lowerAssignment(scope, &ast.RegisterRef{Name: "X", Ref: stmt.Ref}, stmt.ValueX); err != nil {
				return err
			}
		}
		if stmt.ValueY != nil {
			if err := g.lowerAssignment(scope, &ast.RegisterRef{Name: "Y", Ref: stmt.Ref}, stmt.ValueY); err != nil {
				return err
			}
		}
		g.pi("rts")
	case *ast.InlineAssembly:
		g.p("\n\t\t; inline asm, %s", stmt.Ref.LineRef())
		g.p("%s", stmt.Assembly)
		g.pi("; end inline asm, %s\n", stmt.Ref.LineRef())
	case *ast.Assignment:
		return g.lowerAssignment(scope, stmt.Target, stmt.Value)
	case *ast.Goto:
		g.pi("jmp  %s", stmt.TargetLabel)
	case *ast.Breakpoint:
		g.pi("nop\t\t; %s %s", BreakpointSignature, stmt.Ref.LineRef())
	default:
		return errors.NewAt(errors.UnsupportedStatement, node.Pos(),
			"cannot lower %s", node)
	}
	return nil
}

// lowerAssignment implements the assignment contract. The target is a
// register or a named memory location; the value is an integer literal, a
// register or a memory location. Exactly one store per target is emitted.
// Word-typed memory targets follow the block-initializer layout: high byte
// at the name, low byte at name+1. A is the transfer register for
// immediate-to-memory and memory-to-memory moves, so those forms clobber
// it, as do X<->Y register moves which have no direct transfer
// instruction.
func (g *Generator) lowerAssignment(scope blockScope, target, value ast.Expr) error {
	switch t := target.(type) {
	case *ast.RegisterRef:
		return g.assignRegister(t, value)
	case *ast.SymbolRef:
		return g.assignSymbol(t, value)
	default:
		return errors.NewAt(errors.UnsupportedStatement, target.Pos(),
			"cannot assign to %s", target)
	}
}

func (g *Generator) assignRegister(t *ast.RegisterRef, value ast.Expr) error {
	reg := strings.ToLower(t.Name)
	switch v := value.(type) {
	case *ast.IntLiteral:
		g.pi("ld%s  #%s", reg, hexByte(v.Value))
	case *ast.RegisterRef:
		g.transfer(t.Name, v.Name)
	case *ast.SymbolRef:
		g.pi("ld%s  %s", reg, v.Name)
	default:
		return errors.NewAt(errors.UnsupportedStatement, value.Pos(),
			"cannot assign %s to register %s", value, t.Name)
	}
	return nil
}

// transfer moves the src register into dst.
func (g *Generator) transfer(dst, src string) {
	if dst == src {
		return
	}
	switch src + dst {
	case "XA":
		g.pi("txa")
	case "YA":
		g.pi("tya")
	case "AX":
		g.pi("tax")
	case "AY":
		g.pi("tay")
	case "YX":
		g.pi("tya") // clobbers A
		g.pi("tax")
	case "XY":
		g.pi("txa") // clobbers A
		g.pi("tay")
	}
}

func (g *Generator) assignSymbol(t *ast.SymbolRef, value ast.Expr) error {
	switch t.Type {
	case ast.Byte:
		switch v := value.(type) {
		case *ast.IntLiteral:
			g.pi("lda  #%s", hexByte(v.Value))
			g.pi("sta  %s", t.Name)
		case *ast.RegisterRef:
			g.pi("st%s  %s", strings.ToLower(v.Name), t.Name)
		case *ast.SymbolRef:
			g.pi("lda  %s", v.Name)
			g.pi("sta  %s", t.Name)
		default:
			return errors.NewAt(errors.UnsupportedStatement, value.Pos(),
				"cannot assign %s to %s", value, t.Name)
		}
	case ast.Word:
		switch v := value.(type) {
		case *ast.IntLiteral:
			g.pi("lda  #$%02x", v.Value/256)
			g.pi("sta  %s", t.Name)
			g.pi("lda  #$%02x", v.Value%256)
			g.pi("sta  %s+1", t.Name)
		case *ast.RegisterRef:
			// 8-bit source: the register lands in the low byte, the high
			// byte is cleared
			g.pi("st%s  %s+1", strings.ToLower(v.Name), t.Name)
			g.pi("lda  #$00")
			g.pi("sta  %s", t.Name)
		case *ast.SymbolRef:
			g.pi("lda  %s", v.Name)
			g.pi("sta  %s", t.Name)
			g.pi("lda  %s+1", v.Name)
			g.pi("sta  %s+1", t.Name)
		default:
			return errors.NewAt(errors.UnsupportedStatement, value.Pos(),
				"cannot assign %s to %s", value, t.Name)
		}
	default:
		return errors.NewAt(errors.UnsupportedStatement, t.Ref,
			"cannot assign to %s variable %s", t.Type, t.Name)
	}
	return nil
}
