package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sick-lang/sick65/ast"
	"github.com/sick-lang/sick65/errors"
	"github.com/sick-lang/sick65/mflpt"
)

// blocks emits every block of the program. The zero-page block always goes
// first; the rest follow in ascending order of fixed address, blocks
// without one sorting first in their original relative order.
func (g *Generator) blocks() error {
	if zp := g.program.ZeroPage(); zp != nil {
		g.p("\n; ---- zero page block: '%s' ----", zp.Name)
		g.p("; file: '%s' %s\n", zp.Ref.File, zp.Ref.LineRef())
		g.p("%s\t.proc\n", zp.Label())
		if err := g.emitBlockInit(zp); err != nil {
			return err
		}
		if err := g.emitBlockVars(zp, true); err != nil {
			return err
		}
		// there is no code in the zero page block
		g.pi(".pend\n")
	}
	ordered := make([]*ast.Block, len(g.program.Blocks))
	copy(ordered, g.program.Blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Address < ordered[j].Address
	})
	for _, block := range ordered {
		if block.IsZeroPage() {
			continue
		}
		if err := g.emitBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitBlock(block *ast.Block) error {
	g.log.Debug().Str("block", block.Name).Msg("emitting block")
	g.p("\n; ---- block: '%s' ----", block.Name)
	g.p("; file: '%s' %s\n", block.Ref.File, block.Ref.LineRef())
	if block.Address != 0 {
		// The overlap check fails the assembly step, not code generation.
		g.p(".cerror * > $%04x, 'block address overlaps by ', *-$%04x,' bytes'",
			block.Address, block.Address)
		g.p("* = $%04x", block.Address)
	}
	g.p("%s\t.proc\n", block.Label())
	if err := g.emitBlockInit(block); err != nil {
		return err
	}
	if err := g.emitBlockVars(block, false); err != nil {
		return err
	}

	var externs, scoped []*ast.Subroutine
	for _, sub := range block.Subroutines() {
		if sub.External {
			externs = append(externs, sub)
		} else {
			scoped = append(scoped, sub)
		}
	}
	if len(externs) > 0 {
		g.p("; external subroutines")
		for _, sub := range externs {
			g.pi("%s = %s", sub.Name, hexWord(sub.Address))
		}
		g.p("; end external subroutines\n")
	}

	scope := blockScope{block: block}
	for _, n := range block.Nodes {
		switch n.(type) {
		case *ast.VarDef, *ast.Directive, *ast.Subroutine:
			continue
		}
		if err := g.lowerStatement(scope, n); err != nil {
			return err
		}
		if lbl, ok := n.(*ast.Label); ok && block.Name == ast.MainBlock && lbl.Name == ast.StartLabel {
			// guaranteed initial CPU state for the entry point: decimal
			// mode off, carry and overflow cleared
			g.pi("cld")
			g.pi("clc")
			g.pi("clv")
		}
	}

	if len(scoped) > 0 {
		g.p("; -- block subroutines")
		for _, sub := range scoped {
			if err := g.emitSubroutine(scope, sub); err != nil {
				return err
			}
		}
		g.p("; -- end block subroutines")
	}
	g.p("\n\t\t.pend\n")
	return nil
}

func (g *Generator) emitSubroutine(scope blockScope, sub *ast.Subroutine) error {
	g.p("%s\t\t; %s", sub.Name, sub.Ref.LineRef())
	params := make([]string, 0, len(sub.Params))
	for _, p := range sub.Params {
		name := p.Name
		if name == "" {
			name = "<unnamed>"
		}
		params = append(params, fmt.Sprintf("%s -> %s", name, p.Registers))
	}
	var returns, clobbers []string
	for _, r := range sub.Results {
		if r.Clobbered {
			clobbers = append(clobbers, r.Register)
		} else {
			returns = append(returns, r.Register)
		}
	}
	sort.Strings(returns)
	sort.Strings(clobbers)
	g.pi("; params: %s", orDash(strings.Join(params, ", ")))
	g.pi("; returns: %s   clobbers: %s",
		orDash(strings.Join(returns, ",")), orDash(strings.Join(clobbers, ",")))
	inner := blockScope{block: scope.block, sub: sub}
	for _, n := range sub.Body {
		switch n.(type) {
		case *ast.VarDef, *ast.Directive:
			continue
		}
		if err := g.lowerStatement(inner, n); err != nil {
			return err
		}
	}
	g.p("")
	return nil
}

// emitBlockInit synthesizes the block's runtime initializer: a routine
// that writes the initial values of the block's general and zero-page
// variables into their storage, grouped by data kind. Constants and
// memory-mapped variables are never touched.
func (g *Generator) emitBlockInit(block *ast.Block) error {
	g.p("%s\t\t; (re)set vars to initial values", initBlockLabel)
	byKind := make(map[ast.DataType][]*ast.VarDef)
	for _, v := range block.Variables() {
		if v.Class == ast.ClassVar || v.Class == ast.ClassZeroPage {
			byKind[v.Type] = append(byKind[v.Type], v)
		}
	}

	// Byte and word values are sorted ascending so that identical loads
	// collapse: a load is only emitted when the register would change.
	prevA, prevX := -1, -1
	bytes := byKind[ast.Byte]
	sort.SliceStable(bytes, func(i, j int) bool { return bytes[i].Value < bytes[j].Value })
	for _, v := range bytes {
		if v.Value != prevA {
			g.pi("lda  #$%02x", v.Value)
			prevA = v.Value
		}
		g.pi("sta  %s", v.Name)
	}
	words := byKind[ast.Word]
	sort.SliceStable(words, func(i, j int) bool { return words[i].Value < words[j].Value })
	for _, v := range words {
		hi, lo := v.Value/256, v.Value%256
		if hi != prevA {
			g.pi("lda  #$%02x", hi)
			prevA = hi
		}
		if lo != prevX {
			g.pi("ldx  #$%02x", lo)
			prevX = lo
		}
		g.pi("sta  %s", v.Name)
		g.pi("stx  %s+1", v.Name)
	}

	type floatInit struct {
		name  string
		enc   [mflpt.Size]byte
		value float64
	}
	var floats []floatInit
	for _, v := range byKind[ast.Float] {
		enc, err := mflpt.Encode(v.FloatValue)
		if err != nil {
			return fmt.Errorf("float variable %s: %w", v.Name, err)
		}
		floats = append(floats, floatInit{v.Name, enc, v.FloatValue})
	}
	sort.Slice(floats, func(i, j int) bool { return floats[i].name < floats[j].name })

	for _, v := range byKind[ast.ByteArray] {
		g.memset(v.Name, v.Value, v.Size[0])
	}
	for _, v := range byKind[ast.WordArray] {
		g.memsetw(v.Name, v.Value, v.Size[0])
	}
	for _, v := range byKind[ast.Matrix] {
		g.memset(v.Name, v.Value, v.Size[0]*v.Size[1])
	}

	if len(floats) > 0 {
		// one descending copy loop shared by all float variables
		g.pi("ldx  #4")
		g.p("-")
		for _, f := range floats {
			g.pi("lda  _init_float_%s,x", f.name)
			g.pi("sta  %s,x", f.name)
		}
		g.pi("dex")
		g.pi("bpl  -")
	}
	g.pi("rts\n")
	for _, f := range floats {
		g.p("_init_float_%s\t\t.byte  $%02x, $%02x, $%02x, $%02x, $%02x\t; %v",
			f.name, f.enc[0], f.enc[1], f.enc[2], f.enc[3], f.enc[4], f.value)
	}
	g.p("")
	return nil
}

// memset emits a call to the runtime byte fill helper. The target address
// goes through the runtime's zero-page scratch word.
func (g *Generator) memset(name string, value, size int) {
	g.pi("lda  #<%s", name)
	g.pi("sta  %s.SCRATCH_ZPWORD1", runtimeScope)
	g.pi("lda  #>%s", name)
	g.pi("sta  %s.SCRATCH_ZPWORD1+1", runtimeScope)
	g.pi("lda  #%s", hexInt(value))
	g.pi("ldx  #%s", hexInt(size))
	g.pi("jsr  %s.memset", runtimeScope)
}

// memsetw is the word variant; size is the element count, the helper
// doubles it internally.
func (g *Generator) memsetw(name string, value, size int) {
	g.pi("lda  #<%s", name)
	g.pi("sta  %s.SCRATCH_ZPWORD1", runtimeScope)
	g.pi("lda  #>%s", name)
	g.pi("sta  %s.SCRATCH_ZPWORD1+1", runtimeScope)
	g.pi("lda  #<%s", hexInt(value))
	g.pi("ldy  #>%s", hexInt(value))
	g.pi("ldx  #%s", hexInt(size))
	g.pi("jsr  %s.memsetw", runtimeScope)
}

// emitBlockVars emits the block's variable storage, partitioned by storage
// class. Numeric storage is zero filled and gets its initial values at
// runtime from the block initializer; string storage carries its content
// in place.
func (g *Generator) emitBlockVars(block *ast.Block, zeropage bool) error {
	byClass := make(map[ast.VarClass][]*ast.VarDef)
	for _, v := range block.Variables() {
		byClass[v.Class] = append(byClass[v.Class], v)
	}

	g.p("; constants")
	for _, v := range byClass[ast.ClassConst] {
		switch {
		case v.Type == ast.Float:
			g.pi("%s = %v", v.Name, v.FloatValue)
		case v.Type == ast.Byte || v.Type == ast.Word:
			g.pi("%s = %s", v.Name, hexInt(v.Value))
		case v.Type.IsString():
			// a const string is just a string variable in the output
			g.emitStringVar(v)
		default:
			return errors.NewAt(errors.InvalidConstantType, v.Ref,
				"cannot emit constant %s of type %s", v.Name, v.Type)
		}
	}

	g.p("; memory mapped variables")
	for _, v := range byClass[ast.ClassMemory] {
		switch v.Type {
		case ast.Byte, ast.Word, ast.Float:
			g.pi("%s = %s\t; %s", v.Name, hexWord(v.Address), v.Type)
		case ast.ByteArray:
			g.pi("%s = %s\t; array of %d bytes", v.Name, hexWord(v.Address), v.Size[0])
		case ast.WordArray:
			g.pi("%s = %s\t; array of %d words", v.Name, hexWord(v.Address), v.Size[0])
		case ast.Matrix:
			g.pi("%s = %s\t; matrix of %d by %d = %d bytes", v.Name, hexWord(v.Address),
				v.Size[0], v.Size[1], v.Size[0]*v.Size[1])
		default:
			return errors.NewAt(errors.InvalidMemoryMappedType, v.Ref,
				"cannot memory-map variable %s of type %s", v.Name, v.Type)
		}
	}

	g.p("; normal variables - initial values will be set by init code")
	if zeropage {
		// zero page variables alias their pre-assigned address instead of
		// allocating storage here
		for _, v := range byClass[ast.ClassZeroPage] {
			sizeStr := ""
			switch v.Type {
			case ast.ByteArray, ast.WordArray, ast.Matrix:
				sizeStr = fmt.Sprintf(" size %v", v.Size)
			}
			g.pi("%s = %s\t; %s%s", v.Name, hexInt(int(v.ZpAddress)), v.Type, sizeStr)
		}
		g.p("")
		return nil
	}

	var stringVars []*ast.VarDef
	for _, v := range byClass[ast.ClassVar] {
		switch v.Type {
		case ast.Byte:
			g.p("%s\t\t.byte  ?", v.Name)
		case ast.Word:
			g.p("%s\t\t.word  ?", v.Name)
		case ast.Float:
			g.p("%s\t\t.fill  5\t\t; float", v.Name)
		case ast.ByteArray:
			g.p("%s\t\t.fill  %d\t\t; bytearray", v.Name, v.Size[0])
		case ast.WordArray:
			g.p("%s\t\t.fill  %d*2\t\t; wordarray", v.Name, v.Size[0])
		case ast.Matrix:
			g.p("%s\t\t.fill  %d\t\t; matrix %d*%d bytes", v.Name,
				v.Size[0]*v.Size[1], v.Size[0], v.Size[1])
		case ast.String, ast.StringP, ast.StringS, ast.StringPS:
			stringVars = append(stringVars, v)
		default:
			return errors.NewAt(errors.UnknownVariableKind, v.Ref,
				"unknown kind %s of variable %s", v.Type, v.Name)
		}
	}
	if len(stringVars) > 0 {
		// Pooled under one symbol, sorted by name, each entry exactly
		// length+1 bytes. The content is emitted in place; strings are
		// immutable at runtime so there is no copy pass to keep in step.
		sort.SliceStable(stringVars, func(i, j int) bool {
			return stringVars[i].Name < stringVars[j].Name
		})
		g.p("%s", stringPoolLabel)
		for _, v := range stringVars {
			g.emitStringVar(v)
		}
	}
	g.p("")
	return nil
}

func (g *Generator) emitStringVar(v *ast.VarDef) {
	switch v.Type {
	case ast.String:
		g.p("%s\n\t\t.null  %s", v.Name, encodeString(v.StrValue, false))
	case ast.StringP:
		g.p("%s\n\t\t.ptext  %s", v.Name, encodeString(v.StrValue, false))
	case ast.StringS:
		g.p(".enc  'screen'")
		g.p("%s\n\t\t.null  %s", v.Name, encodeString(v.StrValue, true))
		g.p(".enc  'none'")
	case ast.StringPS:
		g.p(".enc  'screen'")
		g.p("%s\n\t\t.ptext  %s", v.Name, encodeString(v.StrValue, true))
		g.p(".enc  'none'")
	}
}
