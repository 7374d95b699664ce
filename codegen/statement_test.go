package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sick-lang/sick65/ast"
	"github.com/sick-lang/sick65/errors"
)

func TestLowerLabel(t *testing.T) {
	out := generate(t, testProgram(mainBlock(
		&ast.Label{Name: "loop", Ref: ref(9)},
	)))
	require.Contains(t, out, "\nloop\t\t\t; src l. 9")
}

func TestLowerReturnValues(t *testing.T) {
	out := generate(t, testProgram(mainBlock(
		&ast.Subroutine{
			Name: "answer",
			Ref:  ref(10),
			Body: []ast.Node{
				&ast.Return{
					ValueA: &ast.IntLiteral{Value: 42, Ref: ref(11)},
					ValueX: &ast.SymbolRef{Name: "count", Type: ast.Byte, Ref: ref(11)},
					ValueY: &ast.RegisterRef{Name: "A", Ref: ref(11)},
					Ref:    ref(11),
				},
			},
		},
	)))
	// register values load in A, X, Y order, then return
	require.Contains(t, out, "\t\tlda  #$2a\n\t\tldx  count\n\t\ttay\n\t\trts\n")
}

func TestLowerBareReturn(t *testing.T) {
	out := generate(t, testProgram(mainBlock()))
	require.Contains(t, out, "\t\trts\n")
}

func TestLowerInlineAssembly(t *testing.T) {
	out := generate(t, testProgram(mainBlock(
		&ast.InlineAssembly{
			Assembly: "\t\tlda  #$00\n\t\tsta  $d020",
			Ref:      ref(15),
		},
	)))
	begin := strings.Index(out, "; inline asm, src l. 15")
	body := strings.Index(out, "sta  $d020")
	end := strings.Index(out, "; end inline asm, src l. 15")
	require.True(t, begin >= 0)
	require.True(t, body >= 0)
	require.True(t, end >= 0)
	require.Less(t, begin, body)
	require.Less(t, body, end)
}

func TestLowerGoto(t *testing.T) {
	out := generate(t, testProgram(mainBlock(
		&ast.Goto{TargetLabel: "start", Ref: ref(9)},
	)))
	require.Contains(t, out, "\t\tjmp  start\n")
}

func TestLowerBreakpoint(t *testing.T) {
	out := generate(t, testProgram(mainBlock(
		&ast.Breakpoint{Ref: ref(9)},
	)))
	require.Contains(t, out, "\t\tnop\t\t; ~~~BREAKPOINT~~~ src l. 9\n")
}

func TestLowerAssignments(t *testing.T) {
	testCases := []struct {
		name string
		stmt *ast.Assignment
		want string
	}{
		{
			name: "literal to register",
			stmt: &ast.Assignment{
				Target: &ast.RegisterRef{Name: "X", Ref: ref(5)},
				Value:  &ast.IntLiteral{Value: 0xfe, Ref: ref(5)},
			},
			want: "\t\tldx  #$fe\n",
		},
		{
			name: "memory to register",
			stmt: &ast.Assignment{
				Target: &ast.RegisterRef{Name: "Y", Ref: ref(5)},
				Value:  &ast.SymbolRef{Name: "count", Type: ast.Byte, Ref: ref(5)},
			},
			want: "\t\tldy  count\n",
		},
		{
			name: "register transfer",
			stmt: &ast.Assignment{
				Target: &ast.RegisterRef{Name: "Y", Ref: ref(5)},
				Value:  &ast.RegisterRef{Name: "A", Ref: ref(5)},
			},
			want: "\t\ttay\n",
		},
		{
			name: "x to y routes through a",
			stmt: &ast.Assignment{
				Target: &ast.RegisterRef{Name: "Y", Ref: ref(5)},
				Value:  &ast.RegisterRef{Name: "X", Ref: ref(5)},
			},
			want: "\t\ttxa\n\t\ttay\n",
		},
		{
			name: "literal to byte memory",
			stmt: &ast.Assignment{
				Target: &ast.SymbolRef{Name: "count", Type: ast.Byte, Ref: ref(5)},
				Value:  &ast.IntLiteral{Value: 7, Ref: ref(5)},
			},
			want: "\t\tlda  #$07\n\t\tsta  count\n",
		},
		{
			name: "register to byte memory",
			stmt: &ast.Assignment{
				Target: &ast.SymbolRef{Name: "count", Type: ast.Byte, Ref: ref(5)},
				Value:  &ast.RegisterRef{Name: "X", Ref: ref(5)},
			},
			want: "\t\tstx  count\n",
		},
		{
			name: "memory to byte memory",
			stmt: &ast.Assignment{
				Target: &ast.SymbolRef{Name: "dst", Type: ast.Byte, Ref: ref(5)},
				Value:  &ast.SymbolRef{Name: "src", Type: ast.Byte, Ref: ref(5)},
			},
			want: "\t\tlda  src\n\t\tsta  dst\n",
		},
		{
			name: "literal to word memory",
			stmt: &ast.Assignment{
				Target: &ast.SymbolRef{Name: "vec", Type: ast.Word, Ref: ref(5)},
				Value:  &ast.IntLiteral{Value: 0x1234, Ref: ref(5)},
			},
			want: "\t\tlda  #$12\n\t\tsta  vec\n\t\tlda  #$34\n\t\tsta  vec+1\n",
		},
		{
			name: "register to word memory",
			stmt: &ast.Assignment{
				Target: &ast.SymbolRef{Name: "vec", Type: ast.Word, Ref: ref(5)},
				Value:  &ast.RegisterRef{Name: "Y", Ref: ref(5)},
			},
			want: "\t\tsty  vec+1\n\t\tlda  #$00\n\t\tsta  vec\n",
		},
		{
			name: "word memory to word memory",
			stmt: &ast.Assignment{
				Target: &ast.SymbolRef{Name: "dst", Type: ast.Word, Ref: ref(5)},
				Value:  &ast.SymbolRef{Name: "src", Type: ast.Word, Ref: ref(5)},
			},
			want: "\t\tlda  src\n\t\tsta  dst\n\t\tlda  src+1\n\t\tsta  dst+1\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := generate(t, testProgram(mainBlock(tc.stmt)))
			require.Contains(t, out, tc.want)
		})
	}
}

func TestSelfTransferEmitsNothing(t *testing.T) {
	out := generate(t, testProgram(mainBlock(
		&ast.Assignment{
			Target: &ast.RegisterRef{Name: "A", Ref: ref(5)},
			Value:  &ast.RegisterRef{Name: "A", Ref: ref(5)},
		},
	)))
	require.NotContains(t, out, "tax")
	require.NotContains(t, out, "txa")
}

func TestAssignToFloatSymbolUnsupported(t *testing.T) {
	_, err := generateErr(t, testProgram(mainBlock(
		&ast.Assignment{
			Target: &ast.SymbolRef{Name: "f", Type: ast.Float, Ref: ref(5)},
			Value:  &ast.IntLiteral{Value: 1, Ref: ref(5)},
			Ref:    ref(5),
		},
	)))
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.UnsupportedStatement))
}

func TestUnhandledStatementKindFails(t *testing.T) {
	// an expression node in statement position has no lowering rule
	out, err := generateErr(t, testProgram(mainBlock(
		&ast.IntLiteral{Value: 1, Ref: ref(5)},
	)))
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.UnsupportedStatement))
	require.Contains(t, out, ".error \"****** ABORTED DUE TO ERROR")
}
